package controller

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerlist/dealerlist-backend/internal/app/service"
	apperrors "github.com/dealerlist/dealerlist-backend/internal/errors"
	"github.com/dealerlist/dealerlist-backend/internal/middleware"
	"github.com/dealerlist/dealerlist-backend/internal/storage"
)

type ImportController struct {
	importService service.ImportService
	archive       *storage.S3Storage // nil when archival is not configured
	maxFileSize   int64
}

func NewImportController(importService service.ImportService, archive *storage.S3Storage, maxFileSize int64) *ImportController {
	return &ImportController{
		importService: importService,
		archive:       archive,
		maxFileSize:   maxFileSize,
	}
}

// ImportDealers ingests a CSV or XLSX upload of dealer contacts
// POST /api/v1/dealers/import
func (ctrl *ImportController) ImportDealers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ImportFileMissing, "No file uploaded")
		return
	}

	if ctrl.maxFileSize > 0 && fileHeader.Size > ctrl.maxFileSize {
		log.Warn("Import file too large", map[string]interface{}{
			"filename": fileHeader.Filename,
			"size":     fileHeader.Size,
		})
		apperrors.BadRequest(c, apperrors.ImportFileTooLarge, "File exceeds the maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, nil)
		apperrors.Internal(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	// Buffer the upload so it can be archived and parsed independently.
	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("Failed to read uploaded file", err, nil)
		apperrors.Internal(c, "Failed to read uploaded file")
		return
	}

	var archiveKey string
	if ctrl.archive != nil {
		contentType := fileHeader.Header.Get("Content-Type")
		key, archiveErr := ctrl.archive.ArchiveImportFile(c.Request.Context(), fileHeader.Filename, contentType, data)
		if archiveErr != nil {
			// Archival is best-effort, the import itself still proceeds.
			log.Warn("Failed to archive import file", map[string]interface{}{
				"filename": fileHeader.Filename,
				"error":    archiveErr.Error(),
			})
		} else {
			archiveKey = key
		}
	}

	summary, err := ctrl.importService.ImportFile(fileHeader.Filename, bytes.NewReader(data))
	if err != nil {
		ctrl.respondImportError(c, fileHeader.Filename, err)
		return
	}

	log.Info("Dealer import completed", map[string]interface{}{
		"filename":      fileHeader.Filename,
		"success_count": summary.SuccessCount,
		"error_count":   summary.ErrorCount,
		"skipped_count": summary.SkippedCount,
	})

	response := gin.H{
		"message":       summary.Message(),
		"outcome":       summary.Outcome(),
		"success_count": summary.SuccessCount,
		"error_count":   summary.ErrorCount,
		"skipped_count": summary.SkippedCount,
	}
	if archiveKey != "" {
		response["archive_key"] = archiveKey
	}

	c.JSON(http.StatusOK, response)
}

func (ctrl *ImportController) respondImportError(c *gin.Context, filename string, err error) {
	log := middleware.GetLoggerFromContext(c)

	var headerErr *service.HeaderError
	var parseErr *service.ParseError
	switch {
	case errors.As(err, &headerErr):
		apperrors.BadRequest(c, apperrors.ImportMissingHeaders, headerErr.Error())
	case errors.As(err, &parseErr):
		apperrors.BadRequest(c, apperrors.ImportParseFailed, "Failed to parse the uploaded file")
	case errors.Is(err, service.ErrUnsupportedFormat):
		apperrors.BadRequest(c, apperrors.ImportUnsupportedFormat, "Unsupported file format, please upload a CSV or XLSX file")
	default:
		log.Error("Dealer import failed", err, map[string]interface{}{
			"filename": filename,
		})
		apperrors.Internal(c, "Failed to import dealers")
	}
}
