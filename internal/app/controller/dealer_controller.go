package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dealerlist/dealerlist-backend/internal/app/model"
	"github.com/dealerlist/dealerlist-backend/internal/app/service"
	apperrors "github.com/dealerlist/dealerlist-backend/internal/errors"
	"github.com/dealerlist/dealerlist-backend/internal/middleware"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type DealerController struct {
	dealerService  service.DealerService
	summaryService service.SummaryService
}

func NewDealerController(dealerService service.DealerService, summaryService service.SummaryService) *DealerController {
	return &DealerController{
		dealerService:  dealerService,
		summaryService: summaryService,
	}
}

type DealerRequest struct {
	Name            string `json:"name"`
	City            string `json:"city"`
	ContactNumber   string `json:"contact_number"`
	AlternateNumber string `json:"alternate_number"`
	Status          string `json:"status"`
}

func (r DealerRequest) toInput() model.DealerInput {
	return model.DealerInput{
		Name:            r.Name,
		City:            r.City,
		ContactNumber:   r.ContactNumber,
		AlternateNumber: r.AlternateNumber,
		Status:          model.DealerStatus(r.Status),
	}
}

// ListDealers returns one page of the filtered dealer set
// GET /api/v1/dealers
func (ctrl *DealerController) ListDealers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.QueryOptions{
		Status:   c.Query("status"),
		City:     c.Query("city"),
		Search:   c.Query("search"),
		Page:     parsePositiveInt(c.Query("page"), 1),
		PageSize: parsePositiveInt(c.Query("page_size"), defaultPageSize),
	}
	if opts.PageSize > maxPageSize {
		opts.PageSize = maxPageSize
	}

	result, err := ctrl.dealerService.ListDealers(opts)
	if err != nil {
		log.Error("Failed to list dealers", err, nil)
		apperrors.Internal(c, "Failed to fetch dealers")
		return
	}

	log.Info("Dealers listed", map[string]interface{}{
		"total_count": result.Page.TotalCount,
		"page":        opts.Page,
	})

	c.JSON(http.StatusOK, gin.H{
		"dealers":     result.Page.Items,
		"total_count": result.Page.TotalCount,
		"total_pages": result.Page.TotalPages,
		"page":        opts.Page,
		"cities":      result.Cities,
	})
}

// GetDealerByID returns a single dealer
// GET /api/v1/dealers/:id
func (ctrl *DealerController) GetDealerByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	dealer, err := ctrl.dealerService.GetDealerByID(id)
	if err != nil {
		if errors.Is(err, service.ErrDealerNotFound) {
			apperrors.NotFound(c, apperrors.DealerNotFound, "Dealer not found")
			return
		}
		log.Error("Failed to fetch dealer", err, map[string]interface{}{
			"dealer_id": id,
		})
		apperrors.Internal(c, "Failed to fetch dealer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dealer": dealer,
	})
}

// CreateDealer creates a dealer from the entry form
// POST /api/v1/dealers
func (ctrl *DealerController) CreateDealer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req DealerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid dealer creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	dealer, err := ctrl.dealerService.CreateDealer(req.toInput())
	if err != nil {
		ctrl.respondMutationError(c, err, "Failed to add dealer")
		return
	}

	log.Info("Dealer created", map[string]interface{}{
		"dealer_id": dealer.ID,
		"name":      dealer.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Dealer added successfully!",
		"dealer":  dealer,
	})
}

// UpdateDealer applies a full-form edit, any field including status
// PUT /api/v1/dealers/:id
func (ctrl *DealerController) UpdateDealer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req DealerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	dealer, err := ctrl.dealerService.UpdateDealer(id, req.toInput())
	if err != nil {
		ctrl.respondMutationError(c, err, "Failed to update dealer")
		return
	}

	log.Info("Dealer updated", map[string]interface{}{
		"dealer_id": dealer.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Dealer updated successfully!",
		"dealer":  dealer,
	})
}

// DeleteDealer removes a dealer permanently
// DELETE /api/v1/dealers/:id
func (ctrl *DealerController) DeleteDealer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.dealerService.DeleteDealer(id); err != nil {
		if errors.Is(err, service.ErrDealerNotFound) {
			apperrors.NotFound(c, apperrors.DealerNotFound, "Dealer not found")
			return
		}
		log.Error("Failed to delete dealer", err, map[string]interface{}{
			"dealer_id": id,
		})
		apperrors.Internal(c, "Failed to delete dealer")
		return
	}

	log.Info("Dealer deleted", map[string]interface{}{
		"dealer_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Dealer deleted successfully!",
	})
}

// ExportDealers streams the filtered set as a CSV download
// GET /api/v1/dealers/export
func (ctrl *DealerController) ExportDealers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	dealers, err := ctrl.dealerService.FilteredDealers(service.QueryOptions{
		Status: c.Query("status"),
		City:   c.Query("city"),
		Search: c.Query("search"),
	})
	if err != nil {
		log.Error("Failed to export dealers", err, nil)
		apperrors.Internal(c, "Failed to export dealers")
		return
	}

	log.Info("Dealers exported", map[string]interface{}{
		"count": len(dealers),
	})

	c.Header("Content-Disposition", `attachment; filename="dealers-export.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(service.ExportCSV(dealers)))
}

// GetSummary returns the dashboard statistics
// GET /api/v1/dealers/summary
func (ctrl *DealerController) GetSummary(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	summary, err := ctrl.summaryService.GetSummary(c.Request.Context())
	if err != nil {
		log.Error("Failed to compute dealer summary", err, nil)
		apperrors.Internal(c, "Failed to fetch summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
	})
}

func (ctrl *DealerController) respondMutationError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		apperrors.ValidationFailure(c, vErr.Fields)
	case errors.Is(err, service.ErrInvalidStatus):
		apperrors.BadRequest(c, apperrors.DealerInvalidStatus, "Invalid dealer status")
	case errors.Is(err, service.ErrDealerNotFound):
		apperrors.NotFound(c, apperrors.DealerNotFound, "Dealer not found")
	default:
		log.Error(fallback, err, nil)
		apperrors.Internal(c, fallback)
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid dealer ID")
		return 0, false
	}
	return uint(id), true
}

func parsePositiveInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
