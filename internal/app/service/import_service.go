package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dealerlist/dealerlist-backend/internal/app/model"
	"github.com/dealerlist/dealerlist-backend/internal/app/repository"
	"github.com/dealerlist/dealerlist-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// Logical fields a column can classify to.
const (
	fieldName      = "Name"
	fieldCity      = "City"
	fieldContact   = "Contact Number"
	fieldAlternate = "Alternate Number"
)

// requiredHeaders are the logical headers a file must carry. A logical
// header is present when any actual column classifies to it under the
// same substring rules the rows are normalized with, so "Full Name",
// "contact number" and "ContactNumber" all satisfy an entry.
var requiredHeaders = []string{fieldName, fieldCity, fieldContact}

// ImportSummary is the reconciliation tally of one import batch.
type ImportSummary struct {
	SuccessCount int `json:"success_count"`
	ErrorCount   int `json:"error_count"`
	SkippedCount int `json:"skipped_count"`
}

// Outcome classifies the batch from the three counts alone: success
// when nothing failed, warning when failures were accompanied by
// skipped rows, error otherwise.
func (s ImportSummary) Outcome() string {
	if s.ErrorCount == 0 {
		return "success"
	}
	if s.SkippedCount > 0 {
		return "warning"
	}
	return "error"
}

// Message renders the user-facing completion line.
func (s ImportSummary) Message() string {
	return fmt.Sprintf("Import complete: %d dealers added, %d errors, %d skipped due to missing data",
		s.SuccessCount, s.ErrorCount, s.SkippedCount)
}

// HeaderError rejects the whole batch before any row is processed.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return "file is missing required headers: ensure it has Name, City, and Contact Number columns"
}

// ParseError reports a malformed file; it short-circuits before any
// row logic runs and is not counted in the summary.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse file: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var ErrUnsupportedFormat = errors.New("unsupported file format, expected .csv or .xlsx")

type ImportService interface {
	// ImportFile parses the file and runs the reconciliation pipeline,
	// persisting complete rows one at a time in file order.
	ImportFile(filename string, r io.Reader) (ImportSummary, error)
}

type importService struct {
	repo repository.DealerRepository
}

func NewImportService(repo repository.DealerRepository) ImportService {
	return &importService{repo: repo}
}

func (s *importService) ImportFile(filename string, r io.Reader) (ImportSummary, error) {
	var (
		headers []string
		rows    []map[string]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		headers, rows, err = ParseCSV(r)
	case ".xlsx":
		headers, rows, err = ParseXLSX(r)
	default:
		return ImportSummary{}, ErrUnsupportedFormat
	}
	if err != nil {
		logger.Warn("Import file failed to parse", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		return ImportSummary{}, &ParseError{Err: err}
	}

	summary, err := ImportRows(headers, rows, func(input model.DealerInput) error {
		return s.repo.Create(input.ToDealer())
	})
	if err != nil {
		return summary, err
	}

	logger.Info("Import batch completed", map[string]interface{}{
		"filename": filename,
		"success":  summary.SuccessCount,
		"errors":   summary.ErrorCount,
		"skipped":  summary.SkippedCount,
		"outcome":  summary.Outcome(),
	})
	return summary, nil
}

// ImportRows is the reconciliation pipeline proper. Headers are
// validated once over the whole file; rows are then classified,
// completeness-checked, normalized and handed to createFn strictly
// sequentially in file order. A failed create counts as an error for
// that row only and processing continues.
func ImportRows(headers []string, rows []map[string]string, createFn func(model.DealerInput) error) (ImportSummary, error) {
	if missing := missingRequiredHeaders(headers); len(missing) > 0 {
		logger.Warn("Import rejected, required headers missing", map[string]interface{}{
			"missing": missing,
			"headers": headers,
		})
		return ImportSummary{}, &HeaderError{Missing: missing}
	}

	var summary ImportSummary
	for _, row := range rows {
		input, complete := normalizeRow(headers, row)
		if !complete {
			summary.SkippedCount++
			continue
		}

		// Imported dealers always enter the verification queue; any
		// status-like column in the file is ignored.
		input.Status = model.StatusPending

		if err := createFn(input.Normalize()); err != nil {
			logger.Warn("Import row failed to persist", map[string]interface{}{
				"name":  input.Name,
				"city":  input.City,
				"error": err.Error(),
			})
			summary.ErrorCount++
			continue
		}
		summary.SuccessCount++
	}

	return summary, nil
}

func missingRequiredHeaders(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		if field := classifyHeader(h); field != "" {
			present[field] = true
		}
	}

	var missing []string
	for _, required := range requiredHeaders {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	return missing
}

// classifyHeader maps an actual column name onto the logical field it
// feeds, by substring and first-match-wins: a key containing "name"
// but not "alternate" is the name, then city, then contact, then
// alternate. Unrecognized keys classify to nothing. Header validation
// and row normalization share this rule, so any file that passes
// validation has somewhere to put every required value.
func classifyHeader(key string) string {
	lower := strings.ToLower(key)
	switch {
	case strings.Contains(lower, "name") && !strings.Contains(lower, "alternate"):
		return fieldName
	case strings.Contains(lower, "city"):
		return fieldCity
	case strings.Contains(lower, "contact"):
		return fieldContact
	case strings.Contains(lower, "alternate"):
		return fieldAlternate
	}
	return ""
}

// normalizeRow gathers a row's values by classified column. Iteration
// follows header order so the mapping is deterministic for duplicate
// matches. The second return is false when the row lacks a name, city
// or contact number and must be counted as skipped.
func normalizeRow(headers []string, row map[string]string) (model.DealerInput, bool) {
	var input model.DealerInput
	for _, key := range headers {
		value := row[key]
		switch classifyHeader(key) {
		case fieldName:
			input.Name = value
		case fieldCity:
			input.City = value
		case fieldContact:
			input.ContactNumber = value
		case fieldAlternate:
			input.AlternateNumber = value
		}
	}

	complete := input.Name != "" && input.City != "" && input.ContactNumber != ""
	return input, complete
}

// ParseCSV reads UTF-8 tabular text: first row headers, subsequent
// rows data keyed by header. Short rows are padded with empty fields;
// a leading byte-order mark is tolerated.
func ParseCSV(r io.Reader) ([]string, []map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("file is empty")
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}

	rows := recordsToRows(headers, records[1:])
	return headers, rows, nil
}

// ParseXLSX reads the first sheet of an Excel workbook the same way.
func ParseXLSX(r io.Reader) ([]string, []map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, errors.New("no sheets found in workbook")
	}

	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("no data found in workbook")
	}

	headers := records[0]
	rows := recordsToRows(headers, records[1:])
	return headers, rows, nil
}

func recordsToRows(headers []string, records [][]string) []map[string]string {
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		if isBlankRecord(record) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
