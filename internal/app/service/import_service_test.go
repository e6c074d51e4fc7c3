package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/dealerlist/dealerlist-backend/internal/app/model"
	"github.com/dealerlist/dealerlist-backend/internal/app/repository"
	"github.com/dealerlist/dealerlist-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectCreates(created *[]model.DealerInput) func(model.DealerInput) error {
	return func(input model.DealerInput) error {
		*created = append(*created, input)
		return nil
	}
}

func TestImportRows_HeaderVariantsAccepted(t *testing.T) {
	headers := []string{"Full Name", "City", "Contact No", "Alt Number"}
	rows := []map[string]string{
		{"Full Name": "John Smith", "City": "New Delhi", "Contact No": "9876543210", "Alt Number": "9876543211"},
		{"Full Name": "Priya Sharma", "City": "Mumbai", "Contact No": "9876543212", "Alt Number": ""},
	}

	var created []model.DealerInput
	summary, err := ImportRows(headers, rows, collectCreates(&created))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 0, summary.ErrorCount)
	assert.Equal(t, 0, summary.SkippedCount)
	require.Len(t, created, 2)
	assert.Equal(t, "John Smith", created[0].Name)
	assert.Equal(t, "9876543210", created[0].ContactNumber)
	// "Alt Number" does not contain "alternate", so the column is
	// tolerated but its values are not mapped.
	assert.Equal(t, "", created[0].AlternateNumber)
}

func TestImportRows_VariantHeadersStillRequireCity(t *testing.T) {
	headers := []string{"Full Name", "Contact No"}
	rows := []map[string]string{
		{"Full Name": "John", "Contact No": "9876543210"},
	}

	summary, err := ImportRows(headers, rows, func(model.DealerInput) error {
		t.Fatal("createFn must not run")
		return nil
	})

	var headerErr *HeaderError
	require.ErrorAs(t, err, &headerErr)
	assert.Equal(t, []string{"City"}, headerErr.Missing)
	assert.Equal(t, ImportSummary{}, summary)
}

func TestImportRows_MissingRequiredHeaderRejectsBatch(t *testing.T) {
	headers := []string{"Name", "Contact Number"}
	rows := []map[string]string{
		{"Name": "John", "Contact Number": "9876543210"},
	}

	calls := 0
	summary, err := ImportRows(headers, rows, func(model.DealerInput) error {
		calls++
		return nil
	})

	var headerErr *HeaderError
	require.ErrorAs(t, err, &headerErr)
	assert.Equal(t, []string{"City"}, headerErr.Missing)
	assert.Zero(t, calls, "no row may be processed after a header error")
	assert.Equal(t, ImportSummary{}, summary)
}

func TestImportRows_HeaderMatchingIsSpaceAndCaseInsensitive(t *testing.T) {
	headers := []string{"name", "CITY", "ContactNumber"}
	rows := []map[string]string{
		{"name": "John", "CITY": "Pune", "ContactNumber": "9876543210"},
	}

	var created []model.DealerInput
	summary, err := ImportRows(headers, rows, collectCreates(&created))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SuccessCount)
}

func TestImportRows_IncompleteRowCountsAsSkipped(t *testing.T) {
	headers := []string{"Name", "City", "Contact Number"}
	rows := []map[string]string{
		{"Name": "John", "City": "Pune", "Contact Number": "9876543210"},
		{"Name": "NoPhone", "City": "Pune", "Contact Number": ""},
		{"Name": "Jane", "City": "Mumbai", "Contact Number": "9876543212"},
	}

	var created []model.DealerInput
	summary, err := ImportRows(headers, rows, collectCreates(&created))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 1, summary.SkippedCount)
	assert.Equal(t, 0, summary.ErrorCount)
	assert.Len(t, created, 2)
}

func TestImportRows_RowFailureDoesNotAbort(t *testing.T) {
	headers := []string{"Name", "City", "Contact Number"}
	rows := []map[string]string{
		{"Name": "First", "City": "Pune", "Contact Number": "9000000001"},
		{"Name": "Broken", "City": "Pune", "Contact Number": "9000000002"},
		{"Name": "Last", "City": "Pune", "Contact Number": "9000000003"},
	}

	var created []model.DealerInput
	summary, err := ImportRows(headers, rows, func(input model.DealerInput) error {
		if input.Name == "Broken" {
			return errors.New("store unavailable")
		}
		created = append(created, input)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
	require.Len(t, created, 2)
	assert.Equal(t, "First", created[0].Name)
	assert.Equal(t, "Last", created[1].Name)
}

func TestImportRows_StatusColumnIgnored(t *testing.T) {
	headers := []string{"Name", "City", "Contact Number", "Status"}
	rows := []map[string]string{
		{"Name": "John", "City": "Pune", "Contact Number": "987-654-3210", "Status": "verified"},
	}

	var created []model.DealerInput
	_, err := ImportRows(headers, rows, collectCreates(&created))
	require.NoError(t, err)

	require.Len(t, created, 1)
	assert.Equal(t, model.StatusPending, created[0].Status)
	assert.Equal(t, "9876543210", created[0].ContactNumber, "phones are normalized before persistence")
}

func TestImportRows_ZeroDataRowsIsSuccess(t *testing.T) {
	headers := []string{"Name", "City", "Contact Number"}

	summary, err := ImportRows(headers, nil, func(model.DealerInput) error {
		t.Fatal("createFn must not run")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{}, summary)
	assert.Equal(t, "success", summary.Outcome())
}

func TestImportSummary_Outcome(t *testing.T) {
	tests := []struct {
		name    string
		summary ImportSummary
		want    string
	}{
		{"All succeeded", ImportSummary{SuccessCount: 3}, "success"},
		{"Skips without errors still success", ImportSummary{SuccessCount: 2, SkippedCount: 1}, "success"},
		{"Errors with skips", ImportSummary{SuccessCount: 1, ErrorCount: 1, SkippedCount: 1}, "warning"},
		{"Errors only", ImportSummary{ErrorCount: 2}, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.summary.Outcome())
		})
	}
}

func TestParseCSV(t *testing.T) {
	t.Run("Headers and rows", func(t *testing.T) {
		input := "Name,City,Contact Number,Alternate Number\n" +
			"John Smith,New Delhi,9876543210,9876543211\n" +
			"Priya Sharma,Mumbai,9876543212,\n"

		headers, rows, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "City", "Contact Number", "Alternate Number"}, headers)
		require.Len(t, rows, 2)
		assert.Equal(t, "John Smith", rows[0]["Name"])
		assert.Equal(t, "", rows[1]["Alternate Number"])
	})

	t.Run("BOM stripped from first header", func(t *testing.T) {
		input := "\uFEFFName,City,Contact Number\nJohn,Pune,9876543210\n"
		headers, _, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, "Name", headers[0])
	})

	t.Run("Short rows padded", func(t *testing.T) {
		input := "Name,City,Contact Number\nJohn,Pune\n"
		_, rows, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "", rows[0]["Contact Number"])
	})

	t.Run("Empty file is a parse error", func(t *testing.T) {
		_, _, err := ParseCSV(strings.NewReader(""))
		assert.Error(t, err)
	})

	t.Run("Malformed quoting is a parse error", func(t *testing.T) {
		input := "Name,City\n\"unterminated,Pune\n"
		_, _, err := ParseCSV(strings.NewReader(input))
		assert.Error(t, err)
	})
}

func TestImportService_ImportFile(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	repo := repository.NewDealerRepository(testDB)
	importService := NewImportService(repo)

	csvData := "Full Name,City,Contact No,Alt Number\n" +
		"John Smith,New Delhi,987-654-3210,9876543211\n" +
		",Mumbai,9876543212,\n" +
		"Priya Sharma,Mumbai,9876543213,\n"

	summary, err := importService.ImportFile("dealers.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 1, summary.SkippedCount)
	assert.Equal(t, 0, summary.ErrorCount)

	dealers, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, dealers, 2)
	for _, d := range dealers {
		assert.Equal(t, model.StatusPending, d.Status)
	}

	t.Run("Unsupported extension", func(t *testing.T) {
		_, err := importService.ImportFile("dealers.txt", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("Parse failure short-circuits", func(t *testing.T) {
		_, err := importService.ImportFile("broken.csv", strings.NewReader("Name,City\n\"bad"))
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}
