package service

import (
	"strings"
	"testing"

	"github.com/dealerlist/dealerlist-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	dealers := []model.Dealer{
		{
			Name:            "John Smith",
			City:            "New Delhi",
			ContactNumber:   "9876543210",
			AlternateNumber: "9876543211",
			Status:          model.StatusVerified,
		},
		{
			Name:          "Priya Sharma",
			City:          "Mumbai",
			ContactNumber: "9876543212",
			Status:        model.StatusPending,
		},
	}

	out := ExportCSV(dealers)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Name,City,Contact Number,Alternate Number,Status", lines[0])
	assert.Equal(t, `"John Smith","New Delhi","9876543210","9876543211","verified"`, lines[1])
	assert.Equal(t, `"Priya Sharma","Mumbai","9876543212","","Pending"`, lines[2])
}

func TestExportCSV_QuotesDoubled(t *testing.T) {
	dealers := []model.Dealer{
		{Name: `Raj "RK" Kapoor`, City: "Pune", ContactNumber: "9876543210"},
	}

	out := ExportCSV(dealers)
	assert.Contains(t, out, `"Raj ""RK"" Kapoor"`)
}

func TestExportCSV_EmptySet(t *testing.T) {
	out := ExportCSV(nil)
	assert.Equal(t, "Name,City,Contact Number,Alternate Number,Status", out)
}
