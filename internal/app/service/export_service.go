package service

import (
	"strings"

	"github.com/dealerlist/dealerlist-backend/internal/app/model"
)

// exportHeaders is the fixed column set of the dealer export.
var exportHeaders = []string{"Name", "City", "Contact Number", "Alternate Number", "Status"}

// ExportCSV renders the record set as CSV: a plain header row, then
// one row per dealer with every field value quote-wrapped and internal
// quotes doubled, fields comma-joined, rows newline-joined. Blank
// status exports as the literal "Pending".
func ExportCSV(dealers []model.Dealer) string {
	var b strings.Builder

	b.WriteString(strings.Join(exportHeaders, ","))
	for _, d := range dealers {
		b.WriteByte('\n')
		writeExportRow(&b, []string{
			d.Name,
			d.City,
			d.ContactNumber,
			d.AlternateNumber,
			d.Status.Display(),
		})
	}

	return b.String()
}

func writeExportRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
}
