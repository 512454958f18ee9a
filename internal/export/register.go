// Package export renders the complaint register for faculty download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/dmiher/complaint-portal/internal/models"
)

var registerHeaders = []string{"ID", "Student", "Student ID", "Department", "Type", "Subject", "Status", "Submitted", "Responded"}

func registerRow(c *models.Complaint) []string {
	responded := ""
	if c.RespondedAt != nil {
		responded = c.RespondedAt.Format(time.RFC3339)
	}
	return []string{
		c.ID,
		c.StudentName,
		c.StudentID,
		c.Department,
		c.ComplaintType,
		c.Subject,
		c.Status,
		c.CreatedAt.Format(time.RFC3339),
		responded,
	}
}

// RegisterCSV renders the complaint register as CSV bytes.
func RegisterCSV(complaints []models.Complaint) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(registerHeaders); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for i := range complaints {
		if err := writer.Write(registerRow(&complaints[i])); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// RegisterPDF renders the complaint register as a tabular PDF.
func RegisterPDF(complaints []models.Complaint, title string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 9)
	colWidth := 277.0 / float64(len(registerHeaders))
	for _, header := range registerHeaders {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for i := range complaints {
		for _, value := range registerRow(&complaints[i]) {
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
