package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"ping-tool/internal/models"
)

// WritePDF renders the run summary as a PDF document: a header, the
// run-wide counts, one statistics table per category, and a section for
// files with issues.
func WritePDF(path string, summary *models.Summary) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Ping Analysis Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writePDFSummary(pdf, summary)

	for _, name := range summary.Categories() {
		writePDFCategoryTable(pdf, strings.ToUpper(name), summary.ByCategory[name])
	}

	writePDFIssues(pdf, summary)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func writePDFSummary(pdf *fpdf.Fpdf, summary *models.Summary) {
	withTS, withMissing, withAbnormal, totalMissing, totalAbnormal := summary.Counts()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	rows := []struct {
		label string
		value int
	}{
		{"Files analyzed", summary.TotalFiles()},
		{"Files with timestamps", withTS},
		{"Files with missing pings", withMissing},
		{"Files with abnormal intervals", withAbnormal},
		{"Total missing pings", totalMissing},
		{"Total abnormal intervals", totalAbnormal},
	}
	for _, row := range rows {
		pdf.CellFormat(80, 6, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", row.value), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writePDFCategoryTable(pdf *fpdf.Fpdf, title string, group []*models.Analysis) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s (%d files)", title, len(group)), "", 1, "L", false, 0, "")

	headers := []string{"File", "Target", "Pings", "Loss %", "Min", "Avg", "Max", "Miss", "Abn"}
	widths := []float64{50, 45, 14, 14, 14, 14, 14, 12, 12}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(220, 220, 220)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, a := range group {
		cells := []string{
			truncate(filepath.Base(a.Filename), 34),
			truncate(a.DisplayTarget(), 30),
			fmt.Sprintf("%d", a.Received),
			fmt.Sprintf("%.1f", a.PacketLoss),
			fmt.Sprintf("%.2f", a.Latency.Min),
			fmt.Sprintf("%.2f", a.Latency.Avg),
			fmt.Sprintf("%.2f", a.Latency.Max),
			fmt.Sprintf("%d", len(a.MissingSeq)),
			fmt.Sprintf("%d", len(a.AbnormalIntervals)),
		}
		for i, c := range cells {
			align := "R"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func writePDFIssues(pdf *fpdf.Fpdf, summary *models.Summary) {
	var flagged []*models.Analysis
	for _, a := range summary.All() {
		if a.HasIssues() {
			flagged = append(flagged, a)
		}
	}
	if len(flagged) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Files with Issues", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)

	for _, a := range flagged {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 6, filepath.Base(a.Filename), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)

		if len(a.MissingSeq) > 0 {
			pdf.MultiCell(0, 5, fmt.Sprintf("Missing sequences (%d): %s",
				len(a.MissingSeq), truncate(joinInts(a.MissingSeq, ", "), 400)), "", "L", false)
		}
		for _, ab := range a.AbnormalIntervals {
			pdf.CellFormat(0, 5, fmt.Sprintf("After sequence %d: %.2fs gap (expected ~%.2fs)",
				ab.AfterSeq, ab.Gap, ab.Expected), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
