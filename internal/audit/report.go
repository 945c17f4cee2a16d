// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package audit

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
)

// Table layout for the A4 portrait report (millimetres).
const (
	reportMarginMM   = 14.0
	rowHeightMM      = 6.0
	pageBreakYMM     = 270.0
	colWidthID       = 18.0
	colWidthAction   = 52.0
	colWidthUser     = 38.0
	colWidthTarget   = 20.0
	colWidthTime     = 54.0
	maxActionChars   = 25
	maxUsernameChars = 15
)

// renderReport lays out the audit trail entries as a paginated PDF table.
//
// The table header is repeated at the top of every page, and a total-count
// line closes the document.
func renderReport(entries []*EntryWithActor, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(reportMarginMM, reportMarginMM, reportMarginMM)
	pdf.SetAutoPageBreak(false, reportMarginMM)
	pdf.AddPage()

	// Document title block
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Audit Log Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated: "+generatedAt.Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	writeTableHeader(pdf)

	pdf.SetFont("Helvetica", "", 8)
	for _, entry := range entries {
		if pdf.GetY() > pageBreakYMM {
			pdf.AddPage()
			writeTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 8)
		}

		target := "-"
		if entry.TargetID != nil {
			target = strconv.FormatInt(*entry.TargetID, 10)
		}

		pdf.CellFormat(colWidthID, rowHeightMM, strconv.FormatInt(entry.ID, 10), "", 0, "L", false, 0, "")
		pdf.CellFormat(colWidthAction, rowHeightMM, truncate(string(entry.Action), maxActionChars), "", 0, "L", false, 0, "")
		pdf.CellFormat(colWidthUser, rowHeightMM, truncate(entry.Username, maxUsernameChars), "", 0, "L", false, 0, "")
		pdf.CellFormat(colWidthTarget, rowHeightMM, target, "", 0, "L", false, 0, "")
		pdf.CellFormat(colWidthTime, rowHeightMM, entry.CreatedAt.Format("02.01.2006 15:04:05"), "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total entries: %d", len(entries)), "", 1, "C", false, 0, "")

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, fmt.Errorf("audit: failed to render PDF report: %w", err)
	}

	return buffer.Bytes(), nil
}

// writeTableHeader draws the bold column captions with a separator rule.
func writeTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colWidthID, rowHeightMM, "ID", "", 0, "L", false, 0, "")
	pdf.CellFormat(colWidthAction, rowHeightMM, "Action", "", 0, "L", false, 0, "")
	pdf.CellFormat(colWidthUser, rowHeightMM, "User", "", 0, "L", false, 0, "")
	pdf.CellFormat(colWidthTarget, rowHeightMM, "Target", "", 0, "L", false, 0, "")
	pdf.CellFormat(colWidthTime, rowHeightMM, "Timestamp", "", 1, "L", false, 0, "")

	y := pdf.GetY()
	pdf.Line(reportMarginMM, y, 210-reportMarginMM, y)
	pdf.Ln(1)
}

// truncate shortens s to at most max characters. It counts runes, not bytes,
// so multi-byte usernames are never cut mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
