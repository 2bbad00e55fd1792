package tabio

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/draftline/rosterlink/internal/model"
	"github.com/draftline/rosterlink/internal/resolve"
)

const reviewSheetName = "review"

// WriteWorkbook writes the review workbook: one row per ambiguous case
// with topN ranked candidate columns plus empty confirmed_identifier
// and notes columns for the reviewer.
func WriteWorkbook(path string, rows []resolve.WorkbookRow, topN int) error {
	if topN <= 0 {
		topN = resolve.DefaultMatchPolicy().TopN
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(reviewSheetName)
	if err != nil {
		return eris.Wrap(err, "tabio: add review sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"source", "original_identifier", "full_name", "birth_date", "position", "state"} {
		header.AddCell().SetString(h)
	}
	for i := 1; i <= topN; i++ {
		header.AddCell().SetString(fmt.Sprintf("candidate_%d_id", i))
		header.AddCell().SetString(fmt.Sprintf("candidate_%d_name", i))
		header.AddCell().SetString(fmt.Sprintf("candidate_%d_score", i))
	}
	header.AddCell().SetString("confirmed_identifier")
	header.AddCell().SetString("notes")

	for _, wr := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(string(wr.Source))
		row.AddCell().SetString(wr.SourceID)
		row.AddCell().SetString(wr.FullName)
		row.AddCell().SetString(wr.BirthDate)
		row.AddCell().SetString(wr.Position)
		row.AddCell().SetString(string(wr.State))

		for i := 0; i < topN; i++ {
			if i < len(wr.Candidates) {
				c := wr.Candidates[i]
				row.AddCell().SetString(c.CanonicalID)
				row.AddCell().SetString(c.Name)
				row.AddCell().SetFloat(c.FinalScore)
			} else {
				row.AddCell()
				row.AddCell()
				row.AddCell()
			}
		}

		// Decision columns left blank for the reviewer.
		row.AddCell()
		row.AddCell()
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "tabio: save workbook %s", path)
	}
	zap.L().Info("review workbook written",
		zap.String("path", path),
		zap.Int("rows", len(rows)))
	return nil
}

// ReadOverridesXLSX reads reviewer decisions back out of a review
// workbook. Rows whose confirmed_identifier is blank are skipped. The
// original identifier is taken from the original_identifier column
// (or source_id, for workbooks produced by other tooling).
func ReadOverridesXLSX(path string, source model.Source) ([]model.Override, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tabio: open workbook %s", path)
	}
	if len(file.Sheets) == 0 {
		return nil, eris.Errorf("tabio: workbook %s has no sheets", path)
	}

	sheet, ok := file.Sheet[reviewSheetName]
	if !ok {
		sheet = file.Sheets[0]
	}
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	origIdx, confirmedIdx, notesIdx := -1, -1, -1
	for i, cell := range sheet.Rows[0].Cells {
		switch strings.ToLower(strings.TrimSpace(cell.String())) {
		case "original_identifier":
			origIdx = i
		case "source_id":
			if origIdx == -1 {
				origIdx = i
			}
		case "confirmed_identifier":
			confirmedIdx = i
		case "notes":
			notesIdx = i
		}
	}
	if origIdx == -1 || confirmedIdx == -1 {
		return nil, eris.Errorf("tabio: workbook %s is missing original_identifier/confirmed_identifier columns", path)
	}

	var overrides []model.Override
	for _, row := range sheet.Rows[1:] {
		original := cellAt(row, origIdx)
		confirmed := cellAt(row, confirmedIdx)
		if confirmed == "" {
			continue
		}
		overrides = append(overrides, model.Override{
			Source:      source,
			OriginalID:  original,
			ConfirmedID: confirmed,
			Notes:       cellAt(row, notesIdx),
		})
	}
	return overrides, nil
}

func cellAt(row *xlsx.Row, idx int) string {
	if idx < 0 || idx >= len(row.Cells) {
		return ""
	}
	return strings.TrimSpace(row.Cells[idx].String())
}
