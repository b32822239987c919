// Package export renders a project's plan version history as an xlsx
// workbook for offline review.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"webplanner/entities"
	"webplanner/pkg/plan/types"
)

const sheet = "Versions"

func VersionHistoryWorkbook(project *entities.Project, plans []entities.Plan) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Version", "Type", "Created", "Suggestions", "Selected", "Triggering feedback"}
	for i, hv := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, hv); err != nil {
			return nil, err
		}
	}

	// plans arrive newest first; keep that order.
	for row, p := range plans {
		var content types.PlanContent
		_ = json.Unmarshal([]byte(p.ContentJSON), &content)
		selected := 0
		for _, sg := range content.Suggestions {
			if sg.Selected {
				selected++
			}
		}
		feedback := ""
		if p.FeedbackText != nil {
			feedback = excerpt(*p.FeedbackText, 300)
		}
		values := []any{
			p.Version,
			p.PlanType,
			p.CreatedAt.Format("2006-01-02 15:04"),
			len(content.Suggestions),
			selected,
			feedback,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetSheetName(sheet, fmt.Sprintf("%.25s", project.Name+" versions"))
	return f, nil
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
