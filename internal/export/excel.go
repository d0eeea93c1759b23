// Package export writes recorded missions into the payslip-tracking
// spreadsheet layout.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spystrach/interimBot/internal/domain"
	"github.com/spystrach/interimBot/internal/render"
)

const sheet = "Sheet1"

// blockGap is the number of blank rows separating two agency blocks.
const blockGap = 2

// blockOrder fixes which agency block comes first in the workbook.
var blockOrder = []domain.Agency{domain.AgencyAppelMedical, domain.AgencyAdecco}

// Build assembles the workbook: one block per agency, a label row
// followed by one row per mission. The payslip template reads columns
// A=date, B=location, E=start, F=end (C and D stay blank).
func Build(missions []*domain.Mission) (*excelize.File, error) {
	f := excelize.NewFile()

	row := 1
	for _, agency := range blockOrder {
		if err := f.SetCellValue(sheet, cell("A", row), string(agency)); err != nil {
			return nil, fmt.Errorf("writing agency label: %w", err)
		}
		row++

		for _, m := range missions {
			if m.Agency != agency {
				continue
			}
			date, err := render.ExcelDate(m.Date)
			if err != nil {
				return nil, err
			}
			cells := map[string]string{
				"A": date,
				"B": m.Location,
				"E": m.StartTime,
				"F": m.EndTime,
			}
			for col, v := range cells {
				if err := f.SetCellValue(sheet, cell(col, row), v); err != nil {
					return nil, fmt.Errorf("writing mission row: %w", err)
				}
			}
			row++
		}
		row += blockGap
	}

	return f, nil
}

// Save builds the workbook and writes it to path.
func Save(missions []*domain.Mission, path string) error {
	f, err := Build(missions)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
