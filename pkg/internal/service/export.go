package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/internal/types"
)

var exportHeader = []any{
	"Fracción", "Nombre", "Año", "Periodo", "Archivo", "Tamaño", "Versión", "Vigente", "Fecha de carga",
}

// Export renders the filtered listing as a spreadsheet, one sheet per
// fraction. Pagination is ignored: the export always covers the full
// filtered set.
func (ds *DocumentService) Export(ctx context.Context, requester *model.UserProfile, req *types.ListRequest) (*excelize.File, error) {
	if requester == nil || !requester.HasDepartment() {
		return nil, fmt.Errorf("%w: no department assignment", types.ErrUnauthorized)
	}

	if req.State == "" {
		req.State = types.StateCurrent
	}

	full := *req
	full.Page = 1
	full.PageSize = exportPageSize

	listing, err := ds.listFromDB(ctx, requester, &full)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)

	sheets := make(map[string]int) // sheet name -> next row
	for i := range listing.Documents {
		d := &listing.Documents[i]

		sheet := "Fracción " + d.FractionNumber
		row, ok := sheets[sheet]
		if !ok {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
			}

			if err := writeRow(f, sheet, 1, exportHeader); err != nil {
				return nil, err
			}

			row = 2
		}

		current := "No"
		if d.IsCurrent {
			current = "Sí"
		}

		err := writeRow(f, sheet, row, []any{
			d.FractionNumber,
			d.FractionName,
			d.Year,
			d.PeriodCode,
			d.OriginalName,
			d.HumanSize,
			d.Version,
			current,
			d.CreatedAt.Format("2006-01-02 15:04"),
		})
		if err != nil {
			return nil, err
		}

		sheets[sheet] = row + 1
	}

	if len(sheets) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, fmt.Errorf("drop default sheet: %w", err)
		}
	}

	return f, nil
}

// exportPageSize bounds an export to a size excelize handles comfortably.
const exportPageSize = 10000

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell for row %d: %w", row, err)
	}

	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d of %s: %w", row, sheet, err)
	}

	return nil
}
