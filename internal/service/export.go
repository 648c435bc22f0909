package service

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"optifuel/api/internal/analytics"
	"optifuel/api/internal/model"
)

// HistorySheet is the worksheet name of a history export
const HistorySheet = "History"

var historyHeaders = []string{
	"Id", "Created At", "Route", "Ship Type", "Fuel Type", "Weather", "Month",
	"Distance", "Engine Efficiency", "Predicted Fuel", "Actual Fuel", "Deviation (%)", "Category",
}

var historyColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 8},
	{"B", "B", 20},
	{"C", "M", 16},
}

// ExportHistory writes voyages to a single-sheet workbook, one row per voyage in the given order.
// Actual, deviation and category cells stay empty for voyages still underway.
func ExportHistory(voyages []model.Voyage) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(HistorySheet, "A1", &historyHeaders); err != nil {
		return nil, err
	}

	for i := range voyages {
		v := &voyages[i]
		row := []interface{}{
			v.ID,
			v.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			v.RouteID,
			v.ShipType,
			v.FuelType,
			v.WeatherConditions,
			v.Month,
			v.Distance,
			v.EngineEfficiency,
			v.PredictedFuelConsumption,
		}
		if d, ok := analytics.VoyageDeviation(v); ok {
			row = append(row, *v.ActualFuelConsumption, d, string(analytics.Categorize(d)))
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(HistorySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	// 设置列宽
	for _, w := range historyColumnWidths {
		if err := f.SetColWidth(HistorySheet, w.from, w.to, w.width); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
