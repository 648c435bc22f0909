package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"optifuel/api/internal/model"
)

func TestExportHistory(t *testing.T) {
	actual := 107.0
	voyages := []model.Voyage{
		{
			ID: 2, CreatedAt: time.Date(2024, time.July, 9, 14, 30, 0, 0, time.UTC),
			RouteID: model.RouteLagosApapa, ShipType: model.ShipTypeFishingTrawler,
			FuelType: model.FuelTypeDiesel, WeatherConditions: model.WeatherStormy, Month: 7,
			Distance: 40, EngineEfficiency: 75, PredictedFuelConsumption: 100, ActualFuelConsumption: &actual,
		},
		{
			ID: 1, CreatedAt: time.Date(2024, time.July, 8, 9, 0, 0, 0, time.UTC),
			RouteID: model.RouteWarriBonny, ShipType: model.ShipTypeTankerShip,
			FuelType: model.FuelTypeHFO, WeatherConditions: model.WeatherCalm, Month: 7,
			Distance: 300, EngineEfficiency: 90, PredictedFuelConsumption: 5000,
		},
	}

	buf, err := ExportHistory(voyages)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{HistorySheet}, f.GetSheetList())

	rows, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, historyHeaders, rows[0])

	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "2024-07-09 14:30:00", rows[1][1])
	assert.Equal(t, "Fishing Trawler", rows[1][3])
	assert.Equal(t, "107", rows[1][10])
	assert.Equal(t, "7", rows[1][11])
	assert.Equal(t, "Warning", rows[1][12])

	assert.Equal(t, "1", rows[2][0])
	assert.Equal(t, "5000", rows[2][9])
	for _, cell := range rows[2][10:] {
		assert.Empty(t, cell)
	}
}

func TestExportHistoryEmpty(t *testing.T) {
	buf, err := ExportHistory(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExportHistoryColumnWidths(t *testing.T) {
	last, err := excelize.ColumnNumberToName(len(historyHeaders))
	require.NoError(t, err)
	assert.Equal(t, last, historyColumnWidths[len(historyColumnWidths)-1].to)

	buf, err := ExportHistory(nil)
	require.NoError(t, err)
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	for col, want := range map[string]float64{"A": 8, "B": 20, "C": 16, last: 16} {
		width, err := f.GetColWidth(HistorySheet, col)
		require.NoError(t, err)
		assert.InDelta(t, want, width, 1e-9, "column %s", col)
	}
}
