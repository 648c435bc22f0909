package model

// ShipDeviation 船型平均偏差
type ShipDeviation struct {
	ShipType     string  `json:"shipType"`
	AvgDeviation float64 `json:"avgDeviation"`
}

// AnalyticsSummary 账户汇总统计
type AnalyticsSummary struct {
	TotalVoyages           int             `json:"totalVoyages"`
	TotalPredictedVolume   float64         `json:"totalPredictedVolume"`
	TotalActualVolume      float64         `json:"totalActualVolume"`
	GlobalAverageDeviation float64         `json:"globalAverageDeviation"`
	ShipEfficiency         []ShipDeviation `json:"shipEfficiency"`
}

// TrendPoint 趋势点
type TrendPoint struct {
	Date      string  `json:"date"`
	Predicted float64 `json:"predicted"`
	Actual    float64 `json:"actual"`
}

// HistogramBucket 偏差直方图桶
type HistogramBucket struct {
	Category DeviationCategory `json:"category"`
	Range    string            `json:"range"`
	Count    int               `json:"count"`
}

// WeatherConsumption 天气平均油耗
type WeatherConsumption struct {
	Weather        string  `json:"weather"`
	AvgConsumption float64 `json:"avgConsumption"`
}

// AnalyticsCharts 图表数据
type AnalyticsCharts struct {
	ShipStats      []ShipDeviation      `json:"shipStats"`
	TrendStats     []TrendPoint         `json:"trendStats"`
	HistogramStats []HistogramBucket    `json:"histogramStats"`
	WeatherStats   []WeatherConsumption `json:"weatherStats"`
}
