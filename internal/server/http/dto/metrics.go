package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricsQuery selects the metrics window: a rolling range in days or explicit dates.
type MetricsQuery struct {
	Range string `form:"range" validate:"omitempty,numeric,min=1"`
	From  string `form:"from" validate:"required_with=To,omitempty,datetime=2006-01-02"`
	To    string `form:"to" validate:"required_with=From,omitempty,datetime=2006-01-02"`
}

// MetricResponse is one metric card.
type MetricResponse struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Icon       string           `json:"icon"`
	Value      float64          `json:"value"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Formatted  string           `json:"formatted"`
	Subtitle   string           `json:"subtitle,omitempty"`
	Previous   float64          `json:"previous"`
	Delta      float64          `json:"delta"`
	DeltaLabel string           `json:"deltaLabel"`
	Trend      string           `json:"trend"`
}

// MetricsResponse lists every metric for the window.
type MetricsResponse struct {
	Range   string           `json:"range"`
	From    time.Time        `json:"from"`
	To      time.Time        `json:"to"`
	Metrics []MetricResponse `json:"metrics"`
	Freshness
}

// RevenuePointResponse is one day of the revenue chart.
type RevenuePointResponse struct {
	Date   string          `json:"date"`
	Label  string          `json:"label"`
	Total  decimal.Decimal `json:"total"`
	Orders int             `json:"orders"`
}

// RevenueChartResponse is the revenue series for the metrics window.
type RevenueChartResponse struct {
	Range  string                 `json:"range"`
	Points []RevenuePointResponse `json:"points"`
	Freshness
}

// DistributionResponse is a status, geo or package chart.
type DistributionResponse struct {
	Slices []SliceResponse `json:"slices"`
	Freshness
}

// SliceResponse is one bucket of a distribution chart.
type SliceResponse struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}
