package dto

import (
	"time"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// PreferencesRequest replaces the saved settings of the operator.
type PreferencesRequest struct {
	Filters      *model.FilterSpec `json:"filters"`
	PageSize     int               `json:"pageSize" validate:"omitempty,oneof=10 25 50 100"`
	MetricsRange string            `json:"metricsRange" validate:"omitempty,metricsrange"`
}

// PreferencesResponse is the effective settings of the operator.
type PreferencesResponse struct {
	Filters      model.FilterSpec `json:"filters"`
	PageSize     int              `json:"pageSize"`
	MetricsRange string           `json:"metricsRange"`
	UpdatedAt    *time.Time       `json:"updatedAt,omitempty"`
}
