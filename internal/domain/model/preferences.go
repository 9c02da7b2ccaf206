package model

import "time"

// DefaultPageSize is the order list page size used until an operator picks another.
const DefaultPageSize = 25

// PageSizes lists the page sizes the list view offers.
var PageSizes = []int{10, 25, 50, 100}

// Preferences are the saved list filters and view settings of one operator.
type Preferences struct {
	OperatorID    int64
	Filters       FilterSpec
	PageSize      int
	MetricsWindow DateWindow
	UpdatedAt     time.Time
}

// DefaultPreferences returns the settings of an operator who never saved any.
func DefaultPreferences(operatorID int64) Preferences {
	return Preferences{
		OperatorID:    operatorID,
		Filters:       DefaultFilterSpec(),
		PageSize:      DefaultPageSize,
		MetricsWindow: RollingWindow(DefaultWindowDays),
	}
}
