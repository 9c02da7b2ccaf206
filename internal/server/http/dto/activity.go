package dto

import "time"

// ActivityQuery filters the activity feed.
type ActivityQuery struct {
	Type  string `form:"type" validate:"omitempty,eventtype"`
	Q     string `form:"q"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=200"`
}

// ActivityResponse is one feed item.
type ActivityResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Label       string    `json:"label"`
	Icon        string    `json:"icon"`
	Title       string    `json:"title,omitempty"`
	OrderID     *int64    `json:"orderId"`
	TesterID    *int64    `json:"testerId,omitempty"`
	Admin       string    `json:"admin,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Remindable  bool      `json:"remindable"`
}

// ActivityFeedResponse is the filtered activity feed.
type ActivityFeedResponse struct {
	Events []ActivityResponse `json:"events"`
	Freshness
}

// TesterResponse describes a tester.
type TesterResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	GeoFocus  string  `json:"geoFocus,omitempty"`
	Completed int     `json:"completed"`
	Rating    float64 `json:"rating"`
	Active    bool    `json:"active"`
}

// CountryResponse is reference data for one ISO code.
type CountryResponse struct {
	Name string `json:"name"`
	Flag string `json:"flag"`
}
