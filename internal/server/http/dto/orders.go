package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// OrderListQuery holds the raw query parameters of GET /api/orders. Empty values
// fall back to saved preferences.
type OrderListQuery struct {
	Q          *string `form:"q"`
	Status     *string `form:"status"`
	Package    *string `form:"package" validate:"omitempty,package"`
	Geo        *string `form:"geo"`
	Period     *string `form:"period" validate:"omitempty,oneof=today yesterday 7 30 month prev_month custom all"`
	From       string  `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string  `form:"to" validate:"omitempty,datetime=2006-01-02"`
	Tester     *string `form:"tester" validate:"omitempty,tester"`
	AmountFrom string  `form:"amountFrom" validate:"omitempty,numeric"`
	AmountTo   string  `form:"amountTo" validate:"omitempty,numeric"`
	Sort       string  `form:"sort" validate:"omitempty,sortkey"`
	Direction  string  `form:"direction" validate:"omitempty,oneof=asc desc"`
	Page       int     `form:"page" validate:"omitempty,min=1"`
	PageSize   int     `form:"pageSize" validate:"omitempty,oneof=10 25 50 100"`
}

// ClientResponse describes the ordering customer.
type ClientResponse struct {
	Username   string `json:"username,omitempty"`
	TelegramID *int64 `json:"telegramId,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// AttachmentResponse describes a client file.
type AttachmentResponse struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	FileName string `json:"fileName,omitempty"`
}

// PaymentProofResponse describes an uploaded payment confirmation.
type PaymentProofResponse struct {
	URL        string     `json:"url"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
	Admin      string     `json:"admin,omitempty"`
}

// OrderResponse is one order as shown in lists and detail views.
type OrderResponse struct {
	ID            int64                 `json:"id"`
	OrderNumber   string                `json:"orderNumber"`
	CreatedAt     time.Time             `json:"createdAt"`
	PaidAt        *time.Time            `json:"paidAt"`
	StartedAt     *time.Time            `json:"startedAt"`
	CompletedAt   *time.Time            `json:"completedAt"`
	CancelledAt   *time.Time            `json:"cancelledAt"`
	Status        model.OrderStatus     `json:"status"`
	StatusLabel   string                `json:"statusLabel"`
	StatusEmoji   string                `json:"statusEmoji,omitempty"`
	PackageType   model.PackageType     `json:"packageType"`
	PackageLabel  string                `json:"packageLabel"`
	Geo           string                `json:"geo"`
	GeoLabel      string                `json:"geoLabel"`
	PriceEur      *decimal.Decimal      `json:"priceEur"`
	Price         string                `json:"price"`
	Client        ClientResponse        `json:"client"`
	TesterID      *int64                `json:"testerId"`
	PaymentMethod string                `json:"paymentMethod,omitempty"`
	WebsiteURL    string                `json:"websiteUrl,omitempty"`
	ReportURL     string                `json:"reportUrl,omitempty"`
	Comments      string                `json:"comments,omitempty"`
	Attachments   []AttachmentResponse  `json:"attachments"`
	PaymentProof  *PaymentProofResponse `json:"paymentProof"`
	Overdue       bool                  `json:"overdue"`
}

// OrderListResponse is one page of orders together with the applied query.
type OrderListResponse struct {
	Items     []OrderResponse  `json:"items"`
	Total     int              `json:"total"`
	Page      int              `json:"page"`
	PageSize  int              `json:"pageSize"`
	Pages     int              `json:"pages"`
	Filters   model.FilterSpec `json:"filters"`
	Sort      string           `json:"sort"`
	Direction string           `json:"direction"`
	Freshness
}

// OrderRef points at a neighbouring order.
type OrderRef struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"orderNumber"`
}

// ClientSummaryResponse describes the order history of the client.
type ClientSummaryResponse struct {
	Key          string     `json:"key"`
	TotalOrders  int        `json:"totalOrders"`
	Spent        string     `json:"spent"`
	FirstOrderAt *time.Time `json:"firstOrderAt"`
	LastOrderAt  *time.Time `json:"lastOrderAt"`
}

// TimelineResponse flags reached lifecycle steps.
type TimelineResponse struct {
	Created   bool `json:"created"`
	Paid      bool `json:"paid"`
	Started   bool `json:"started"`
	Completed bool `json:"completed"`
}

// OrderDetailResponse is the order page.
type OrderDetailResponse struct {
	Order        OrderResponse         `json:"order"`
	Tester       *TesterResponse       `json:"tester"`
	Client       ClientSummaryResponse `json:"client"`
	Previous     *OrderRef             `json:"previous"`
	Next         *OrderRef             `json:"next"`
	Activity     []ActivityResponse    `json:"activity"`
	Timeline     TimelineResponse      `json:"timeline"`
	Overdue      bool                  `json:"overdue"`
	HoursWaiting *int                  `json:"hoursWaiting,omitempty"`
	Freshness
}

// StatusRequest changes the status of one order.
type StatusRequest struct {
	Status string `json:"status" validate:"required,orderstatus"`
}
