package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle stage reported by the backend.
type OrderStatus string

const (
	OrderStatusAwaitingPayment OrderStatus = "awaiting_payment"
	OrderStatusPaid            OrderStatus = "paid"
	OrderStatusInProgress      OrderStatus = "in_progress"
	OrderStatusCompleted       OrderStatus = "completed"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// OrderStatuses lists statuses in canonical display order.
var OrderStatuses = []OrderStatus{
	OrderStatusAwaitingPayment,
	OrderStatusPaid,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// Valid reports whether status belongs to the known set.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// RevenueEligible reports whether orders in this status count toward revenue.
func (s OrderStatus) RevenueEligible() bool {
	return s == OrderStatusPaid || s == OrderStatusInProgress || s == OrderStatusCompleted
}

// PackageType is the purchased QA package.
type PackageType string

const (
	PackageSingle   PackageType = "single"
	PackageMini     PackageType = "mini"
	PackageRetainer PackageType = "retainer"
	PackageCustom   PackageType = "custom"
)

// PackageTypes lists known packages.
var PackageTypes = []PackageType{PackageSingle, PackageMini, PackageRetainer, PackageCustom}

// Client holds contact details of the ordering customer.
type Client struct {
	Username   string
	TelegramID *int64
	Email      string
	Phone      string
}

// AttachmentType distinguishes client uploaded files.
type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentVideo AttachmentType = "video"
	AttachmentDoc   AttachmentType = "doc"
)

// Attachment references a file sent by the client.
type Attachment struct {
	Type     AttachmentType
	URL      string
	FileName string
}

// PaymentProof records an uploaded payment confirmation.
type PaymentProof struct {
	URL        string
	UploadedAt *time.Time
	Admin      string
}

// Order is a QA order tracked by the dashboard.
type Order struct {
	ID          int64
	OrderNumber string
	CreatedAt   time.Time
	PaidAt      *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	Status      OrderStatus
	PackageType PackageType
	Geo         string
	PriceEur    decimal.NullDecimal

	Client       Client
	Attachments  []Attachment
	PaymentProof *PaymentProof
	TesterID     *int64

	ReportURL     string
	WebsiteURL    string
	PaymentMethod string
	Comments      string
}

// Price returns the order price, zero when unset.
func (o Order) Price() decimal.Decimal {
	if !o.PriceEur.Valid {
		return decimal.Zero
	}
	return o.PriceEur.Decimal
}

// Overdue reports whether the order has been awaiting payment longer than 48 hours.
func (o Order) Overdue(now time.Time) bool {
	return o.Status == OrderStatusAwaitingPayment && now.Sub(o.CreatedAt) > 48*time.Hour
}
