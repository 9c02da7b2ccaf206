package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType tags an activity event.
type EventType string

const (
	EventOrderCreated         EventType = "order_created"
	EventOrderPaid            EventType = "order_paid"
	EventPaymentProofReceived EventType = "payment_proof_received"
	EventStatusChanged        EventType = "status_changed"
	EventTesterAssigned       EventType = "tester_assigned"
	EventTesterUnassigned     EventType = "tester_unassigned"
	EventReportUploaded       EventType = "report_uploaded"
	EventOrderCompleted       EventType = "order_completed"
	EventOrderCancelled       EventType = "order_cancelled"
	EventNoteAdded            EventType = "note_added"
	EventTesterCreated        EventType = "tester_created"
	EventAdminAction          EventType = "admin_action"
)

// EventTypes lists the fixed event enumeration.
var EventTypes = []EventType{
	EventOrderCreated,
	EventOrderPaid,
	EventPaymentProofReceived,
	EventStatusChanged,
	EventTesterAssigned,
	EventTesterUnassigned,
	EventReportUploaded,
	EventOrderCompleted,
	EventOrderCancelled,
	EventNoteAdded,
	EventTesterCreated,
	EventAdminAction,
}

// Valid reports whether the event type is part of the enumeration.
func (t EventType) Valid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ActivityEvent is a read-only audit record produced by the backend.
type ActivityEvent struct {
	ID          string
	Type        EventType
	Title       string
	OrderID     *int64
	TesterID    *int64
	Admin       string
	Description string
	CreatedAt   time.Time
	Payload     ActivityPayload
}

// ActivityPayload is the typed metadata of an event. Each event type has its own variant.
type ActivityPayload interface {
	EventType() EventType
}

// Remindable reports whether the client can be nudged about payment for this event.
func (e ActivityEvent) Remindable() bool {
	if e.Type == EventOrderCreated {
		return true
	}
	if p, ok := e.Payload.(StatusChangedPayload); ok {
		return p.To == OrderStatusAwaitingPayment
	}
	return false
}

type OrderCreatedPayload struct {
	PackageType PackageType
	PriceEur    decimal.NullDecimal
	Geo         string
}

func (OrderCreatedPayload) EventType() EventType { return EventOrderCreated }

type OrderPaidPayload struct {
	Amount decimal.NullDecimal
	Method string
}

func (OrderPaidPayload) EventType() EventType { return EventOrderPaid }

type PaymentProofPayload struct {
	URL string
}

func (PaymentProofPayload) EventType() EventType { return EventPaymentProofReceived }

// StatusChangedPayload carries the transition. From may be empty when unknown.
type StatusChangedPayload struct {
	From OrderStatus
	To   OrderStatus
}

func (StatusChangedPayload) EventType() EventType { return EventStatusChanged }

// TesterPayload is shared by assignment, unassignment and tester creation events.
type TesterPayload struct {
	Type       EventType
	TesterID   *int64
	TesterName string
}

func (p TesterPayload) EventType() EventType { return p.Type }

type ReportUploadedPayload struct {
	ReportURL string
}

func (ReportUploadedPayload) EventType() EventType { return EventReportUploaded }

type OrderCompletedPayload struct{}

func (OrderCompletedPayload) EventType() EventType { return EventOrderCompleted }

type OrderCancelledPayload struct {
	Reason string
}

func (OrderCancelledPayload) EventType() EventType { return EventOrderCancelled }

type NotePayload struct {
	Note string
}

func (NotePayload) EventType() EventType { return EventNoteAdded }

type AdminActionPayload struct {
	Action string
}

func (AdminActionPayload) EventType() EventType { return EventAdminAction }

// UnknownPayload wraps events whose type is outside the enumeration.
type UnknownPayload struct {
	Type EventType
}

func (p UnknownPayload) EventType() EventType { return p.Type }
