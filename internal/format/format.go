// Package format renders dashboard values for operators in their language:
// status, package and event labels, metric titles, money and percentages.
package format

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/polkiloo/paymentqa-dashboard/internal/analytics"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

const emptyValue = "—"

var statusTitles = map[model.OrderStatus]string{
	model.OrderStatusAwaitingPayment: "Awaiting payment",
	model.OrderStatusPaid:            "Paid",
	model.OrderStatusInProgress:      "In progress",
	model.OrderStatusCompleted:       "Completed",
	model.OrderStatusCancelled:       "Cancelled",
}

var statusEmoji = map[model.OrderStatus]string{
	model.OrderStatusAwaitingPayment: "⏳",
	model.OrderStatusPaid:            "💰",
	model.OrderStatusInProgress:      "🔄",
	model.OrderStatusCompleted:       "✅",
	model.OrderStatusCancelled:       "❌",
}

var eventTitles = map[model.EventType]string{
	model.EventOrderCreated:         "Order created",
	model.EventOrderPaid:            "Order paid",
	model.EventPaymentProofReceived: "Payment proof received",
	model.EventStatusChanged:        "Status changed",
	model.EventTesterAssigned:       "Tester assigned",
	model.EventTesterUnassigned:     "Tester unassigned",
	model.EventReportUploaded:       "Report uploaded",
	model.EventOrderCompleted:       "Order completed",
	model.EventOrderCancelled:       "Order cancelled",
	model.EventNoteAdded:            "Note added",
	model.EventTesterCreated:        "Tester created",
	model.EventAdminAction:          "Admin action",
}

var eventIcons = map[model.EventType]string{
	model.EventOrderCreated:         "🆕",
	model.EventOrderPaid:            "💰",
	model.EventPaymentProofReceived: "🧾",
	model.EventStatusChanged:        "🔁",
	model.EventTesterAssigned:       "👩‍💻",
	model.EventTesterUnassigned:     "🚫",
	model.EventReportUploaded:       "📄",
	model.EventOrderCompleted:       "✅",
	model.EventOrderCancelled:       "❌",
	model.EventNoteAdded:            "📝",
	model.EventTesterCreated:        "➕",
	model.EventAdminAction:          "⚙️",
}

type metricText struct {
	title string
	icon  string
}

var metricTexts = map[analytics.MetricID]metricText{
	analytics.MetricTotalRevenue: {"Total revenue", "💶"},
	analytics.MetricMonthRevenue: {"Month revenue", "📆"},
	analytics.MetricAverageCheck: {"Average check", "🧾"},
	analytics.MetricLTV:          {"Client LTV", "♾️"},
	analytics.MetricAwaiting:     {"Awaiting", "⏳"},
	analytics.MetricPaid:         {"Paid", "💰"},
	analytics.MetricInProgress:   {"In progress", "🔄"},
	analytics.MetricTotalOrders:  {"Total orders", "📦"},
	analytics.MetricClientsTotal: {"Total clients", "👥"},
	analytics.MetricNewToday:     {"New today", "✨"},
	analytics.MetricRepeat:       {"Repeat purchases", "🔁"},
	analytics.MetricConversion:   {"Start to pay conversion", "🎯"},
	analytics.MetricAbandoned:    {"Abandoned orders", "⚠️"},
	analytics.MetricTimeToPay:    {"Average time to pay", "⏱️"},
	analytics.MetricTopGeo:       {"Top GEO", "🌍"},
	analytics.MetricTopPackage:   {"Top package", "🧰"},
}

// Formatter renders values for one language. It is safe for concurrent use.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

var sharedCatalog = newCatalog()

// New returns a Formatter for tag.
func New(tag language.Tag) *Formatter {
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(sharedCatalog)),
	}
}

// Language reports the formatter language.
func (f *Formatter) Language() language.Tag { return f.tag }

func (f *Formatter) translate(key string, args ...any) string {
	return f.printer.Sprintf(key, args...)
}

// StatusLabel implements analytics.Labeler.
func (f *Formatter) StatusLabel(s model.OrderStatus) string {
	title, ok := statusTitles[s]
	if !ok {
		return string(s)
	}
	return f.translate(title)
}

// PackageLabel implements analytics.Labeler. Package names are product names and
// stay untranslated.
func (f *Formatter) PackageLabel(p model.PackageType) string {
	return analytics.DefaultLabels.PackageLabel(p)
}

// StatusEmoji returns the status badge emoji.
func (f *Formatter) StatusEmoji(s model.OrderStatus) string {
	return statusEmoji[s]
}

// EventLabel names an activity event type.
func (f *Formatter) EventLabel(t model.EventType) string {
	title, ok := eventTitles[t]
	if !ok {
		return string(t)
	}
	return f.translate(title)
}

// EventIcon returns the feed icon for t, with a pin for unknown types.
func (f *Formatter) EventIcon(t model.EventType) string {
	if icon, ok := eventIcons[t]; ok {
		return icon
	}
	return "📌"
}

// MetricTitle returns the localized card title.
func (f *Formatter) MetricTitle(id analytics.MetricID) string {
	text, ok := metricTexts[id]
	if !ok {
		return string(id)
	}
	return f.translate(text.title)
}

// MetricIcon returns the card icon.
func (f *Formatter) MetricIcon(id analytics.MetricID) string {
	if text, ok := metricTexts[id]; ok {
		return text.icon
	}
	return "📊"
}

// Money renders an EUR amount with the currency symbol.
func (f *Formatter) Money(d decimal.Decimal) string {
	return f.printer.Sprint(currency.Symbol(currency.EUR.Amount(d.InexactFloat64())))
}

// Integer renders n with locale grouping.
func (f *Formatter) Integer(n int64) string {
	return f.printer.Sprint(number.Decimal(n))
}

// Percent renders v with one fractional digit and a percent sign.
func (f *Formatter) Percent(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.Scale(1))) + "%"
}

// Delta renders a signed percent change, rounded to whole percent.
func (f *Formatter) Delta(v float64) string {
	rounded := math.Round(v)
	sign := ""
	if rounded > 0 {
		sign = "+"
	}
	return sign + f.printer.Sprint(number.Decimal(rounded, number.Scale(0))) + "%"
}

// MetricValue renders the headline figure of a metric card.
func (f *Formatter) MetricValue(m analytics.Metric) string {
	switch m.ID {
	case analytics.MetricTotalRevenue, analytics.MetricMonthRevenue:
		return f.Money(amountOf(m))
	case analytics.MetricAverageCheck, analytics.MetricLTV:
		return f.Money(amountOf(m).Round(0))
	case analytics.MetricConversion:
		return f.Percent(m.Value)
	case analytics.MetricTimeToPay:
		return f.translate("%d min", int64(math.Round(m.Value)))
	case analytics.MetricTopGeo, analytics.MetricTopPackage:
		if m.Key == "" {
			return emptyValue
		}
		return m.Label
	default:
		return f.Integer(int64(math.Round(m.Value)))
	}
}

// MetricSubtitle renders the secondary line of a metric card.
func (f *Formatter) MetricSubtitle(m analytics.Metric) string {
	switch m.ID {
	case analytics.MetricAwaiting, analytics.MetricPaid, analytics.MetricInProgress:
		return f.Money(amountOf(m))
	case analytics.MetricRepeat:
		return f.translate("%s of clients", f.printer.Sprint(number.Decimal(percentOf(m), number.Scale(0)))+"%")
	case analytics.MetricTopGeo, analytics.MetricTopPackage:
		if m.Key == "" {
			return ""
		}
		return f.translate("%s of orders", f.Percent(percentOf(m)))
	default:
		return f.translate("vs previous period")
	}
}

func amountOf(m analytics.Metric) decimal.Decimal {
	if m.Amount == nil {
		return decimal.Zero
	}
	return *m.Amount
}

func percentOf(m analytics.Metric) float64 {
	if m.Percent == nil {
		return 0
	}
	return *m.Percent
}
