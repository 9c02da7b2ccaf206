package backend

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

type dashboardPayload struct {
	Orders    []orderPayload            `json:"orders"`
	Testers   []testerPayload           `json:"testers"`
	Activity  []activityPayload         `json:"activity"`
	Countries map[string]countryPayload `json:"countries"`
}

type orderPayload struct {
	ID            int64               `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	CreatedAt     string              `json:"createdAt"`
	PaidAt        string              `json:"paidAt"`
	StartedAt     string              `json:"startedAt"`
	CompletedAt   string              `json:"completedAt"`
	CancelledAt   string              `json:"cancelledAt"`
	Status        string              `json:"status"`
	PackageType   string              `json:"packageType"`
	Geo           string              `json:"geo"`
	PriceEur      decimal.NullDecimal `json:"priceEur"`
	Client        clientPayload       `json:"client"`
	Attachments   []attachmentPayload `json:"attachments"`
	PaymentProof  *proofPayload       `json:"paymentProof"`
	TesterID      *int64              `json:"testerId"`
	ReportURL     string              `json:"reportUrl"`
	WebsiteURL    string              `json:"websiteUrl"`
	PaymentMethod string              `json:"paymentMethod"`
	Comments      string              `json:"comments"`
}

type clientPayload struct {
	Username   string `json:"username"`
	TelegramID *int64 `json:"telegramId"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

type attachmentPayload struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

type proofPayload struct {
	URL        string `json:"url"`
	FileID     string `json:"fileId"`
	UploadedAt string `json:"uploadedAt"`
	Admin      string `json:"admin"`
}

type testerPayload struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	GeoFocus  string  `json:"geoFocus"`
	Completed int     `json:"completed"`
	Rating    float64 `json:"rating"`
	Active    *bool   `json:"active"`
}

type countryPayload struct {
	Name string `json:"name"`
	Flag string `json:"flag"`
}

type activityPayload struct {
	ID          flexibleID      `json:"id"`
	EventType   string          `json:"eventType"`
	Type        string          `json:"type"`
	OrderID     *int64          `json:"orderId"`
	TesterID    *int64          `json:"testerId"`
	Admin       string          `json:"admin"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"createdAt"`
	Metadata    json.RawMessage `json:"metadata"`
}

// metadataPayload is the union of every metadata key the event variants read.
type metadataPayload struct {
	PackageType string              `json:"packageType"`
	PriceEur    decimal.NullDecimal `json:"priceEur"`
	Geo         string              `json:"geo"`
	Amount      decimal.NullDecimal `json:"amount"`
	Method      string              `json:"method"`
	URL         string              `json:"url"`
	From        string              `json:"from"`
	To          string              `json:"to"`
	Status      string              `json:"status"`
	TesterID    *int64              `json:"testerId"`
	TesterName  string              `json:"testerName"`
	ReportURL   string              `json:"reportUrl"`
	Reason      string              `json:"reason"`
	Note        string              `json:"note"`
	Action      string              `json:"action"`
}

// flexibleID accepts both numeric and string identifiers.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// parseTime reads RFC 3339 text, or timezone-less ISO text in loc. Empty and
// unparsable values yield nil.
func parseTime(raw string, loc *time.Location) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02 15:04:05Z07:00", raw); err == nil {
		return &t
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return &t
		}
	}
	return nil
}

// decodeSnapshot never fails; recoverable payload defects are logged at debug level.
func decodeSnapshot(data dashboardPayload, fetchedAt time.Time, loc *time.Location, logger *slog.Logger) *model.Snapshot {
	s := &model.Snapshot{
		Orders:    make([]model.Order, 0, len(data.Orders)),
		Testers:   make([]model.Tester, 0, len(data.Testers)),
		Activity:  make([]model.ActivityEvent, 0, len(data.Activity)),
		Countries: make(map[string]model.Country, len(data.Countries)),
		FetchedAt: fetchedAt,
	}
	for _, o := range data.Orders {
		s.Orders = append(s.Orders, decodeOrder(o, fetchedAt, loc))
	}
	for _, t := range data.Testers {
		s.Testers = append(s.Testers, decodeTester(t))
	}
	for _, a := range data.Activity {
		s.Activity = append(s.Activity, decodeActivity(a, fetchedAt, loc, logger))
	}
	for code, c := range data.Countries {
		s.Countries[strings.ToUpper(code)] = model.Country{Name: c.Name, Flag: c.Flag}
	}
	return s
}

func decodeOrder(o orderPayload, fetchedAt time.Time, loc *time.Location) model.Order {
	created := fetchedAt
	if t := parseTime(o.CreatedAt, loc); t != nil {
		created = *t
	}
	order := model.Order{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CreatedAt:   created,
		PaidAt:      parseTime(o.PaidAt, loc),
		StartedAt:   parseTime(o.StartedAt, loc),
		CompletedAt: parseTime(o.CompletedAt, loc),
		CancelledAt: parseTime(o.CancelledAt, loc),
		Status:      model.OrderStatus(strings.ToLower(strings.TrimSpace(o.Status))),
		PackageType: model.PackageType(strings.ToLower(strings.TrimSpace(o.PackageType))),
		Geo:         strings.ToUpper(strings.TrimSpace(o.Geo)),
		PriceEur:    o.PriceEur,
		Client: model.Client{
			Username:   o.Client.Username,
			TelegramID: o.Client.TelegramID,
			Email:      o.Client.Email,
			Phone:      o.Client.Phone,
		},
		TesterID:      o.TesterID,
		ReportURL:     o.ReportURL,
		WebsiteURL:    o.WebsiteURL,
		PaymentMethod: o.PaymentMethod,
		Comments:      o.Comments,
	}
	for _, a := range o.Attachments {
		order.Attachments = append(order.Attachments, model.Attachment{
			Type:     model.AttachmentType(a.Type),
			URL:      a.URL,
			FileName: a.FileName,
		})
	}
	if p := o.PaymentProof; p != nil {
		url := p.URL
		if url == "" {
			url = p.FileID
		}
		order.PaymentProof = &model.PaymentProof{URL: url, UploadedAt: parseTime(p.UploadedAt, loc), Admin: p.Admin}
	}
	return order
}

func decodeTester(t testerPayload) model.Tester {
	active := true
	if t.Active != nil {
		active = *t.Active
	}
	return model.Tester{
		ID:        t.ID,
		Name:      t.Name,
		GeoFocus:  t.GeoFocus,
		Completed: t.Completed,
		Rating:    t.Rating,
		Active:    active,
	}
}

func decodeActivity(a activityPayload, fetchedAt time.Time, loc *time.Location, logger *slog.Logger) model.ActivityEvent {
	typ := a.EventType
	if typ == "" {
		typ = a.Type
	}
	created := fetchedAt
	if t := parseTime(a.CreatedAt, loc); t != nil {
		created = *t
	}
	event := model.ActivityEvent{
		ID:          string(a.ID),
		Type:        model.EventType(typ),
		Title:       a.Title,
		OrderID:     a.OrderID,
		TesterID:    a.TesterID,
		Admin:       a.Admin,
		Description: a.Description,
		CreatedAt:   created,
	}
	if event.OrderID == nil {
		event.OrderID = orderIDFromEventID(event.ID)
	}

	var meta metadataPayload
	if len(a.Metadata) > 0 {
		// fields decoded before a type mismatch are kept
		if err := json.Unmarshal(a.Metadata, &meta); err != nil {
			logger.Debug("activity metadata partially decoded",
				slog.String("event_id", event.ID),
				slog.String("event_type", string(event.Type)),
				slog.String("error", err.Error()),
			)
		}
	}
	event.Payload = decodePayload(event.Type, meta, a.TesterID)
	return event
}

// orderIDFromEventID reads composite ids such as "12-created".
func orderIDFromEventID(id string) *int64 {
	prefix, _, found := strings.Cut(id, "-")
	if !found {
		return nil
	}
	n, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func decodePayload(typ model.EventType, m metadataPayload, testerID *int64) model.ActivityPayload {
	switch typ {
	case model.EventOrderCreated:
		return model.OrderCreatedPayload{
			PackageType: model.PackageType(m.PackageType),
			PriceEur:    m.PriceEur,
			Geo:         strings.ToUpper(m.Geo),
		}
	case model.EventOrderPaid:
		return model.OrderPaidPayload{Amount: m.Amount, Method: m.Method}
	case model.EventPaymentProofReceived:
		return model.PaymentProofPayload{URL: m.URL}
	case model.EventStatusChanged:
		to := m.To
		if to == "" {
			to = m.Status
		}
		return model.StatusChangedPayload{From: model.OrderStatus(m.From), To: model.OrderStatus(to)}
	case model.EventTesterAssigned, model.EventTesterUnassigned, model.EventTesterCreated:
		id := m.TesterID
		if id == nil {
			id = testerID
		}
		return model.TesterPayload{Type: typ, TesterID: id, TesterName: m.TesterName}
	case model.EventReportUploaded:
		return model.ReportUploadedPayload{ReportURL: m.ReportURL}
	case model.EventOrderCompleted:
		return model.OrderCompletedPayload{}
	case model.EventOrderCancelled:
		return model.OrderCancelledPayload{Reason: m.Reason}
	case model.EventNoteAdded:
		return model.NotePayload{Note: m.Note}
	case model.EventAdminAction:
		return model.AdminActionPayload{Action: m.Action}
	default:
		return model.UnknownPayload{Type: typ}
	}
}
