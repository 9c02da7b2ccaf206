package handlers

import (
	"github.com/polkiloo/paymentqa-dashboard/internal/analytics"
	"github.com/polkiloo/paymentqa-dashboard/internal/dashboard"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/format"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/dto"
	"github.com/polkiloo/paymentqa-dashboard/internal/usecase"
)

func toOrderResponse(o model.Order, f *format.Formatter, countries map[string]model.Country, overdue bool) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CreatedAt:    o.CreatedAt,
		PaidAt:       o.PaidAt,
		StartedAt:    o.StartedAt,
		CompletedAt:  o.CompletedAt,
		CancelledAt:  o.CancelledAt,
		Status:       o.Status,
		StatusLabel:  f.StatusLabel(o.Status),
		StatusEmoji:  f.StatusEmoji(o.Status),
		PackageType:  o.PackageType,
		PackageLabel: f.PackageLabel(o.PackageType),
		Geo:          o.Geo,
		GeoLabel:     analytics.CountryLabel(countries, o.Geo),
		Client: dto.ClientResponse{
			Username:   o.Client.Username,
			TelegramID: o.Client.TelegramID,
			Email:      o.Client.Email,
			Phone:      o.Client.Phone,
		},
		TesterID:      o.TesterID,
		PaymentMethod: o.PaymentMethod,
		WebsiteURL:    o.WebsiteURL,
		ReportURL:     o.ReportURL,
		Comments:      o.Comments,
		Attachments:   make([]dto.AttachmentResponse, 0, len(o.Attachments)),
		Overdue:       overdue,
	}
	if o.PriceEur.Valid {
		price := o.PriceEur.Decimal
		resp.PriceEur = &price
		resp.Price = f.Money(price)
	}
	for _, a := range o.Attachments {
		resp.Attachments = append(resp.Attachments, dto.AttachmentResponse{Type: string(a.Type), URL: a.URL, FileName: a.FileName})
	}
	if p := o.PaymentProof; p != nil {
		resp.PaymentProof = &dto.PaymentProofResponse{URL: p.URL, UploadedAt: p.UploadedAt, Admin: p.Admin}
	}
	return resp
}

func toOrderListResponse(list *usecase.OrderList, q usecase.OrderQuery, f *format.Formatter, countries map[string]model.Country, st dashboard.Status) dto.OrderListResponse {
	resp := dto.OrderListResponse{
		Items:     make([]dto.OrderResponse, 0, len(list.Items)),
		Total:     list.Total,
		Page:      list.Page.Page,
		PageSize:  list.PageSize,
		Pages:     list.Pages,
		Filters:   q.Filter,
		Sort:      string(q.SortKey),
		Direction: string(q.Direction),
		Freshness: freshness(st),
	}
	for _, o := range list.Items {
		resp.Items = append(resp.Items, toOrderResponse(o, f, countries, o.Overdue(list.Now)))
	}
	return resp
}

func toOrderRef(o *model.Order) *dto.OrderRef {
	if o == nil {
		return nil
	}
	return &dto.OrderRef{ID: o.ID, OrderNumber: o.OrderNumber}
}

func toTesterResponse(t model.Tester) dto.TesterResponse {
	return dto.TesterResponse{
		ID:        t.ID,
		Name:      t.Name,
		GeoFocus:  t.GeoFocus,
		Completed: t.Completed,
		Rating:    t.Rating,
		Active:    t.Active,
	}
}

func toDetailResponse(d *analytics.OrderDetail, f *format.Formatter, countries map[string]model.Country) dto.OrderDetailResponse {
	resp := dto.OrderDetailResponse{
		Order: toOrderResponse(d.Order, f, countries, d.Overdue),
		Client: dto.ClientSummaryResponse{
			Key:          d.Client.Key,
			TotalOrders:  d.Client.TotalOrders,
			Spent:        f.Money(d.Client.Spent),
			FirstOrderAt: d.Client.FirstOrderAt,
			LastOrderAt:  d.Client.LastOrderAt,
		},
		Previous: toOrderRef(d.Previous),
		Next:     toOrderRef(d.Next),
		Activity: toActivityResponses(d.Activity, f),
		Timeline: dto.TimelineResponse{
			Created:   d.Timeline.Created,
			Paid:      d.Timeline.Paid,
			Started:   d.Timeline.Started,
			Completed: d.Timeline.Completed,
		},
		Overdue:      d.Overdue,
		HoursWaiting: d.HoursWaiting,
	}
	if d.Tester != nil {
		t := toTesterResponse(*d.Tester)
		resp.Tester = &t
	}
	return resp
}

func toActivityResponses(events []model.ActivityEvent, f *format.Formatter) []dto.ActivityResponse {
	out := make([]dto.ActivityResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ActivityResponse{
			ID:          e.ID,
			Type:        string(e.Type),
			Label:       f.EventLabel(e.Type),
			Icon:        f.EventIcon(e.Type),
			Title:       e.Title,
			OrderID:     e.OrderID,
			TesterID:    e.TesterID,
			Admin:       e.Admin,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
			Remindable:  e.Remindable(),
		})
	}
	return out
}

func toMetricResponses(metrics analytics.Metrics, f *format.Formatter) []dto.MetricResponse {
	out := make([]dto.MetricResponse, 0, len(analytics.MetricIDs))
	for _, id := range analytics.MetricIDs {
		m, ok := metrics[id]
		if !ok {
			continue
		}
		out = append(out, dto.MetricResponse{
			ID:         string(id),
			Title:      f.MetricTitle(id),
			Icon:       f.MetricIcon(id),
			Value:      m.Value,
			Amount:     m.Amount,
			Formatted:  f.MetricValue(m),
			Subtitle:   f.MetricSubtitle(m),
			Previous:   m.PreviousValue,
			Delta:      m.Delta,
			DeltaLabel: f.Delta(m.Delta),
			Trend:      string(m.Trend),
		})
	}
	return out
}

func toSliceResponses(slices []analytics.Slice) []dto.SliceResponse {
	out := make([]dto.SliceResponse, 0, len(slices))
	for _, s := range slices {
		out = append(out, dto.SliceResponse{Key: s.Key, Label: s.Label, Count: s.Count, Total: s.Total})
	}
	return out
}

func toRevenueResponses(points []analytics.RevenuePoint) []dto.RevenuePointResponse {
	out := make([]dto.RevenuePointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.RevenuePointResponse{Date: p.Date, Label: p.Label, Total: p.Total, Orders: p.Orders})
	}
	return out
}

func freshness(st dashboard.Status) dto.Freshness {
	return dto.Freshness{Stale: st.Stale, LastError: st.LastError}
}

func toStatusResponse(st dashboard.Status) dto.StatusResponse {
	resp := dto.StatusResponse{
		Loaded:      st.Loaded,
		Sequence:    st.Sequence,
		Stale:       st.Stale,
		LastError:   st.LastError,
		LastErrorAt: st.LastErrorAt,
		Issues:      make([]dto.IssueResponse, 0, len(st.Issues)),
	}
	if st.Loaded {
		at := st.FetchedAt
		resp.FetchedAt = &at
	}
	for _, i := range st.Issues {
		resp.Issues = append(resp.Issues, dto.IssueResponse{OrderID: i.OrderID, OrderNumber: i.OrderNumber, Problem: i.Problem})
	}
	return resp
}

func toBulkResponse(r *usecase.BulkResult) dto.BulkResponse {
	resp := dto.BulkResponse{
		Updated: nonNil(r.Updated),
		Failed:  make([]dto.BulkFailureResponse, 0, len(r.Failed)),
		Missing: nonNil(r.Missing),
	}
	for _, f := range r.Failed {
		resp.Failed = append(resp.Failed, dto.BulkFailureResponse{ID: f.ID, Reason: f.Reason})
	}
	return resp
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func toPreferencesResponse(p model.Preferences) dto.PreferencesResponse {
	resp := dto.PreferencesResponse{
		Filters:      p.Filters,
		PageSize:     p.PageSize,
		MetricsRange: p.MetricsWindow.String(),
	}
	if !p.UpdatedAt.IsZero() {
		at := p.UpdatedAt
		resp.UpdatedAt = &at
	}
	return resp
}
