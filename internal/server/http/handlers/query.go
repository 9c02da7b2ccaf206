package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/paymentqa-dashboard/internal/analytics"
	domainErrors "github.com/polkiloo/paymentqa-dashboard/internal/domain/errors"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/dto"
	"github.com/polkiloo/paymentqa-dashboard/internal/usecase"
)

const allKeyword = "all"

// buildOrderQuery merges request parameters over the saved preferences. Parameters
// that are absent keep the saved value.
func buildOrderQuery(in dto.OrderListQuery, prefs model.Preferences, loc *time.Location) (usecase.OrderQuery, error) {
	spec := prefs.Filters
	if in.Q != nil {
		spec = spec.WithQuery(strings.TrimSpace(*in.Q))
	}
	if in.Status != nil {
		spec = spec.WithStatuses(parseStatuses(*in.Status))
	}
	if in.Package != nil {
		spec = spec.WithPackage(model.PackageType(*in.Package))
	}
	if spec.Package == "" {
		spec = spec.WithPackage(model.PackageAll)
	}
	if in.Geo != nil {
		spec = spec.WithGeo(parseGeo(*in.Geo))
	}
	if in.Tester != nil {
		tf, err := model.ParseTesterFilter(*in.Tester)
		if err != nil {
			return usecase.OrderQuery{}, fmt.Errorf("%w: %w", domainErrors.ErrInvalidFilter, err)
		}
		spec = spec.WithTester(tf)
	}

	var err error
	if spec, err = applyPeriod(spec, in, loc); err != nil {
		return usecase.OrderQuery{}, err
	}
	if spec, err = applyAmounts(spec, in); err != nil {
		return usecase.OrderQuery{}, err
	}

	q := usecase.OrderQuery{
		Filter:    spec,
		SortKey:   analytics.SortKey(in.Sort),
		Direction: analytics.Direction(in.Direction),
		Page:      in.Page,
		PageSize:  in.PageSize,
	}
	if q.SortKey == "" {
		q.SortKey = analytics.DefaultSortKey
		if q.Direction == "" {
			q.Direction = analytics.DefaultDirection
		}
	}
	if q.PageSize == 0 {
		q.PageSize = prefs.PageSize
	}
	return q, nil
}

// parseStatuses reads a comma separated status list. "all" selects every status and
// an empty list selects none.
func parseStatuses(raw string) model.StatusSet {
	var statuses []model.OrderStatus
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if part == allKeyword {
			return model.AllStatuses()
		}
		statuses = append(statuses, model.OrderStatus(part))
	}
	return model.NewStatusSet(statuses...)
}

func parseGeo(raw string) model.GeoSet {
	var codes []string
	for _, part := range strings.Split(raw, ",") {
		if strings.EqualFold(strings.TrimSpace(part), allKeyword) {
			return model.NewGeoSet()
		}
		codes = append(codes, part)
	}
	return model.NewGeoSet(codes...)
}

// applyPeriod sets the creation window. Explicit dates imply the custom period.
func applyPeriod(spec model.FilterSpec, in dto.OrderListQuery, loc *time.Location) (model.FilterSpec, error) {
	if in.From == "" && in.To == "" {
		if in.Period != nil {
			spec = spec.WithPeriod(model.Period(*in.Period))
		}
		if spec.Period == "" {
			spec = spec.WithPeriod(model.Period30Days)
		}
		return spec, nil
	}

	from, err := parseDay(in.From, loc)
	if err != nil {
		return spec, err
	}
	to, err := parseDay(in.To, loc)
	if err != nil {
		return spec, err
	}
	return spec.WithCustomRange(from, to), nil
}

func parseDay(raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrInvalidFilter, err)
	}
	return &t, nil
}

func applyAmounts(spec model.FilterSpec, in dto.OrderListQuery) (model.FilterSpec, error) {
	if in.AmountFrom == "" && in.AmountTo == "" {
		return spec, nil
	}
	from, to := spec.AmountFrom, spec.AmountTo
	if in.AmountFrom != "" {
		d, err := decimal.NewFromString(in.AmountFrom)
		if err != nil {
			return spec, fmt.Errorf("%w: %w", domainErrors.ErrInvalidFilter, err)
		}
		from = &d
	}
	if in.AmountTo != "" {
		d, err := decimal.NewFromString(in.AmountTo)
		if err != nil {
			return spec, fmt.Errorf("%w: %w", domainErrors.ErrInvalidFilter, err)
		}
		to = &d
	}
	return spec.WithAmountRange(from, to), nil
}

// metricsWindow resolves the metrics window from the request, falling back to the
// saved range.
func metricsWindow(in dto.MetricsQuery, prefs model.Preferences, loc *time.Location) (model.DateWindow, error) {
	switch {
	case in.From != "" && in.To != "":
		w, err := model.ParseDateWindow("custom:"+in.From+".."+in.To, loc)
		if err != nil {
			return model.DateWindow{}, fmt.Errorf("%w: %w", domainErrors.ErrInvalidFilter, err)
		}
		return w, nil
	case in.Range != "":
		w, err := model.ParseDateWindow(in.Range, loc)
		if err != nil {
			return model.DateWindow{}, fmt.Errorf("%w: %w", domainErrors.ErrInvalidFilter, err)
		}
		return w, nil
	}
	return prefs.MetricsWindow, nil
}
