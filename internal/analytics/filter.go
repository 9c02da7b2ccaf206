package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// Filter returns the orders matching every predicate of spec, in input order.
// Calendar periods are evaluated in now's location.
func Filter(orders []model.Order, spec model.FilterSpec, now time.Time) []model.Order {
	created := createdPredicate(spec, now)
	query := strings.ToLower(spec.Query)

	return where(orders, func(o model.Order) bool {
		if !spec.Statuses.Has(o.Status) {
			return false
		}
		if spec.Package != "" && spec.Package != model.PackageAll && o.PackageType != spec.Package {
			return false
		}
		if spec.Geo.Len() > 0 && !spec.Geo.Has(o.Geo) {
			return false
		}
		if !matchTester(spec.Tester, o) {
			return false
		}
		if !matchAmount(spec, o) {
			return false
		}
		if query != "" && !strings.Contains(haystack(o), query) {
			return false
		}
		return created(o.CreatedAt)
	})
}

func matchTester(f model.TesterFilter, o model.Order) bool {
	switch f.Mode {
	case model.TesterNone:
		return o.TesterID == nil
	case model.TesterID:
		return o.TesterID != nil && *o.TesterID == f.ID
	default:
		return true
	}
}

func matchAmount(spec model.FilterSpec, o model.Order) bool {
	if spec.AmountFrom == nil && spec.AmountTo == nil {
		return true
	}
	if !o.PriceEur.Valid {
		return false
	}
	price := o.PriceEur.Decimal
	if spec.AmountFrom != nil && price.LessThan(*spec.AmountFrom) {
		return false
	}
	if spec.AmountTo != nil && price.GreaterThan(*spec.AmountTo) {
		return false
	}
	return true
}

func haystack(o model.Order) string {
	var telegram string
	if o.Client.TelegramID != nil {
		telegram = strconv.FormatInt(*o.Client.TelegramID, 10)
	}
	return strings.ToLower(strings.Join([]string{
		o.OrderNumber,
		o.Client.Username,
		telegram,
		o.Client.Email,
		o.Client.Phone,
	}, " "))
}

func createdPredicate(spec model.FilterSpec, now time.Time) func(time.Time) bool {
	loc := now.Location()
	today := model.StartOfDay(now)

	since := func(from time.Time) func(time.Time) bool {
		return func(t time.Time) bool { return !t.Before(from) }
	}
	sameMonth := func(ref time.Time) func(time.Time) bool {
		return func(t time.Time) bool {
			t = t.In(loc)
			return t.Year() == ref.Year() && t.Month() == ref.Month()
		}
	}

	switch spec.Period {
	case model.PeriodToday:
		return since(today)
	case model.PeriodYesterday:
		yesterday := today.AddDate(0, 0, -1)
		return func(t time.Time) bool { return !t.Before(yesterday) && t.Before(today) }
	case model.Period7Days:
		return since(now.AddDate(0, 0, -6))
	case model.Period30Days:
		return since(now.AddDate(0, 0, -29))
	case model.PeriodMonth:
		return sameMonth(now)
	case model.PeriodPrevMonth:
		return sameMonth(time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, loc))
	case model.PeriodCustom:
		return customRange(spec.From, spec.To, loc)
	default:
		return func(time.Time) bool { return true }
	}
}

// customRange accepts dates from the start of from through the end of to.
func customRange(from, to *time.Time, loc *time.Location) func(time.Time) bool {
	var lower, upper *time.Time
	if from != nil {
		l := model.StartOfDay(from.In(loc))
		lower = &l
	}
	if to != nil {
		u := model.StartOfDay(to.In(loc)).AddDate(0, 0, 1)
		upper = &u
	}
	return func(t time.Time) bool {
		if lower != nil && t.Before(*lower) {
			return false
		}
		if upper != nil && !t.Before(*upper) {
			return false
		}
		return true
	}
}
