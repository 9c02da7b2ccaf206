// Package validation checks API payloads and query strings with validator/v10.
package validation

import (
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/paymentqa-dashboard/internal/analytics"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/dto"
)

// New returns a validator with the dashboard specific tags registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	mustRegister(v, "orderstatus", func(fl validatorv10.FieldLevel) bool {
		return model.OrderStatus(fl.Field().String()).Valid()
	})
	mustRegister(v, "package", func(fl validatorv10.FieldLevel) bool {
		p := model.PackageType(fl.Field().String())
		if p == model.PackageAll {
			return true
		}
		for _, known := range model.PackageTypes {
			if p == known {
				return true
			}
		}
		return false
	})
	mustRegister(v, "tester", func(fl validatorv10.FieldLevel) bool {
		_, err := model.ParseTesterFilter(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "sortkey", func(fl validatorv10.FieldLevel) bool {
		return analytics.ValidSortKey(analytics.SortKey(fl.Field().String()))
	})
	mustRegister(v, "eventtype", func(fl validatorv10.FieldLevel) bool {
		t := model.EventType(fl.Field().String())
		return t == "all" || t.Valid()
	})
	mustRegister(v, "metricsrange", func(fl validatorv10.FieldLevel) bool {
		_, err := model.ParseDateWindow(fl.Field().String(), time.UTC)
		return err == nil
	})

	v.RegisterStructValidation(orderListStructValidation, dto.OrderListQuery{})
	return v
}

func mustRegister(v *validatorv10.Validate, tag string, fn validatorv10.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// orderListStructValidation rejects inverted amount and date ranges.
func orderListStructValidation(sl validatorv10.StructLevel) {
	q := sl.Current().Interface().(dto.OrderListQuery)

	if q.AmountFrom != "" && q.AmountTo != "" {
		from, errFrom := decimal.NewFromString(q.AmountFrom)
		to, errTo := decimal.NewFromString(q.AmountTo)
		if errFrom == nil && errTo == nil && from.GreaterThan(to) {
			sl.ReportError(q.AmountTo, "amountTo", "AmountTo", "gtefield", "AmountFrom")
		}
	}
	if q.From != "" && q.To != "" {
		from, errFrom := time.Parse(time.DateOnly, q.From)
		to, errTo := time.Parse(time.DateOnly, q.To)
		if errFrom == nil && errTo == nil && to.Before(from) {
			sl.ReportError(q.To, "to", "To", "gtefield", "From")
		}
	}
}
