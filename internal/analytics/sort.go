package analytics

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// SortKey names an order field the list can be sorted by.
type SortKey string

const (
	SortByID          SortKey = "id"
	SortByOrderNumber SortKey = "orderNumber"
	SortByCreatedAt   SortKey = "createdAt"
	SortByPaidAt      SortKey = "paidAt"
	SortByStartedAt   SortKey = "startedAt"
	SortByCompletedAt SortKey = "completedAt"
	SortByPrice       SortKey = "priceEur"
	SortByStatus      SortKey = "status"
	SortByPackage     SortKey = "packageType"
	SortByGeo         SortKey = "geo"
	SortByClient      SortKey = "client"
	SortByTester      SortKey = "testerId"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultSortKey and DefaultDirection order the list newest first.
const (
	DefaultSortKey   = SortByCreatedAt
	DefaultDirection = Desc
)

type valueKind int

const (
	kindNull valueKind = iota
	kindTime
	kindDecimal
	kindInt
	kindString
)

type sortValue struct {
	kind valueKind
	t    time.Time
	d    decimal.Decimal
	n    int64
	s    string
}

func timeValue(t *time.Time) sortValue {
	if t == nil {
		return sortValue{}
	}
	return sortValue{kind: kindTime, t: *t}
}

func stringValue(s string) sortValue { return sortValue{kind: kindString, s: s} }

var sortExtractors = map[SortKey]func(model.Order) sortValue{
	SortByID:          func(o model.Order) sortValue { return sortValue{kind: kindInt, n: o.ID} },
	SortByOrderNumber: func(o model.Order) sortValue { return stringValue(o.OrderNumber) },
	SortByCreatedAt:   func(o model.Order) sortValue { return sortValue{kind: kindTime, t: o.CreatedAt} },
	SortByPaidAt:      func(o model.Order) sortValue { return timeValue(o.PaidAt) },
	SortByStartedAt:   func(o model.Order) sortValue { return timeValue(o.StartedAt) },
	SortByCompletedAt: func(o model.Order) sortValue { return timeValue(o.CompletedAt) },
	SortByPrice: func(o model.Order) sortValue {
		if !o.PriceEur.Valid {
			return sortValue{}
		}
		return sortValue{kind: kindDecimal, d: o.PriceEur.Decimal}
	},
	SortByStatus:  func(o model.Order) sortValue { return stringValue(string(o.Status)) },
	SortByPackage: func(o model.Order) sortValue { return stringValue(string(o.PackageType)) },
	SortByGeo:     func(o model.Order) sortValue { return stringValue(o.Geo) },
	SortByClient: func(o model.Order) sortValue {
		if o.Client.Username != "" {
			return stringValue(o.Client.Username)
		}
		if o.Client.TelegramID != nil {
			return stringValue(strconv.FormatInt(*o.Client.TelegramID, 10))
		}
		return stringValue("")
	},
	SortByTester: func(o model.Order) sortValue {
		if o.TesterID == nil {
			return sortValue{kind: kindInt}
		}
		return sortValue{kind: kindInt, n: *o.TesterID}
	},
}

// ValidSortKey reports whether key is sortable.
func ValidSortKey(key SortKey) bool {
	_, ok := sortExtractors[key]
	return ok
}

// Sort returns a stably sorted copy of orders. Strings are compared with the
// collation rules of locale. Unknown keys leave the order unchanged.
//
// Null values (missing timestamps or price) take the direction multiplier like any
// other comparison: they sort last ascending and first descending.
func Sort(orders []model.Order, key SortKey, dir Direction, locale language.Tag) []model.Order {
	out := slices.Clone(orders)
	extract, ok := sortExtractors[key]
	if !ok {
		return out
	}

	mult := 1
	if dir == Desc {
		mult = -1
	}
	collator := collate.New(locale)

	slices.SortStableFunc(out, func(a, b model.Order) int {
		av, bv := extract(a), extract(b)
		switch {
		case av.kind == kindNull && bv.kind == kindNull:
			return 0
		case av.kind == kindNull:
			return mult
		case bv.kind == kindNull:
			return -mult
		}
		switch av.kind {
		case kindTime:
			return av.t.Compare(bv.t) * mult
		case kindDecimal:
			return av.d.Cmp(bv.d) * mult
		case kindInt:
			return cmp.Compare(av.n, bv.n) * mult
		default:
			return collator.CompareString(av.s, bv.s) * mult
		}
	})
	return out
}

// Page is one slice of a sorted list.
type Page struct {
	Items    []model.Order
	Total    int
	Page     int
	PageSize int
	Pages    int
}

// Paginate cuts a 1-indexed page from orders. Out of range pages are empty but
// Total always reports the full length.
func Paginate(orders []model.Order, page, size int) Page {
	p := Page{
		Items:    []model.Order{},
		Total:    len(orders),
		Page:     page,
		PageSize: size,
		Pages:    1,
	}
	if size <= 0 {
		return p
	}
	pages := len(orders) / size
	if len(orders)%size != 0 {
		pages++
	}
	p.Pages = max(pages, 1)
	if page < 1 || page > p.Pages {
		return p
	}
	start := (page - 1) * size
	if start >= len(orders) {
		return p
	}
	end := min(start+size, len(orders))
	p.Items = slices.Clone(orders[start:end])
	return p
}
