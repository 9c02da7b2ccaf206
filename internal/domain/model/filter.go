package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatusSet is an immutable set of order statuses.
type StatusSet struct {
	items map[OrderStatus]struct{}
}

// NewStatusSet builds a set from the given statuses.
func NewStatusSet(statuses ...OrderStatus) StatusSet {
	items := make(map[OrderStatus]struct{}, len(statuses))
	for _, s := range statuses {
		items[s] = struct{}{}
	}
	return StatusSet{items: items}
}

// AllStatuses returns a set containing every known status.
func AllStatuses() StatusSet {
	return NewStatusSet(OrderStatuses...)
}

func (s StatusSet) Has(status OrderStatus) bool {
	_, ok := s.items[status]
	return ok
}

func (s StatusSet) Len() int { return len(s.items) }

// With returns a copy that also contains status.
func (s StatusSet) With(status OrderStatus) StatusSet {
	next := NewStatusSet(s.Values()...)
	next.items[status] = struct{}{}
	return next
}

// Without returns a copy without status.
func (s StatusSet) Without(status OrderStatus) StatusSet {
	next := NewStatusSet(s.Values()...)
	delete(next.items, status)
	return next
}

// Values returns members in canonical status order, unknown values last.
func (s StatusSet) Values() []OrderStatus {
	out := make([]OrderStatus, 0, len(s.items))
	for _, known := range OrderStatuses {
		if s.Has(known) {
			out = append(out, known)
		}
	}
	var extra []OrderStatus
	for v := range s.items {
		if !v.Valid() {
			extra = append(extra, v)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

func (s StatusSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *StatusSet) UnmarshalJSON(data []byte) error {
	var values []OrderStatus
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStatusSet(values...)
	return nil
}

// GeoSet is an immutable set of ISO country codes. The empty set accepts any geography.
type GeoSet struct {
	items map[string]struct{}
}

// NewGeoSet builds a set from codes, normalising them to upper case.
func NewGeoSet(codes ...string) GeoSet {
	items := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			items[c] = struct{}{}
		}
	}
	return GeoSet{items: items}
}

func (s GeoSet) Has(code string) bool {
	_, ok := s.items[strings.ToUpper(code)]
	return ok
}

func (s GeoSet) Len() int { return len(s.items) }

func (s GeoSet) With(code string) GeoSet {
	return NewGeoSet(append(s.Values(), code)...)
}

func (s GeoSet) Without(code string) GeoSet {
	next := NewGeoSet(s.Values()...)
	delete(next.items, strings.ToUpper(code))
	return next
}

// Values returns sorted members.
func (s GeoSet) Values() []string {
	out := make([]string, 0, len(s.items))
	for c := range s.items {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

func (s GeoSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *GeoSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewGeoSet(values...)
	return nil
}

// Period selects the order creation window of the list filter.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7"
	Period30Days    Period = "30"
	PeriodMonth     Period = "month"
	PeriodPrevMonth Period = "prev_month"
	PeriodCustom    Period = "custom"
	PeriodAll       Period = "all"
)

// Valid reports whether the period is known.
func (p Period) Valid() bool {
	switch p {
	case PeriodToday, PeriodYesterday, Period7Days, Period30Days, PeriodMonth, PeriodPrevMonth, PeriodCustom, PeriodAll:
		return true
	}
	return false
}

// PackageAll disables the package predicate.
const PackageAll PackageType = "all"

// TesterFilterMode selects how the tester predicate behaves.
type TesterFilterMode string

const (
	TesterAny  TesterFilterMode = "all"
	TesterNone TesterFilterMode = "none"
	TesterID   TesterFilterMode = "id"
)

// TesterFilter matches orders by assigned tester.
type TesterFilter struct {
	Mode TesterFilterMode
	ID   int64
}

// ParseTesterFilter accepts "all", "none" or a numeric tester id.
func ParseTesterFilter(raw string) (TesterFilter, error) {
	switch raw = strings.TrimSpace(raw); raw {
	case "", string(TesterAny):
		return TesterFilter{Mode: TesterAny}, nil
	case string(TesterNone):
		return TesterFilter{Mode: TesterNone}, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return TesterFilter{}, fmt.Errorf("invalid tester filter %q", raw)
	}
	return TesterFilter{Mode: TesterID, ID: id}, nil
}

func (f TesterFilter) String() string {
	if f.Mode == TesterID {
		return strconv.FormatInt(f.ID, 10)
	}
	if f.Mode == "" {
		return string(TesterAny)
	}
	return string(f.Mode)
}

func (f TesterFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *TesterFilter) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTesterFilter(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// FilterSpec is the order list query. It is a value: builder methods return modified copies.
type FilterSpec struct {
	Query      string           `json:"query"`
	Statuses   StatusSet        `json:"statuses"`
	Package    PackageType      `json:"package"`
	Geo        GeoSet           `json:"geo"`
	Period     Period           `json:"period"`
	From       *time.Time       `json:"from,omitempty"`
	To         *time.Time       `json:"to,omitempty"`
	Tester     TesterFilter     `json:"tester"`
	AmountFrom *decimal.Decimal `json:"amountFrom,omitempty"`
	AmountTo   *decimal.Decimal `json:"amountTo,omitempty"`
}

// DefaultFilterSpec matches every status over the last 30 days.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Statuses: AllStatuses(),
		Package:  PackageAll,
		Geo:      NewGeoSet(),
		Period:   Period30Days,
		Tester:   TesterFilter{Mode: TesterAny},
	}
}

func (f FilterSpec) WithQuery(q string) FilterSpec {
	f.Query = q
	return f
}

func (f FilterSpec) WithStatuses(set StatusSet) FilterSpec {
	f.Statuses = set
	return f
}

func (f FilterSpec) WithPackage(p PackageType) FilterSpec {
	f.Package = p
	return f
}

func (f FilterSpec) WithGeo(set GeoSet) FilterSpec {
	f.Geo = set
	return f
}

func (f FilterSpec) WithPeriod(p Period) FilterSpec {
	f.Period = p
	if p != PeriodCustom {
		f.From, f.To = nil, nil
	}
	return f
}

// WithCustomRange switches to the custom period. Nil bounds leave that side open.
func (f FilterSpec) WithCustomRange(from, to *time.Time) FilterSpec {
	f.Period = PeriodCustom
	f.From, f.To = from, to
	return f
}

func (f FilterSpec) WithTester(t TesterFilter) FilterSpec {
	f.Tester = t
	return f
}

func (f FilterSpec) WithAmountRange(from, to *decimal.Decimal) FilterSpec {
	f.AmountFrom, f.AmountTo = from, to
	return f
}
