package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindowDays is the rolling metrics window used when none is chosen.
	DefaultWindowDays = 30
	// MaxWindowDays bounds both rolling and custom windows.
	MaxWindowDays = 3660
)

// ErrWindowTooLong is returned for windows longer than MaxWindowDays.
var ErrWindowTooLong = errors.New("window too long")

// DateWindow scopes "current period" metrics. It is either a rolling window of Days
// ending now, or an explicit custom range of calendar dates.
type DateWindow struct {
	Days int
	From *time.Time
	To   *time.Time
}

// RollingWindow returns a window of the last days days.
func RollingWindow(days int) DateWindow {
	return DateWindow{Days: days}
}

// CustomWindow returns an explicit range. Both dates are inclusive.
func CustomWindow(from, to time.Time) DateWindow {
	return DateWindow{From: &from, To: &to}
}

// Custom reports whether explicit dates are set.
func (w DateWindow) Custom() bool {
	return w.From != nil && w.To != nil
}

// Bounds returns the inclusive window boundaries relative to now.
func (w DateWindow) Bounds(now time.Time) (time.Time, time.Time) {
	if w.Custom() {
		loc := now.Location()
		from := StartOfDay(w.From.In(loc))
		to := StartOfDay(w.To.In(loc)).AddDate(0, 0, 1).Add(-time.Millisecond)
		return from, to
	}
	days := w.Days
	if days <= 0 {
		days = DefaultWindowDays
	}
	return now.AddDate(0, 0, -(days - 1)), now
}

// LengthDays returns the number of calendar days the window covers, at least one.
func (w DateWindow) LengthDays() int {
	if !w.Custom() {
		if w.Days <= 0 {
			return DefaultWindowDays
		}
		return w.Days
	}
	from := StartOfDay(*w.From)
	to := StartOfDay(w.To.In(w.From.Location()))
	days := int(to.Sub(from).Round(24*time.Hour)/(24*time.Hour)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Validate rejects windows longer than MaxWindowDays and custom windows ending before they start.
func (w DateWindow) Validate() error {
	if w.Custom() {
		if w.To.Before(*w.From) {
			return errors.New("window end before start")
		}
		if w.To.Sub(*w.From) >= MaxWindowDays*24*time.Hour {
			return fmt.Errorf("%w: more than %d days", ErrWindowTooLong, MaxWindowDays)
		}
		return nil
	}
	if w.Days > MaxWindowDays {
		return fmt.Errorf("%w: %d days, at most %d", ErrWindowTooLong, w.Days, MaxWindowDays)
	}
	return nil
}

// Comparison returns the window of equal length immediately preceding Bounds.
func (w DateWindow) Comparison(now time.Time) (time.Time, time.Time) {
	from, _ := w.Bounds(now)
	return from.AddDate(0, 0, -w.LengthDays()), from.Add(-time.Millisecond)
}

// String renders the window as "30" or "custom:2024-01-01..2024-01-31".
func (w DateWindow) String() string {
	if w.Custom() {
		return "custom:" + w.From.Format(time.DateOnly) + ".." + w.To.Format(time.DateOnly)
	}
	return strconv.Itoa(w.LengthDays())
}

// ParseDateWindow is the inverse of String. Custom dates are interpreted in loc.
func ParseDateWindow(raw string, loc *time.Location) (DateWindow, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RollingWindow(DefaultWindowDays), nil
	}
	if rest, ok := strings.CutPrefix(raw, "custom:"); ok {
		fromRaw, toRaw, found := strings.Cut(rest, "..")
		if !found {
			return DateWindow{}, fmt.Errorf("invalid window %q", raw)
		}
		from, err := time.ParseInLocation(time.DateOnly, fromRaw, loc)
		if err != nil {
			return DateWindow{}, fmt.Errorf("invalid window start: %w", err)
		}
		to, err := time.ParseInLocation(time.DateOnly, toRaw, loc)
		if err != nil {
			return DateWindow{}, fmt.Errorf("invalid window end: %w", err)
		}
		w := CustomWindow(from, to)
		if err := w.Validate(); err != nil {
			return DateWindow{}, err
		}
		return w, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return DateWindow{}, fmt.Errorf("invalid window %q", raw)
	}
	w := RollingWindow(days)
	if err := w.Validate(); err != nil {
		return DateWindow{}, err
	}
	return w, nil
}

func (w DateWindow) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
