package analytics

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownDaySelector is returned for selector values other than today or
// yesterday.
var ErrUnknownDaySelector = errors.New("unknown day selector")

// DaySelector picks which calendar day the report targets.
type DaySelector string

const (
	DayToday     DaySelector = "today"
	DayYesterday DaySelector = "yesterday"
)

// ParseDaySelector validates a raw selector value, defaulting to today.
func ParseDaySelector(raw string) (DaySelector, error) {
	switch DaySelector(raw) {
	case DayToday, "":
		return DayToday, nil
	case DayYesterday:
		return DayYesterday, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownDaySelector, raw)
	}
}

const dateLayout = "2006-01-02"

// reportLocation is the fixed reporting timezone. All calendar-date math
// happens here regardless of the server's local zone.
var reportLocation = loadReportLocation()

func loadReportLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// IST has no DST, a fixed offset is equivalent.
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// DayWindow is the target calendar date plus the two historical lookback
// windows the predictive stage compares against. Window membership is
// decided on local-calendar-date strings, never on instants, so timestamps
// near midnight do not drift across days.
type DayWindow struct {
	Target     time.Time // midnight, reporting timezone
	RTOFrom    time.Time // pickup-date window, inclusive
	RTOTo      time.Time
	CancelFrom time.Time // creation-date window, inclusive
	CancelTo   time.Time
}

// ResolveDay computes the target date and lookback windows for a selector.
// Pure; has no failure modes.
func ResolveDay(sel DaySelector, now time.Time) DayWindow {
	local := now.In(reportLocation)
	target := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, reportLocation)
	if sel == DayYesterday {
		target = target.AddDate(0, 0, -1)
	}
	return DayWindow{
		Target:     target,
		RTOFrom:    target.AddDate(0, 0, -14),
		RTOTo:      target.AddDate(0, 0, -7),
		CancelFrom: target.AddDate(0, 0, -7),
		CancelTo:   target.AddDate(0, 0, -1),
	}
}

// LocalDate formats an instant as a calendar date in the reporting timezone.
func LocalDate(t time.Time) string {
	return t.In(reportLocation).Format(dateLayout)
}

// TargetDate returns the target day as YYYY-MM-DD.
func (w DayWindow) TargetDate() string {
	return w.Target.Format(dateLayout)
}

// IsTargetDay reports whether t falls on the target calendar date.
func (w DayWindow) IsTargetDay(t time.Time) bool {
	return LocalDate(t) == w.TargetDate()
}

// InRTOWindow reports whether a pickup instant falls inside the RTO lookback
// window, inclusive on both ends.
func (w DayWindow) InRTOWindow(t time.Time) bool {
	return dateBetween(t, w.RTOFrom, w.RTOTo)
}

// InCancelWindow reports whether a creation instant falls inside the
// cancellation lookback window, inclusive on both ends.
func (w DayWindow) InCancelWindow(t time.Time) bool {
	return dateBetween(t, w.CancelFrom, w.CancelTo)
}

func dateBetween(t, from, to time.Time) bool {
	// ISO dates compare correctly as strings.
	d := LocalDate(t)
	return d >= from.Format(dateLayout) && d <= to.Format(dateLayout)
}
