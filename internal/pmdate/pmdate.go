package pmdate

import (
	"strings"
	"time"
	"unicode"

	"pm-dashboard-backend/internal/model"
)

// reportLoc is the fixed reporting time zone for canonical dates. All of the
// sites using this system report in Thailand time; falling back to UTC keeps
// the functions total on hosts without tzdata.
var reportLoc = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// canonicalLayouts are tried in order when parsing a raw date value. The
// display form (DD-MM-YYYY) is last so round-tripped values stay parseable.
var canonicalLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
}

// CanonicalDate converts a raw date value into YYYY-MM-DD in the fixed
// reporting zone. Returns "" for empty or unparseable input; never errors.
func CanonicalDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || s == "undefined" || s == "-" {
		return ""
	}
	for _, layout := range canonicalLayouts {
		t, err := time.ParseInLocation(layout, s, reportLoc)
		if err != nil {
			continue
		}
		return t.In(reportLoc).Format("2006-01-02")
	}
	return ""
}

// DisplayDate renders a raw date value as DD-MM-YYYY for the dashboard and
// the public asset view. Empty input renders as "-". Values that do not look
// like a dashed date are returned unchanged (minus any time suffix) so a
// malformed spreadsheet cell never breaks rendering.
func DisplayDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || s == "undefined" || s == "-" {
		return "-"
	}
	s, _, _ = strings.Cut(s, "T")
	parts := strings.Split(s, "-")
	if len(parts) == 3 && len(parts[0]) == 4 {
		return parts[2] + "-" + parts[1] + "-" + parts[0]
	}
	return s
}

// NextDue computes the next maintenance due date from the last maintenance
// date and the device cadence (6 calendar months for computers, 2 for
// printers). Returns "" when lastDate is empty or unparseable.
//
// Month arithmetic uses time.AddDate, so a start date near month-end may
// roll over (e.g. Aug 31 + 6 months lands on Mar 2/3), matching the
// spreadsheet's own date handling.
func NextDue(lastDate string, device model.DeviceType) string {
	canonical := CanonicalDate(lastDate)
	if canonical == "" {
		return ""
	}
	t, err := time.ParseInLocation("2006-01-02", canonical, reportLoc)
	if err != nil {
		return ""
	}
	return t.AddDate(0, device.CadenceMonths(), 0).Format("2006-01-02")
}

// Today returns the current date as YYYY-MM-DD in the reporting zone.
// Canonical dates compare correctly as plain strings, so "due on or before
// today" is a lexicographic comparison against this value.
func Today() string {
	return time.Now().In(reportLoc).Format("2006-01-02")
}

// zero-width characters that show up in scanned/copied asset IDs:
// ZWSP, ZWNJ, ZWJ and the BOM.
const zeroWidth = "\u200b\u200c\u200d\ufeff"

// NormalizeID canonicalizes an asset identifier for matching: every Unicode
// whitespace and zero-width character is stripped and the rest lower-cased.
// Punctuation is kept, so "PM-2568-001" and " pm-2568-001 " normalize to the
// same key while remaining distinct from "PM2568001".
func NormalizeID(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) || strings.ContainsRune(zeroWidth, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
