// Package wire maps between domain entities and the flat, string-encoded
// rows used by the remote store. It owns all string-encoding policy: the
// three textual date/time formats, snake_case column naming, canonical UUID
// identifiers, and the referential stitching of an activity to its parent
// city inside a trip aggregate.
//
// Decoding is best-effort at the aggregate level: a malformed city or
// activity row is dropped from the reconstructed trip rather than failing
// it, and only a malformed trip-level field is fatal to that trip. Dropped
// rows are counted in DecodeStats so callers can observe the loss.
package wire

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mberman/trip-planner-backend/internal/domain"
)

// Wire formats. Calendar dates and clock times are encoded independently;
// activity times are reconstructed by parsing the combined string. The
// update path (and the created_at/updated_at read path) uses RFC 3339
// instants instead — a third format, kept deliberately distinct.
const (
	dateFormat     = "2006-01-02"
	timeFormat     = "15:04:05"
	dateTimeFormat = "2006-01-02 15:04:05"
)

// FormatDate encodes a calendar date as yyyy-MM-dd.
func FormatDate(t time.Time) string { return t.Format(dateFormat) }

// FormatTime encodes a clock time as HH:mm:ss, independent of the date.
func FormatTime(t time.Time) string { return t.Format(timeFormat) }

// FormatTimestamp encodes a precise instant as RFC 3339 in UTC.
// Used when stamping updated_at on the update path.
func FormatTimestamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// ParseDate decodes a yyyy-MM-dd calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", domain.ErrDecode, s)
	}
	return t, nil
}

// ParseDateTime decodes a combined "yyyy-MM-dd HH:mm:ss" string.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(dateTimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date-time %q", domain.ErrDecode, s)
	}
	return t, nil
}

// parseTimestamp decodes a stored created_at/updated_at value leniently:
// an unparsable timestamp yields now rather than a decode failure, so a
// cosmetic field can never sink an otherwise healthy row.
func parseTimestamp(s string, now time.Time) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now
}

// parseID decodes a canonical UUID string. Unlike the lenient timestamp
// path, a bad identifier fails the row: substituting a fresh UUID would
// break identifier stability and orphan child rows.
func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad uuid %q", domain.ErrDecode, s)
	}
	return id, nil
}

// equalID compares two stored identifiers case-insensitively, the way an
// activity's city_id is resolved against the trip's city list.
func equalID(a, b string) bool {
	return strings.EqualFold(a, b)
}
