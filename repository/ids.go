package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID builds a prefixed, roughly time-ordered id: prefix, the creation
// instant in base36 milliseconds, and a short random suffix from a UUID.
// Ids are authored client-side so inserts never wait on a sequence.
func NewID(prefix string) string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "-" + millis + "-" + suffix
}

// Accepted date layouts. The dashboard stores dates as strings and the CSV
// sources mix ISO and Brazilian day-first forms.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
}

// ParseFlexibleDate parses a date in either YYYY-MM-DD or DD/MM/YYYY form.
// Empty strings and the "-" sentinel report ok=false without being an error
// condition for callers.
func ParseFlexibleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a time in the stored YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
