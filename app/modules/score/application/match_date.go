package scoreservice

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"

	scoredomain "github.com/Black-And-White-Club/citl/app/modules/score/domain"
)

var matchDateLayouts = []string{
	time.DateOnly,
	"01/02/2006",
	"1/2/2006",
	"Jan 2 2006",
	"January 2 2006",
}

// ParseMatchDate reads a match date typed by the scorekeeper. Exact dates are
// tried first, then natural language relative to now ("today", "last
// tuesday"). An empty input is today. The result is midnight UTC.
func ParseMatchDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return dateOnly(now), nil
	}

	for _, layout := range matchDateLayouts {
		if t, err := time.Parse(layout, strings.ReplaceAll(input, ",", "")); err == nil {
			return dateOnly(t), nil
		}
	}

	w := when.New(nil)
	w.Add(en.All...)
	r, err := w.Parse(input, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", scoredomain.ErrInvalidMatchDate, input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", scoredomain.ErrInvalidMatchDate, input)
	}
	return dateOnly(r.Time), nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
