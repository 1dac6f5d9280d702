package sessionservice

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var sinceParser = newSinceParser()

func newSinceParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// parseSince reads an RFC 3339 timestamp, a date, or an English phrase
// relative to now. An empty expression means no lower bound.
func parseSince(expr string, now time.Time) (*time.Time, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, expr); err == nil {
			return &t, nil
		}
	}

	r, err := sinceParser.Parse(strings.ToLower(expr), now)
	if err != nil || r == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSince, expr)
	}
	t := r.Time
	return &t, nil
}
