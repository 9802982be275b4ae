package warehouse

import (
	"fmt"
	"strings"
	"time"
)

// Layouts seen from the drivers: modernc writes Go's default layout, other
// tools write ISO 8601.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// scanTime accepts TIMESTAMP values however the driver chooses to return them.
type scanTime struct {
	t time.Time
}

func (s *scanTime) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		s.t = time.Time{}
	case time.Time:
		s.t = x
	case string:
		return s.parse(x)
	case []byte:
		return s.parse(string(x))
	case int64:
		s.t = time.Unix(x, 0).UTC()
	default:
		return fmt.Errorf("unsupported timestamp type %T", v)
	}
	return nil
}

func (s *scanTime) parse(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		s.t = time.Time{}
		return nil
	}
	// Go's time.String() output carries a monotonic suffix and zone name.
	if i := strings.Index(v, " m="); i > 0 {
		v = v[:i]
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			s.t = t
			return nil
		}
	}
	if t, err := time.Parse("2006-01-02 15:04:05.999999999 -0700 MST", v); err == nil {
		s.t = t
		return nil
	}
	return fmt.Errorf("unparseable timestamp %q", v)
}
