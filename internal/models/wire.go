package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// APIDuration decodes the duration strings the report uses: ISO-8601
// ("PT8H30M") or clock form ("08:30:00"). Bare numbers are read as seconds.
type APIDuration time.Duration

// Duration converts to the standard library type.
func (d APIDuration) Duration() time.Duration { return time.Duration(d) }

func (d *APIDuration) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] != '"' {
		var secs float64
		if err := json.Unmarshal(data, &secs); err != nil {
			return err
		}
		*d = APIDuration(time.Duration(secs * float64(time.Second)))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := parseAPIDuration(s)
	if err != nil {
		return err
	}
	*d = APIDuration(parsed)
	return nil
}

func parseAPIDuration(s string) (time.Duration, error) {
	if strings.HasPrefix(s, "P") || strings.HasPrefix(s, "-P") {
		return parseISO8601Duration(s)
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("unsupported duration %q", s)
	}
	var total time.Duration
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	for i, part := range parts {
		n, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, fmt.Errorf("unsupported duration %q", s)
		}
		total += time.Duration(n * float64(units[i]))
	}
	return total, nil
}

// parseISO8601Duration handles the P[nD]T[nH][nM][nS] subset the API emits.
func parseISO8601Duration(s string) (time.Duration, error) {
	orig := s
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("unsupported duration %q", orig)
	}
	s = s[1:]

	var total time.Duration
	inTime := false
	num := ""
	for _, r := range s {
		switch {
		case r == 'T':
			inTime = true
		case r >= '0' && r <= '9' || r == '.':
			num += string(r)
		default:
			n, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, fmt.Errorf("unsupported duration %q", orig)
			}
			num = ""
			var unit time.Duration
			switch {
			case r == 'D' && !inTime:
				unit = 24 * time.Hour
			case r == 'H' && inTime:
				unit = time.Hour
			case r == 'M' && inTime:
				unit = time.Minute
			case r == 'S' && inTime:
				unit = time.Second
			default:
				return 0, fmt.Errorf("unsupported duration %q", orig)
			}
			total += time.Duration(n * float64(unit))
		}
	}
	if num != "" {
		return 0, fmt.Errorf("unsupported duration %q", orig)
	}
	if negative {
		total = -total
	}
	return total, nil
}

// APIDate decodes a bare calendar day, tolerating a trailing time component.
type APIDate struct {
	time.Time
}

func (d *APIDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{DateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = DateOf(t)
			return nil
		}
	}
	return fmt.Errorf("unsupported date %q", s)
}

func (d APIDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}
