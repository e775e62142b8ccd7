package service

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

// apiCall records one request a stub received.
type apiCall struct {
	Subdomain string
	Path      string
	Params    url.Values
}

// stubGetter answers Get calls from a handler function and records every
// request it sees.
type stubGetter struct {
	calls  []apiCall
	handle func(call apiCall, out any) error
}

func (s *stubGetter) Get(_ context.Context, subdomain, path string, params url.Values, out any) error {
	call := apiCall{Subdomain: subdomain, Path: path, Params: params}
	s.calls = append(s.calls, call)
	if s.handle == nil {
		return nil
	}
	return s.handle(call, out)
}

// respondJSON decodes a canned payload into a Get out argument the way the
// real client decodes a response body.
func respondJSON(raw string, out any) error {
	return json.Unmarshal([]byte(raw), out)
}

func utcDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
