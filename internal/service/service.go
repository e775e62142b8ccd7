// Package service holds the API fetchers and the export orchestration.
// Each service takes the narrow slice of the REST client it needs, so tests
// can stub the API without network traffic.
package service

import (
	"context"
	"net/url"
)

type apiGetter interface {
	Get(ctx context.Context, subdomain, path string, params url.Values, out any) error
}

type apiPoster interface {
	Post(ctx context.Context, subdomain, path string, payload any, wantStatus int) error
}
