package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server

	authCalls int
	tokenExp  time.Duration
	resource  http.HandlerFunc
}

func newTestServer(t *testing.T, resource http.HandlerFunc) *testServer {
	t.Helper()
	ts := &testServer{tokenExp: time.Hour, resource: resource}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/connect/token" {
			ts.authCalls++
			require.NoError(t, r.ParseForm())
			require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
			require.Equal(t, "test-id", r.PostForm.Get("client_id"))
			require.Equal(t, "test-secret", r.PostForm.Get("client_secret"))

			header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
			claims := base64.RawURLEncoding.EncodeToString(
				[]byte(fmt.Sprintf(`{"exp":%d}`, time.Now().Add(ts.tokenExp).Unix())))
			json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
				"access_token":   header + "." + claims + ".",
				"expires_in":     int(ts.tokenExp.Seconds()),
				"token_type":     "Bearer",
				"personId":       "person-123",
				"organizationId": "org-456",
			})
			return
		}
		if ts.resource != nil {
			ts.resource(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) client() *Client {
	host := strings.TrimPrefix(ts.URL, "http://")
	return New(Config{
		Domain:       host,
		IdentityHost: host,
		Scheme:       "http",
		ClientID:     "test-id",
		ClientSecret: "test-secret",
	}, nil)
}

func TestGetAuthorizesOnceAndSendsBearer(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))
		require.Equal(t, "/v1/Things", r.URL.Path)
		require.Equal(t, "id,name", r.URL.Query().Get("$select"))
		fmt.Fprint(w, `{"value": [{"id": "a"}]}`)
	})
	c := ts.client()

	var out struct {
		Value []struct {
			ID string `json:"id"`
		} `json:"value"`
	}
	params := url.Values{"$select": {"id,name"}}
	require.NoError(t, c.Get(context.Background(), "", "/v1/Things", params, &out))
	require.NoError(t, c.Get(context.Background(), "", "/v1/Things", params, &out))

	require.Equal(t, 1, ts.authCalls, "valid token must be reused")
	require.Len(t, out.Value, 1)
	require.Equal(t, "a", out.Value[0].ID)
}

func TestGetReauthorizesExpiredToken(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	ts.tokenExp = -time.Minute

	c := ts.client()
	require.NoError(t, c.Get(context.Background(), "", "/v1/Things", nil, nil))
	require.NoError(t, c.Get(context.Background(), "", "/v1/Things", nil, nil))
	require.Equal(t, 2, ts.authCalls)
}

func TestGetUnexpectedStatus(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "boom")
	})

	err := ts.client().Get(context.Background(), "", "/v1/Things", nil, nil)
	var statusErr *UnexpectedStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.Status)
	require.Equal(t, http.StatusOK, statusErr.Want)
	require.Equal(t, "boom", statusErr.Body)
}

func TestGetRejectsRelativePath(t *testing.T) {
	ts := newTestServer(t, nil)
	err := ts.client().Get(context.Background(), "", "v1/Things", nil, nil)
	require.ErrorContains(t, err, "must start with '/'")
	require.Zero(t, ts.authCalls)
}

func TestAuthorizationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": "invalid_client"}`)
	}))
	t.Cleanup(srv.Close)

	host := strings.TrimPrefix(srv.URL, "http://")
	c := New(Config{
		Domain: host, IdentityHost: host, Scheme: "http",
		ClientID: "bad", ClientSecret: "bad",
	}, nil)

	err := c.Get(context.Background(), "", "/v1/Things", nil, nil)
	require.ErrorIs(t, err, ErrAuthorizationFailed)
	require.ErrorContains(t, err, "invalid_client")
}

func TestAuthorizeRequiresCredentials(t *testing.T) {
	c := New(Config{}, nil)
	err := c.Get(context.Background(), "", "/v1/Things", nil, nil)
	require.ErrorIs(t, err, ErrAuthorizationFailed)
}

func TestPersonID(t *testing.T) {
	ts := newTestServer(t, nil)
	id, err := ts.client().PersonID(context.Background())
	require.NoError(t, err)
	require.Equal(t, "person-123", id)
}

func TestPostChecksWantedStatus(t *testing.T) {
	var got map[string]any
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})
	c := ts.client()

	payload := map[string]any{"type": "In"}
	require.NoError(t, c.Post(context.Background(), "", "/v1/TimeEntries", payload, http.StatusCreated))
	require.Equal(t, "In", got["type"])

	err := c.Post(context.Background(), "", "/v1/TimeEntries", payload, http.StatusAccepted)
	var statusErr *UnexpectedStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusCreated, statusErr.Status)
}
