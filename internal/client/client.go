// Package client implements the authorized REST client for the Jibble API.
// Each logical resource lives on its own subdomain of the platform domain;
// queries use OData-style $filter/$expand/$select parameters.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/droplet-hq/jibble-export/internal/models"
)

// ErrAuthorizationFailed is returned when the identity server rejects the
// client credentials.
var ErrAuthorizationFailed = errors.New("authorization failed")

// UnexpectedStatusError carries a response that missed the expected status.
type UnexpectedStatusError struct {
	Status int
	Want   int
	Body   string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d (want %d): %s", e.Status, e.Want, e.Body)
}

// Config locates the API and identity hosts.
type Config struct {
	// Domain is the platform domain; resources live on <subdomain>.<Domain>.
	Domain string
	// IdentityHost serves the client-credentials token endpoint.
	IdentityHost string
	// Scheme defaults to https.
	Scheme       string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client is a bearer-token REST client. It authorizes lazily on first use
// and re-authorizes when the token expires.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
	token  *models.AuthToken
	now    func() time.Time
}

// New builds a client; no network traffic happens until the first request.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Domain == "" {
		cfg.Domain = "prod.jibble.io"
	}
	if cfg.IdentityHost == "" {
		cfg.IdentityHost = "identity." + cfg.Domain
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "https"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		now:    time.Now,
	}
}

// PersonID returns the authorized person's id, authorizing first if needed.
func (c *Client) PersonID(ctx context.Context) (string, error) {
	if err := c.ensureToken(ctx); err != nil {
		return "", err
	}
	return c.token.PersonID, nil
}

// Get performs an authorized GET against a subdomain resource and decodes
// the 200 response into out. A nil out discards the body.
func (c *Client) Get(ctx context.Context, subdomain, path string, params url.Values, out any) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path %q must start with '/'", path)
	}
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	target := c.resourceURL(subdomain, path)
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	c.logger.Debug("api get", zap.String("url", target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer res.Body.Close() //nolint:errcheck

	if res.StatusCode != http.StatusOK {
		return statusError(res, http.StatusOK)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// Post performs an authorized JSON POST and checks for the wanted status.
// Response bodies are discarded; the endpoints we post to return nothing
// useful.
func (c *Client) Post(ctx context.Context, subdomain, path string, payload any, wantStatus int) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path %q must start with '/'", path)
	}
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", path, err)
	}
	target := c.resourceURL(subdomain, path)
	c.logger.Debug("api post", zap.String("url", target))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer res.Body.Close() //nolint:errcheck

	if res.StatusCode != wantStatus {
		return statusError(res, wantStatus)
	}
	return nil
}

func (c *Client) ensureToken(ctx context.Context) error {
	if c.token != nil && !c.token.Expired(c.now()) {
		return nil
	}
	if c.token != nil {
		c.logger.Info("bearer token expired, re-authorizing")
	}
	return c.authorize(ctx)
}

func (c *Client) authorize(ctx context.Context) error {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return fmt.Errorf("%w: client credentials not configured", ErrAuthorizationFailed)
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
	}
	target := c.cfg.Scheme + "://" + c.cfg.IdentityHost + "/connect/token"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Info("authorizing client")
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}
	defer res.Body.Close() //nolint:errcheck

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("%w: status %d: %s", ErrAuthorizationFailed, res.StatusCode, strings.TrimSpace(string(body)))
	}

	token := &models.AuthToken{}
	if err := json.NewDecoder(res.Body).Decode(token); err != nil {
		return fmt.Errorf("%w: decode token response: %v", ErrAuthorizationFailed, err)
	}
	token.ResolveExpiry(c.now())
	c.token = token

	c.logger.Info("authorization successful",
		zap.String("organization_id", token.OrganizationID),
		zap.Time("expires_at", token.ExpiresAt()))
	return nil
}

func (c *Client) resourceURL(subdomain, path string) string {
	host := c.cfg.Domain
	if subdomain != "" {
		host = subdomain + "." + host
	}
	return c.cfg.Scheme + "://" + host + path
}

func statusError(res *http.Response, want int) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return &UnexpectedStatusError{
		Status: res.StatusCode,
		Want:   want,
		Body:   strings.TrimSpace(string(body)),
	}
}
