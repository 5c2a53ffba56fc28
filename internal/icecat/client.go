package icecat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/matteonot12/icecat-helper/pkg/errors"
	"github.com/matteonot12/icecat-helper/pkg/httpclient"

	"github.com/matteonot12/icecat-helper/internal/domain"
)

// Provider constants for the open Icecat LIVE endpoint.
const (
	DefaultBaseURL  = "https://live.icecat.biz/api"
	DefaultUsername = "openIcecat-live"
	DefaultTimeout  = 20 * time.Second
)

// successSentinel is the envelope msg value marking a usable response.
const successSentinel = "OK"

// maxBodySize bounds how much of a provider response is read (8 MB).
const maxBodySize = 8 << 20

// Config holds catalog client configuration.
type Config struct {
	BaseURL  string
	Username string
	Timeout  time.Duration
}

// DefaultConfig returns the fixed open-Icecat endpoint configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Username: DefaultUsername,
		Timeout:  DefaultTimeout,
	}
}

// Client fetches product sheets from the Icecat catalog API.
type Client struct {
	baseURL  string
	username string
	http     *httpclient.Client
	logger   *slog.Logger
}

// New creates a catalog client. Zero-valued config fields fall back to the
// provider defaults.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Username == "" {
		cfg.Username = DefaultUsername
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL:  cfg.BaseURL,
		username: cfg.Username,
		http:     httpclient.New(httpclient.Config{Timeout: cfg.Timeout}),
		logger:   logger,
	}
}

// LookupURL builds the provider request URL for the given language and GTIN.
// The language code is uppercased; parameter order matches the provider docs.
func (c *Client) LookupURL(language, gtin string) string {
	return fmt.Sprintf("%s?UserName=%s&Language=%s&GTIN=%s",
		c.baseURL,
		url.QueryEscape(c.username),
		strings.ToUpper(language),
		url.QueryEscape(gtin),
	)
}

// Lookup fetches and maps the product sheet for one GTIN.
//
// Failure taxonomy:
//   - transport error or non-2xx status  → UPSTREAM_UNREACHABLE
//   - body not decodable as the envelope → UPSTREAM_PROTOCOL
//   - envelope msg not "OK"              → PROVIDER_REJECTED (provider's message)
//   - required fields absent             → INCOMPLETE_RECORD
func (c *Client) Lookup(ctx context.Context, language, gtin string) (*domain.ProductSheet, error) {
	reqURL := c.LookupURL(language, gtin)

	resp, err := c.http.Get(ctx, reqURL)
	if err != nil {
		return nil, apperrors.UpstreamUnreachable(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, apperrors.UpstreamUnreachable(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&env); err != nil {
		return nil, apperrors.UpstreamProtocol(err)
	}

	if env.Msg != successSentinel {
		return nil, apperrors.ProviderRejected(env.Msg)
	}
	if env.Data == nil {
		return nil, apperrors.UpstreamProtocol(fmt.Errorf("envelope msg %q but no data object", env.Msg))
	}

	sheet, err := mapSheet(gtin, strings.ToUpper(language), env.Data)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "catalog lookup succeeded",
		slog.String("gtin", gtin),
		slog.String("language", sheet.Language),
		slog.Int("spec_rows", len(sheet.SpecRows)),
		slog.Int("gallery", len(sheet.Gallery)),
	)

	return sheet, nil
}
