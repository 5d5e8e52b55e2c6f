package store

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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const postgRESTPrefix = "/rest/v1/"

type PostgRESTConfig struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co.
	URL string
	// APIKey is the service-role key, or the anon key when row-level security allows inserts.
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// PostgRESTStore inserts rows through a managed PostgREST endpoint.
type PostgRESTStore struct {
	baseURL *url.URL
	apiKey  string
	timeout time.Duration
	client  *http.Client
}

type postgRESTErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func NewPostgRESTStore(cfg PostgRESTConfig) (*PostgRESTStore, error) {
	raw := strings.TrimSpace(cfg.URL)
	if raw == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid store URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid store URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid store URL %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &PostgRESTStore{
		baseURL: u,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		timeout: cfg.Timeout,
		client:  client,
	}, nil
}

func (s *PostgRESTStore) tableURL(table string) string {
	return s.baseURL.String() + postgRESTPrefix + url.PathEscape(table)
}

func (s *PostgRESTStore) authorize(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
}

func (s *PostgRESTStore) Create(ctx context.Context, record Record) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	table := record.TableName()
	ctx, span := tracer.Start(ctx, "store.create", trace.WithAttributes(
		attribute.String("db.system", DriverPostgREST),
		attribute.String("db.table", table),
	))
	defer span.End()

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", table, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tableURL(table), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build insert request: %w", err)
	}
	s.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	storeErr := decodePostgRESTError(resp)
	span.RecordError(storeErr)
	span.SetStatus(codes.Error, storeErr.Message)
	return storeErr
}

func decodePostgRESTError(resp *http.Response) *Error {
	storeErr := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(body) > 0 {
		var parsed postgRESTErrorBody
		if json.Unmarshal(body, &parsed) == nil {
			storeErr.Code = parsed.Code
			storeErr.Message = parsed.Message
			storeErr.Details = parsed.Details
		}
	}

	if storeErr.Message == "" {
		storeErr.Message = http.StatusText(resp.StatusCode)
	}

	return storeErr
}

// Ping treats any non-5xx reply from the REST root as reachable.
func (s *PostgRESTStore) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL.String()+postgRESTPrefix, nil)
	if err != nil {
		return err
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return errors.New("store ping failed: " + resp.Status)
	}
	return nil
}

func (s *PostgRESTStore) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

func (s *PostgRESTStore) Driver() string {
	return DriverPostgREST
}
