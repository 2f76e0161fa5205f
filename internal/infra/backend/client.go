package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"toy-rental-storefront/internal/pkg/config"
	"toy-rental-storefront/internal/pkg/errs"
)

const (
	defaultTimeout    = 8 * time.Second
	idempotencyHeader = "Idempotency-Key"
)

// Client talks to the storefront REST backend. Every call is bounded by the
// configured timeout so a stuck request surfaces as ErrBackendTimeout.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

func NewClient(cfg config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: %s %s status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

type request struct {
	method         string
	path           []string
	query          url.Values
	token          string
	idempotencyKey string
	body           any
	// entity and id name the resource for 404 mapping
	entity string
	id     string
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint, err := url.JoinPath(c.baseURL, req.path...)
	if err != nil {
		return errs.Wrap(err, "build backend url")
	}
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return errs.Wrap(err, "encode backend request")
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return errs.Wrap(err, "create backend request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	if req.idempotencyKey != "" {
		httpReq.Header.Set(idempotencyHeader, req.idempotencyKey)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return classifyTransportErr(err, req.method, endpoint)
	}
	defer resp.Body.Close()

	slog.Debug("backend call",
		"method", req.method,
		"url", endpoint,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode >= 400 {
		statusErr := &StatusError{
			Method: req.method,
			Path:   strings.Join(req.path, "/"),
			Code:   resp.StatusCode,
			Body:   drainError(resp.Body),
		}
		return classifyStatus(statusErr, req.entity, req.id)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errs.Wrap(err, "decode backend response")
	}
	return nil
}

func classifyTransportErr(err error, method, endpoint string) error {
	wrapped := errs.Wrapf(err, "backend %s %s", method, endpoint)

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return errs.Mark(wrapped, errs.ErrBackendTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return wrapped
	}
	return errs.Mark(wrapped, errs.ErrBackendUnavailable)
}

func classifyStatus(se *StatusError, entity, id string) error {
	switch {
	case se.Code == http.StatusNotFound && entity != "":
		return errs.Wrap(errs.NewNotFound(entity, id), se.Error())
	case se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden:
		return errs.Mark(se, errs.ErrUnauthenticated)
	case se.Code == http.StatusConflict:
		return errs.Mark(se, errs.ErrConflict)
	case se.Code == http.StatusBadRequest || se.Code == http.StatusUnprocessableEntity:
		return errs.Wrap(errs.NewValidation("", se.Body), "backend rejected request")
	case se.Code == http.StatusRequestTimeout || se.Code == http.StatusGatewayTimeout:
		return errs.Mark(se, errs.ErrBackendTimeout)
	case se.Code >= 500:
		return errs.Mark(se, errs.ErrBackendUnavailable)
	default:
		return se
	}
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
