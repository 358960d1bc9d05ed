package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"ticketlist/internal/domain"
	perr "ticketlist/internal/errors"
	"ticketlist/internal/logger"
)

// Session is the caller's credential. The zero value is anonymous.
type Session struct {
	Token string
}

// Valid reports whether a token is present
func (s Session) Valid() bool { return s.Token != "" }

// StatusError is a non-2xx answer from the Listing Service
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("listing service returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("listing service returned %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

// Options configures a Client
type Options struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
	Session  Session
	Logger   *logger.Logger

	// HTTPClient overrides the underlying transport, mostly for tests
	HTTPClient *http.Client
}

// Client fetches listing pages over HTTP
type Client struct {
	base    *url.URL
	http    *retryablehttp.Client
	session Session
	log     *logger.Logger
}

const maxErrorBody = 512

// NewClient builds a client. RetryMax defaults to zero: failed fetches
// surface to the user, who retries explicitly.
func NewClient(opt Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opt.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, perr.Newf(perr.KindValidation, "invalid listing base url %q", opt.BaseURL)
	}

	log := opt.Logger
	if log == nil {
		log = logger.Named("listing")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opt.RetryMax
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = leveledLogger{log: log}
	if opt.HTTPClient != nil {
		retryClient.HTTPClient = opt.HTTPClient
	} else if opt.Timeout > 0 {
		retryClient.HTTPClient.Timeout = opt.Timeout
	}

	return &Client{
		base:    base,
		http:    retryClient,
		session: opt.Session,
		log:     log,
	}, nil
}

// Fetch requests one page of records for q from e.
// Endpoints that need a session answer empty without a request when none is held.
func (c *Client) Fetch(ctx context.Context, e Endpoint, q domain.QueryDescriptor) ([]domain.Record, error) {
	if e.RequiresSession && !c.session.Valid() {
		c.log.Debug().Str("path", e.Path).Msg("no session, skipping request")
		return []domain.Record{}, nil
	}

	req, requestID, err := c.prepareRequest(ctx, e, q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	records, err := c.sendRequest(req)
	ev := c.log.Debug()
	if err != nil {
		ev = c.log.Warn().Err(err)
	}
	ev.Str("request_id", requestID).
		Str("path", e.Path).
		Str("query", req.URL.RawQuery).
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("listing fetch")

	return records, err
}

func (c *Client) prepareRequest(ctx context.Context, e Endpoint, q domain.QueryDescriptor) (*retryablehttp.Request, string, error) {
	u := *c.base
	u.Path = c.base.Path + e.Path
	u.RawQuery = e.Params(q).Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", perr.Wrap(err, perr.KindTransient, "build listing request")
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	c.signRequest(req)
	return req, requestID, nil
}

func (c *Client) signRequest(req *retryablehttp.Request) {
	if c.session.Valid() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
}

func (c *Client) sendRequest(req *retryablehttp.Request) ([]domain.Record, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil || errors.Is(err, context.Canceled) {
			return nil, perr.Wrap(err, perr.KindCanceled, "listing request canceled")
		}
		return nil, perr.Wrap(err, perr.KindTransient, "listing request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, perr.Wrap(statusErr, perr.KindSessionInvalid, "session rejected")
		}
		return nil, perr.Wrap(statusErr, perr.KindTransient, "listing request failed")
	}

	var records []domain.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Record{}, nil
		}
		return nil, perr.Wrap(err, perr.KindTransient, "malformed listing response")
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

// leveledLogger adapts zerolog to retryablehttp.LeveledLogger
type leveledLogger struct {
	log *logger.Logger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.log.Error().Fields(kv).Msg(msg) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.log.Warn().Fields(kv).Msg(msg) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.log.Debug().Fields(kv).Msg(msg) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.log.Trace().Fields(kv).Msg(msg) }
