/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package client

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/tidwall/gjson"

	"github.com/unikorn-cloud/contactlist/pkg/constants"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

var (
	// ErrUnexpectedStatus is matched by any StatusError.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrRequest is returned when no response could be read from the service.
	ErrRequest = errors.New("http request failed")
)

// StatusError is returned when the service responds with a status other
// than the one expected.
type StatusError struct {
	Expected int
	Actual   int
	Body     string
	TraceID  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: expected %d, got %d, body: %s (trace ID: %s)", ErrUnexpectedStatus, e.Expected, e.Actual, e.Body, e.TraceID)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Options defines how to reach the contact list service.
type Options struct {
	// BaseURL is the scheme, host and optional path prefix of the service.
	BaseURL string

	// RequestTimeout bounds every individual HTTP request.
	RequestTimeout time.Duration

	// LogRequests logs method, path, status and duration of every request.
	LogRequests bool

	// LogResponses logs every non-empty response body.
	LogResponses bool
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.BaseURL, "base-url", constants.DefaultBaseURL, "Base URL of the contact list service.")
	f.DurationVar(&o.RequestTimeout, "request-timeout", 30*time.Second, "Timeout applied to each HTTP request.")
	f.BoolVar(&o.LogRequests, "log-requests", false, "Log a line for every HTTP request.")
	f.BoolVar(&o.LogResponses, "log-responses", false, "Log every HTTP response body.")
}

// Client is a minimal JSON client for the contact list service.  Tokens are
// passed explicitly on every call, the client holds no session state.
type Client struct {
	baseURL   string
	client    *http.Client
	options   *Options
	endpoints *Endpoints
}

// New returns a new client.
func New(options *Options) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(options.BaseURL, "/"),
		client: &http.Client{
			Timeout: options.RequestTimeout,
		},
		options:   options,
		endpoints: NewEndpoints(),
	}
}

// Endpoints returns the path builders used by the client.
func (c *Client) Endpoints() *Endpoints {
	return c.endpoints
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	TraceID    string
}

// Field returns the value at the given gjson path in the response body.
func (r *Response) Field(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// generateTraceID creates a new W3C trace ID.
// A fresh trace ID per request means any failure can be found in the
// service logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// encodeBody turns a request body into a reader.  Raw bytes and strings are
// sent verbatim so literal payloads reach the wire unmodified.
func encodeBody(body any) (io.Reader, error) {
	switch t := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(t), nil
	case []byte:
		return bytes.NewReader(t), nil
	case string:
		return strings.NewReader(t), nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	return bytes.NewReader(data), nil
}

// Do performs a request without checking the response status.  A non-empty
// token is sent as a bearer token.
func (c *Client) Do(ctx context.Context, method, path, token string, body any) (*Response, error) {
	return c.doRequest(ctx, method, path, token, body, 0)
}

//nolint:cyclop
func (c *Client) doRequest(ctx context.Context, method, path, token string, body any, expectedStatus int) (*Response, error) {
	log := log.FromContext(ctx).WithValues("method", method, "path", path)

	reader, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	traceParent := createTraceParent()
	traceID := extractTraceID(traceParent)

	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=contactlist")
	req.Header.Set("User-Agent", constants.VersionString())
	req.Header.Set("Accept", "application/json")

	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Error(err, "http request failed", "duration", duration, "traceID", traceID)
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(err, "reading response body", "duration", duration, "status", resp.StatusCode, "traceID", traceID)
		return nil, fmt.Errorf("%w: reading response body: %w", ErrRequest, err)
	}

	if c.options.LogRequests {
		log.Info("request complete", "status", resp.StatusCode, "duration", duration, "traceID", traceID)
	}

	if c.options.LogResponses && len(respBody) > 0 {
		log.Info("response body", "body", string(respBody), "traceID", traceID)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		TraceID:    traceID,
	}

	if expectedStatus > 0 && resp.StatusCode != expectedStatus {
		log.Info("unexpected status", "expected", expectedStatus, "status", resp.StatusCode, "body", string(respBody), "traceID", traceID)

		return response, &StatusError{
			Expected: expectedStatus,
			Actual:   resp.StatusCode,
			Body:     string(respBody),
			TraceID:  traceID,
		}
	}

	return response, nil
}

func decode[T any](resp *Response) (*T, error) {
	var out T

	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	return &out, nil
}
