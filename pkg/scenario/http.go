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

package scenario

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/unikorn-cloud/contactlist/pkg/client"
)

// ResourceIDPlaceholder in a request path is replaced with the session's
// resource ID.
const ResourceIDPlaceholder = "{resourceId}"

// maxBodyLength bounds how much of a response body ends up in a message.
const maxBodyLength = 512

// Transport performs a single HTTP exchange.
type Transport interface {
	Do(ctx context.Context, method, path, token string, body any) (*client.Response, error)
}

// Request declares an HTTP step.
type Request struct {
	// Method is the HTTP verb.
	Method string
	// Path is relative to the service base URL and may contain
	// ResourceIDPlaceholder.
	Path string
	// Body is sent as JSON, raw bytes and strings are sent verbatim.
	Body any
	// Authenticated sends the session token as a bearer token.
	Authenticated bool
	// ExpectedStatus is the status code the service must respond with.
	ExpectedStatus int
	// CaptureToken names a response field stored as the session token.
	CaptureToken string
	// CaptureResource names a response field stored as the session
	// resource ID.
	CaptureResource string
	// Extract names response fields copied into the result.
	Extract []string
	// Expect maps response fields to the values they must have.
	Expect map[string]string
	// Summary is the message reported on success.
	Summary string
}

func truncate(s string) string {
	if len(s) <= maxBodyLength {
		return s
	}

	return s[:maxBodyLength] + "..."
}

// resolvePath substitutes session state into the path.
func (r *Request) resolvePath(session Session) (string, error) {
	if !strings.Contains(r.Path, ResourceIDPlaceholder) {
		return r.Path, nil
	}

	if session.ResourceID == "" {
		return "", fmt.Errorf("%s %s requires a resource ID but none has been created", r.Method, r.Path)
	}

	return strings.ReplaceAll(r.Path, ResourceIDPlaceholder, url.PathEscape(session.ResourceID)), nil
}

// capture reads a required field from the response.
func capture(response *client.Response, field string) (string, error) {
	value := response.Field(field).String()
	if value == "" {
		return "", fmt.Errorf("response field %s is missing or empty", field)
	}

	return value, nil
}

// HTTP returns a step that performs the request and asserts on the response.
func HTTP(transport Transport, request Request) ExecuteFunc {
	return func(ctx context.Context, session Session) (Session, Result) {
		if request.Authenticated && session.AuthToken == "" {
			return session, Fail(fmt.Sprintf("missing dependency: %s %s requires an authentication token but none has been issued", request.Method, request.Path))
		}

		path, err := request.resolvePath(session)
		if err != nil {
			return session, Fail("missing dependency: " + err.Error())
		}

		var token string

		if request.Authenticated {
			token = session.AuthToken
		}

		response, err := transport.Do(ctx, request.Method, path, token, request.Body)
		if err != nil {
			return session, Fail(fmt.Sprintf("%s %s: %v", request.Method, path, err))
		}

		if response.StatusCode != request.ExpectedStatus {
			return session, Fail(fmt.Sprintf("%s %s: expected status %d, got %d, body: %s (trace ID: %s)", request.Method, path, request.ExpectedStatus, response.StatusCode, truncate(string(response.Body)), response.TraceID))
		}

		fields := map[string]string{}

		for _, field := range request.Extract {
			fields[field] = response.Field(field).String()
		}

		for _, field := range slices.Sorted(maps.Keys(request.Expect)) {
			want := request.Expect[field]

			got := response.Field(field)
			if !got.Exists() || got.String() != want {
				return session, Fail(fmt.Sprintf("%s %s: expected field %s to be %q, got %q", request.Method, path, field, want, got.String()))
			}

			fields[field] = got.String()
		}

		next := session

		if request.CaptureToken != "" {
			value, err := capture(response, request.CaptureToken)
			if err != nil {
				return session, Fail(fmt.Sprintf("%s %s: %v", request.Method, path, err))
			}

			next = next.WithAuthToken(value)
			fields[request.CaptureToken] = value
		}

		if request.CaptureResource != "" {
			value, err := capture(response, request.CaptureResource)
			if err != nil {
				return session, Fail(fmt.Sprintf("%s %s: %v", request.Method, path, err))
			}

			next = next.WithResourceID(value)
			fields[request.CaptureResource] = value
		}

		message := request.Summary
		if message == "" {
			message = fmt.Sprintf("%s %s returned %d", request.Method, path, response.StatusCode)
		}

		return next, Pass(message, fields)
	}
}
