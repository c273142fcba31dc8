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
	"context"
	"fmt"
	"net/http"

	"github.com/unikorn-cloud/contactlist/pkg/openapi"
)

// CreateUser registers a new user, returning the user and a token.
func (c *Client) CreateUser(ctx context.Context, body *openapi.UserCreate) (*openapi.AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.CreateUser(), "", body, http.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return decode[openapi.AuthResponse](resp)
}

// GetProfile reads the profile of the user owning the token.
func (c *Client) GetProfile(ctx context.Context, token string) (*openapi.User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.endpoints.Profile(), token, nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return decode[openapi.User](resp)
}

func (c *Client) UpdateProfile(ctx context.Context, token string, body *openapi.UserUpdate) (*openapi.User, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, c.endpoints.Profile(), token, body, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	return decode[openapi.User](resp)
}

// DeleteProfile deletes the user owning the token, along with their contacts.
func (c *Client) DeleteProfile(ctx context.Context, token string) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, c.endpoints.Profile(), token, nil, http.StatusOK); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}

	return nil
}

func (c *Client) Login(ctx context.Context, body *openapi.Credentials) (*openapi.AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Login(), "", body, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	return decode[openapi.AuthResponse](resp)
}

// Logout revokes the token.
func (c *Client) Logout(ctx context.Context, token string) error {
	if _, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Logout(), token, nil, http.StatusOK); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}

	return nil
}
