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

// CreateContact creates a new contact.
func (c *Client) CreateContact(ctx context.Context, token string, body *openapi.ContactWrite) (*openapi.Contact, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Contacts(), token, body, http.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	return decode[openapi.Contact](resp)
}

// ListContacts lists all contacts owned by the user.
func (c *Client) ListContacts(ctx context.Context, token string) ([]openapi.Contact, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.endpoints.Contacts(), token, nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}

	contacts, err := decode[[]openapi.Contact](resp)
	if err != nil {
		return nil, err
	}

	return *contacts, nil
}

// GetContact retrieves a specific contact.
func (c *Client) GetContact(ctx context.Context, token, contactID string) (*openapi.Contact, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.endpoints.Contact(contactID), token, nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("getting contact: %w", err)
	}

	return decode[openapi.Contact](resp)
}

// ReplaceContact overwrites every field of a contact.
func (c *Client) ReplaceContact(ctx context.Context, token, contactID string, body *openapi.ContactWrite) (*openapi.Contact, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, c.endpoints.Contact(contactID), token, body, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("replacing contact: %w", err)
	}

	return decode[openapi.Contact](resp)
}

// UpdateContact changes only the fields set in the body.
func (c *Client) UpdateContact(ctx context.Context, token, contactID string, body *openapi.ContactWrite) (*openapi.Contact, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, c.endpoints.Contact(contactID), token, body, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("updating contact: %w", err)
	}

	return decode[openapi.Contact](resp)
}

func (c *Client) DeleteContact(ctx context.Context, token, contactID string) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, c.endpoints.Contact(contactID), token, nil, http.StatusOK); err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	return nil
}
