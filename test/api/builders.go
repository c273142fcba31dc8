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

package api

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/unikorn-cloud/contactlist/pkg/contactlist"
	"github.com/unikorn-cloud/contactlist/pkg/openapi"

	"k8s.io/utils/ptr"
)

// GenerateRandomName returns a short random suffix, unique per call.
func GenerateRandomName() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

// UniqueEmail returns an address that will not collide with other runs.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%s@example.com", prefix, GenerateRandomName())
}

// UserPayloadBuilder builds user registration payloads for testing.
type UserPayloadBuilder struct {
	payload openapi.UserCreate
}

// NewUserPayload creates a builder seeded with the scenario's user and a
// unique e-mail address.
func NewUserPayload() *UserPayloadBuilder {
	payload := contactlist.DefaultFixtures().User
	payload.Email = openapi_types.Email(UniqueEmail("testautomation"))

	return &UserPayloadBuilder{
		payload: payload,
	}
}

func (b *UserPayloadBuilder) WithEmail(email string) *UserPayloadBuilder {
	b.payload.Email = openapi_types.Email(email)
	return b
}

func (b *UserPayloadBuilder) WithPassword(password string) *UserPayloadBuilder {
	b.payload.Password = password
	return b
}

func (b *UserPayloadBuilder) WithName(firstName, lastName string) *UserPayloadBuilder {
	b.payload.FirstName = firstName
	b.payload.LastName = lastName

	return b
}

// Build returns the completed user payload.
func (b *UserPayloadBuilder) Build() *openapi.UserCreate {
	payload := b.payload
	return &payload
}

// Credentials returns login credentials matching the payload.
func (b *UserPayloadBuilder) Credentials() *openapi.Credentials {
	return &openapi.Credentials{
		Email:    b.payload.Email,
		Password: b.payload.Password,
	}
}

// ContactPayloadBuilder builds contact payloads for testing.
type ContactPayloadBuilder struct {
	payload openapi.ContactWrite
}

// NewContactPayload creates a builder seeded with the scenario's contact.
func NewContactPayload() *ContactPayloadBuilder {
	return &ContactPayloadBuilder{
		payload: contactlist.DefaultFixtures().Contact,
	}
}

// NewReplacementContactPayload creates a builder seeded with the contact
// used to overwrite an existing one.
func NewReplacementContactPayload() *ContactPayloadBuilder {
	return &ContactPayloadBuilder{
		payload: contactlist.DefaultFixtures().ReplacementContact,
	}
}

func (b *ContactPayloadBuilder) WithName(firstName, lastName string) *ContactPayloadBuilder {
	b.payload.FirstName = ptr.To(firstName)
	b.payload.LastName = ptr.To(lastName)

	return b
}

func (b *ContactPayloadBuilder) WithEmail(email string) *ContactPayloadBuilder {
	b.payload.Email = ptr.To(openapi_types.Email(email))
	return b
}

// WithoutName clears the required name fields, for negative tests.
func (b *ContactPayloadBuilder) WithoutName() *ContactPayloadBuilder {
	b.payload.FirstName = nil
	b.payload.LastName = nil

	return b
}

// Build returns the completed contact payload.
func (b *ContactPayloadBuilder) Build() *openapi.ContactWrite {
	payload := b.payload
	return &payload
}
