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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/contactlist/pkg/client"
	"github.com/unikorn-cloud/contactlist/pkg/openapi"
)

// UserFixture is a registered user and its current token.
type UserFixture struct {
	User        openapi.User
	Token       string
	Credentials *openapi.Credentials
}

// RegisterUserWithCleanup registers a user and schedules its deletion.
func RegisterUserWithCleanup(ctx context.Context, c *client.Client, builder *UserPayloadBuilder) *UserFixture {
	response, err := c.CreateUser(ctx, builder.Build())
	Expect(err).NotTo(HaveOccurred())
	Expect(response.Token).NotTo(BeEmpty())

	GinkgoWriter.Printf("Registered user with ID: %s\n", response.User.ID)

	fixture := &UserFixture{
		User:        response.User,
		Token:       response.Token,
		Credentials: builder.Credentials(),
	}

	// Runs whether the test passes or fails.  The token may have been
	// revoked by the test, so log in again before deleting.
	DeferCleanup(func(ctx context.Context) {
		GinkgoWriter.Printf("Cleaning up user: %s\n", fixture.User.ID)

		token := fixture.Token

		if _, err := c.GetProfile(ctx, token); err != nil {
			login, err := c.Login(ctx, fixture.Credentials)
			if err != nil {
				GinkgoWriter.Printf("Warning: Failed to log in as user %s: %v\n", fixture.User.ID, err)
				return
			}

			token = login.Token
		}

		if err := c.DeleteProfile(ctx, token); err != nil {
			GinkgoWriter.Printf("Warning: Failed to delete user %s: %v\n", fixture.User.ID, err)
		}
	})

	return fixture
}

// CreateContactWithCleanup creates a contact and schedules its deletion.
// Contacts already deleted by the test, or by their owner's deletion, are
// ignored.
func CreateContactWithCleanup(ctx context.Context, c *client.Client, token string, payload *openapi.ContactWrite) *openapi.Contact {
	contact, err := c.CreateContact(ctx, token, payload)
	Expect(err).NotTo(HaveOccurred())
	Expect(contact.ID).To(HaveLen(24))

	GinkgoWriter.Printf("Created contact with ID: %s\n", contact.ID)

	DeferCleanup(func(ctx context.Context) {
		err := c.DeleteContact(ctx, token, contact.ID)

		var statusErr *client.StatusError

		if errors.As(err, &statusErr) && (statusErr.Actual == http.StatusNotFound || statusErr.Actual == http.StatusUnauthorized) {
			return
		}

		if err != nil {
			GinkgoWriter.Printf("Warning: Failed to delete contact %s: %v\n", contact.ID, err)
		}
	})

	return contact
}

// ExpectStatus asserts the error reports the given unexpected status code.
func ExpectStatus(err error, status int) {
	var statusErr *client.StatusError

	Expect(errors.As(err, &statusErr)).To(BeTrue(), "expected a status error, got %v", err)
	Expect(statusErr.Actual).To(Equal(status), "body: %s", statusErr.Body)
}
