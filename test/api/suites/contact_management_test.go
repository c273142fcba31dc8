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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/contactlist/pkg/openapi"
	"github.com/unikorn-cloud/contactlist/test/api"

	"k8s.io/utils/ptr"
)

var _ = Describe("Contact Management", func() {
	var user *api.UserFixture

	BeforeEach(func() {
		user = api.RegisterUserWithCleanup(ctx, apiClient, api.NewUserPayload())
	})

	Context("When creating a contact", func() {
		Describe("Given a complete payload", func() {
			It("should create the contact", func() {
				payload := api.NewContactPayload().Build()

				contact := api.CreateContactWithCleanup(ctx, apiClient, user.Token, payload)

				Expect(contact.FirstName).To(Equal("John"))
				Expect(contact.LastName).To(Equal("Doe"))
				Expect(contact.Email).To(Equal(payload.Email))
				Expect(contact.Birthdate).NotTo(BeNil())
				Expect(contact.Birthdate.String()).To(Equal("1970-01-01"))
				Expect(contact.Owner).To(Equal(user.User.ID))
			})
		})

		Describe("Given a payload without a name", func() {
			It("should reject the contact", func() {
				_, err := apiClient.CreateContact(ctx, user.Token, api.NewContactPayload().WithoutName().Build())
				api.ExpectStatus(err, http.StatusBadRequest)
			})
		})
	})

	Context("When listing contacts", func() {
		Describe("Given contacts exist", func() {
			It("should return only the caller's contacts", func() {
				first := api.CreateContactWithCleanup(ctx, apiClient, user.Token, api.NewContactPayload().Build())
				second := api.CreateContactWithCleanup(ctx, apiClient, user.Token, api.NewContactPayload().WithName("Jane", "Roe").Build())

				other := api.RegisterUserWithCleanup(ctx, apiClient, api.NewUserPayload())
				api.CreateContactWithCleanup(ctx, apiClient, other.Token, api.NewContactPayload().Build())

				contacts, err := apiClient.ListContacts(ctx, user.Token)
				Expect(err).NotTo(HaveOccurred())

				ids := make([]string, len(contacts))
				for i := range contacts {
					ids[i] = contacts[i].ID
				}

				Expect(ids).To(ConsistOf(first.ID, second.ID))
			})
		})
	})

	Context("When retrieving a contact", func() {
		Describe("Given the contact exists", func() {
			It("should return the contact", func() {
				created := api.CreateContactWithCleanup(ctx, apiClient, user.Token, api.NewContactPayload().Build())

				contact, err := apiClient.GetContact(ctx, user.Token, created.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(contact.ID).To(Equal(created.ID))
				Expect(contact.FirstName).To(Equal(created.FirstName))
			})
		})

		Describe("Given the contact does not exist", func() {
			It("should return a not found error", func() {
				_, err := apiClient.GetContact(ctx, user.Token, "0123456789abcdef01234567")
				api.ExpectStatus(err, http.StatusNotFound)
			})
		})

		Describe("Given a malformed contact ID", func() {
			It("should return a bad request error", func() {
				_, err := apiClient.GetContact(ctx, user.Token, "not-a-contact-id")
				api.ExpectStatus(err, http.StatusBadRequest)
			})
		})
	})

	Context("When updating a contact", func() {
		var created *openapi.Contact

		BeforeEach(func() {
			created = api.CreateContactWithCleanup(ctx, apiClient, user.Token, api.NewContactPayload().Build())
		})

		Describe("Given a full replacement", func() {
			It("should overwrite the contact", func() {
				replacement := api.NewReplacementContactPayload().Build()

				contact, err := apiClient.ReplaceContact(ctx, user.Token, created.ID, replacement)
				Expect(err).NotTo(HaveOccurred())
				Expect(contact.ID).To(Equal(created.ID))
				Expect(contact.FirstName).To(Equal("Amy"))
				Expect(contact.Email).NotTo(BeNil())
				Expect(string(*contact.Email)).To(Equal("amiller@fake.com"))
				Expect(contact.Country).To(Equal("Canada"))
			})
		})

		Describe("Given a partial update", func() {
			It("should change only the supplied fields", func() {
				contact, err := apiClient.UpdateContact(ctx, user.Token, created.ID, &openapi.ContactWrite{
					FirstName: ptr.To("Anna"),
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(contact.FirstName).To(Equal("Anna"))
				Expect(contact.LastName).To(Equal(created.LastName))
				Expect(contact.City).To(Equal(created.City))
			})
		})
	})

	Context("When deleting a contact", func() {
		Describe("Given the contact exists", func() {
			It("should remove the contact", func() {
				created := api.CreateContactWithCleanup(ctx, apiClient, user.Token, api.NewContactPayload().Build())

				Expect(apiClient.DeleteContact(ctx, user.Token, created.ID)).To(Succeed())

				_, err := apiClient.GetContact(ctx, user.Token, created.ID)
				api.ExpectStatus(err, http.StatusNotFound)
			})
		})
	})
})
