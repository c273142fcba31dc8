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

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/unikorn-cloud/contactlist/pkg/openapi"
	"github.com/unikorn-cloud/contactlist/test/api"

	"k8s.io/utils/ptr"
)

var _ = Describe("User Management", func() {
	Context("When registering a new user", func() {
		Describe("Given a valid payload", func() {
			It("should create the user and issue a token", func() {
				builder := api.NewUserPayload()
				user := api.RegisterUserWithCleanup(ctx, apiClient, builder)

				Expect(user.User.ID).NotTo(BeEmpty())
				Expect(user.User.Email).To(Equal(builder.Build().Email))
				Expect(user.User.FirstName).To(Equal("Test"))
				Expect(user.User.LastName).To(Equal("User"))
			})
		})

		Describe("Given an e-mail address already in use", func() {
			It("should reject the registration", func() {
				builder := api.NewUserPayload()
				api.RegisterUserWithCleanup(ctx, apiClient, builder)

				_, err := apiClient.CreateUser(ctx, builder.Build())
				Expect(err).To(HaveOccurred())
				api.ExpectStatus(err, http.StatusBadRequest)
			})
		})

		Describe("Given a payload missing required fields", func() {
			It("should reject the registration", func() {
				response, err := apiClient.Do(ctx, http.MethodPost, apiClient.Endpoints().CreateUser(), "", `{"firstName":"Test"}`)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})
	})

	Context("When reading the profile", func() {
		Describe("Given a registered user", func() {
			It("should return the profile of the token owner", func() {
				user := api.RegisterUserWithCleanup(ctx, apiClient, api.NewUserPayload())

				profile, err := apiClient.GetProfile(ctx, user.Token)
				Expect(err).NotTo(HaveOccurred())
				Expect(profile.ID).To(Equal(user.User.ID))
				Expect(profile.Email).To(Equal(user.User.Email))
			})
		})
	})

	Context("When updating the profile", func() {
		Describe("Given new names and credentials", func() {
			It("should apply the update and accept the new credentials", func() {
				user := api.RegisterUserWithCleanup(ctx, apiClient, api.NewUserPayload())

				email := openapi_types.Email(api.UniqueEmail("testautomation_updated"))

				updated, err := apiClient.UpdateProfile(ctx, user.Token, &openapi.UserUpdate{
					FirstName: ptr.To("Updated"),
					LastName:  ptr.To("Username"),
					Email:     ptr.To(email),
					Password:  ptr.To("myNewPassword"),
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.FirstName).To(Equal("Updated"))
				Expect(updated.LastName).To(Equal("Username"))
				Expect(updated.Email).To(Equal(email))

				// Cleanup must log in with the new credentials.
				user.Credentials = &openapi.Credentials{Email: email, Password: "myNewPassword"}

				_, err = apiClient.Login(ctx, &openapi.Credentials{Email: email, Password: "myPassword"})
				api.ExpectStatus(err, http.StatusUnauthorized)

				login, err := apiClient.Login(ctx, user.Credentials)
				Expect(err).NotTo(HaveOccurred())
				Expect(login.Token).NotTo(BeEmpty())
				Expect(login.User.ID).To(Equal(user.User.ID))
			})
		})

		Describe("Given a partial update", func() {
			It("should leave other fields untouched", func() {
				user := api.RegisterUserWithCleanup(ctx, apiClient, api.NewUserPayload())

				updated, err := apiClient.UpdateProfile(ctx, user.Token, &openapi.UserUpdate{
					LastName: ptr.To("Changed"),
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.FirstName).To(Equal(user.User.FirstName))
				Expect(updated.LastName).To(Equal("Changed"))
				Expect(updated.Email).To(Equal(user.User.Email))
			})
		})
	})

	Context("When logging in", func() {
		Describe("Given the wrong password", func() {
			It("should reject the login", func() {
				builder := api.NewUserPayload()
				api.RegisterUserWithCleanup(ctx, apiClient, builder)

				credentials := builder.Credentials()
				credentials.Password = "wrongPassword"

				_, err := apiClient.Login(ctx, credentials)
				api.ExpectStatus(err, http.StatusUnauthorized)
			})
		})
	})
})
