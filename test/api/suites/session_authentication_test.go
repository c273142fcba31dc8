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

	"github.com/unikorn-cloud/contactlist/test/api"
)

var _ = Describe("Session Authentication", func() {
	Context("When making requests without valid authentication", func() {
		DescribeTable("should reject the request with 401 Unauthorized",
			func(method, path, token string) {
				response, err := apiClient.Do(ctx, method, path, token, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusUnauthorized))
				Expect(response.Field("error").String()).To(Equal("Please authenticate."))
			},
			Entry("missing token on profile", http.MethodGet, "/users/me", ""),
			Entry("invalid token on profile", http.MethodGet, "/users/me", "not-a-valid-token"),
			Entry("missing token on contacts", http.MethodGet, "/contacts", ""),
			Entry("missing token on logout", http.MethodPost, "/users/logout", ""),
		)
	})

	Context("When logging in", func() {
		Describe("Given a registered user", func() {
			It("should issue a new token alongside the existing one", func() {
				builder := api.NewUserPayload()
				user := api.RegisterUserWithCleanup(ctx, apiClient, builder)

				login, err := apiClient.Login(ctx, builder.Credentials())
				Expect(err).NotTo(HaveOccurred())
				Expect(login.Token).NotTo(BeEmpty())
				Expect(login.Token).NotTo(Equal(user.Token))

				_, err = apiClient.GetProfile(ctx, login.Token)
				Expect(err).NotTo(HaveOccurred())

				_, err = apiClient.GetProfile(ctx, user.Token)
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})

	Context("When logging out", func() {
		Describe("Given an active session", func() {
			It("should revoke the token", func() {
				builder := api.NewUserPayload()
				api.RegisterUserWithCleanup(ctx, apiClient, builder)

				login, err := apiClient.Login(ctx, builder.Credentials())
				Expect(err).NotTo(HaveOccurred())

				Expect(apiClient.Logout(ctx, login.Token)).To(Succeed())

				_, err = apiClient.GetProfile(ctx, login.Token)
				api.ExpectStatus(err, http.StatusUnauthorized)

				_, err = apiClient.ListContacts(ctx, login.Token)
				api.ExpectStatus(err, http.StatusUnauthorized)
			})
		})

		Describe("Given the token has already been revoked", func() {
			It("should reject a second logout", func() {
				user := api.RegisterUserWithCleanup(ctx, apiClient, api.NewUserPayload())

				Expect(apiClient.Logout(ctx, user.Token)).To(Succeed())

				err := apiClient.Logout(ctx, user.Token)
				api.ExpectStatus(err, http.StatusUnauthorized)
			})
		})
	})
})
