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
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/memblob"

	"github.com/unikorn-cloud/contactlist/pkg/constants"
	"github.com/unikorn-cloud/contactlist/pkg/contactlist"
	"github.com/unikorn-cloud/contactlist/pkg/openapi"
	"github.com/unikorn-cloud/contactlist/pkg/report"
	"github.com/unikorn-cloud/contactlist/pkg/scenario"
	"github.com/unikorn-cloud/contactlist/test/api"
)

var _ = Describe("Contact List Scenario", func() {
	Context("When running the full scenario", func() {
		Describe("Given fresh account credentials", func() {
			var (
				bucket   *blob.Bucket
				fixtures *contactlist.Fixtures
				options  *report.Options
			)

			BeforeEach(func() {
				var err error

				bucket, err = blob.OpenBucket(ctx, "mem://")
				Expect(err).NotTo(HaveOccurred())

				DeferCleanup(bucket.Close)

				fixtures = contactlist.DefaultFixtures().Unique(api.GenerateRandomName())

				options = &report.Options{
					Name:          constants.DefaultReportName,
					DocumentTitle: constants.DefaultDocumentTitle,
					ReportTitle:   constants.DefaultReportTitle,
				}

				// The scenario logs out, so clean up with the final credentials.
				DeferCleanup(func(ctx context.Context) {
					credentials := fixtures.Credentials()

					login, err := apiClient.Login(ctx, &credentials)
					if err != nil {
						GinkgoWriter.Printf("Warning: Failed to log in as scenario user: %v\n", err)
						return
					}

					if err := apiClient.DeleteProfile(ctx, login.Token); err != nil {
						GinkgoWriter.Printf("Warning: Failed to delete scenario user: %v\n", err)
					}
				})
			})

			It("should pass every step and write the report", func() {
				sink := report.Multi{
					report.NewHTML(bucket, options),
					report.NewLog(),
				}

				summary, err := scenario.NewRunner(sink).Run(ctx, contactlist.Steps(apiClient, fixtures))
				Expect(err).NotTo(HaveOccurred())

				for _, outcome := range summary.Outcomes {
					Expect(outcome.Result.Passed()).To(BeTrue(), "%s: %s", outcome.Name, outcome.Result.Message)
				}

				Expect(summary.Outcomes).To(HaveLen(11))
				Expect(summary.Failed()).To(BeFalse())

				created, ok := summary.Outcome(contactlist.StepAddContact)
				Expect(ok).To(BeTrue())
				Expect(created.Result.Fields).To(HaveKey("_id"))

				var id openapi.ContactID

				Expect(id.UnmarshalText([]byte(created.Result.Fields["_id"]))).To(Succeed())

				data, err := bucket.ReadAll(ctx, constants.DefaultReportName)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(ContainSubstring(constants.DefaultDocumentTitle))
				Expect(string(data)).To(ContainSubstring(constants.DefaultReportTitle))

				for _, outcome := range summary.Outcomes {
					Expect(string(data)).To(ContainSubstring(outcome.Name))
				}
			})
		})
	})
})
