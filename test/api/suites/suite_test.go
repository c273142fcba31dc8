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
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/contactlist/pkg/client"
	"github.com/unikorn-cloud/contactlist/pkg/server"
	"github.com/unikorn-cloud/contactlist/test/api"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

var (
	apiClient *client.Client
	ctx       context.Context
	config    *api.TestConfig
	baseURL   string
)

var _ = BeforeSuite(func() {
	var err error

	config, err = api.LoadTestConfig()
	Expect(err).NotTo(HaveOccurred())

	baseURL = config.BaseURL

	if baseURL == "" {
		handler, err := server.NewHandler()
		Expect(err).NotTo(HaveOccurred())

		fake := httptest.NewServer(handler.Routes())
		DeferCleanup(fake.Close)

		baseURL = fake.URL

		GinkgoWriter.Printf("API_BASE_URL not set, using in-process fake at %s\n", baseURL)
	}
})

var _ = BeforeEach(func() {
	apiClient = client.New(config.ClientOptions(baseURL))

	var cancel context.CancelFunc

	ctx, cancel = context.WithTimeout(context.Background(), config.TestTimeout)
	DeferCleanup(cancel)

	if config.DebugLogging {
		ctx = log.IntoContext(ctx, GinkgoLogr)
	}
})

func TestSuites(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Test Suites")
}
