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

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/contactlist/pkg/client"
	"github.com/unikorn-cloud/contactlist/pkg/constants"
	"github.com/unikorn-cloud/contactlist/pkg/contactlist"
	"github.com/unikorn-cloud/contactlist/pkg/report"
	"github.com/unikorn-cloud/contactlist/pkg/scenario"
	"github.com/unikorn-cloud/core/pkg/options"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"

	// Report bucket schemes accepted by --report-bucket-url.
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

const (
	exitPassed = 0
	exitFailed = 1
	exitSetup  = 2
)

// baseURLEnv overrides the default base URL, typically from a .env file.
const baseURLEnv = "API_BASE_URL"

func main() {
	os.Exit(run(cr.SetupSignalHandler(), pflag.CommandLine, os.Args[1:]))
}

// run executes the scenario once and returns the process exit code: 0 when
// every step passed, 1 when any step failed or was skipped or the report
// could not be written, and 2 when the run could not be set up.
//
//nolint:cyclop
func run(ctx context.Context, flags *pflag.FlagSet, args []string) int {
	var (
		coreOptions   options.CoreOptions
		clientOptions client.Options
		reportOptions report.Options
		uniqueEmails  bool
	)

	coreOptions.AddFlags(flags)
	clientOptions.AddFlags(flags)
	reportOptions.AddFlags(flags)

	flags.BoolVar(&uniqueEmails, "unique-emails", false, "Add a random suffix to account e-mail addresses so reruns against a shared service do not collide.")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitPassed
		}

		fmt.Println(err)

		return exitSetup
	}

	coreOptions.SetupLogging()

	logger := log.Log.WithName("init")
	logger.Info("scenario starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error(err, "failed to load .env")
		return exitSetup
	}

	if value, ok := os.LookupEnv(baseURLEnv); ok && value != "" && !flags.Changed("base-url") {
		clientOptions.BaseURL = value
	}

	ctx = log.IntoContext(ctx, log.Log.WithName("scenario"))

	bucket, err := reportOptions.OpenBucket(ctx)
	if err != nil {
		logger.Error(err, "failed to open report bucket")
		return exitSetup
	}

	defer func() {
		if err := bucket.Close(); err != nil {
			logger.Error(err, "failed to close report bucket")
		}
	}()

	fixtures := contactlist.DefaultFixtures()

	if uniqueEmails {
		fixtures = fixtures.Unique(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	}

	sink := report.Multi{
		report.NewHTML(bucket, &reportOptions),
		report.NewLog(),
	}

	summary, err := scenario.NewRunner(sink).Run(ctx, contactlist.Steps(client.New(&clientOptions), fixtures))
	if err != nil {
		logger.Error(err, "scenario did not complete cleanly")

		if summary == nil {
			return exitSetup
		}

		return exitFailed
	}

	logger.Info("scenario complete", "passed", summary.Passes, "failed", summary.Failures, "skipped", summary.Skips)

	if summary.Failed() {
		return exitFailed
	}

	return exitPassed
}
