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

package constants

import (
	"fmt"
	"os"
	"path"
)

var (
	// Application is the application name.
	//nolint:gochecknoglobals
	Application = path.Base(os.Args[0])

	// Version is the application version set via the Makefile.
	//nolint:gochecknoglobals
	Version string

	// Revision is the git revision set via the Makefile.
	//nolint:gochecknoglobals
	Revision string
)

// VersionString returns a canonical version string, suitable for use
// as an HTTP User-Agent.
func VersionString() string {
	return fmt.Sprintf("%s/%s (revision/%s)", Application, Version, Revision)
}

const (
	// DefaultBaseURL is the public deployment of the contact list service.
	DefaultBaseURL = "https://thinking-tester-contact-list.herokuapp.com"

	// DefaultReportName is the object key the HTML report is written to.
	DefaultReportName = "ExtentReport.html"

	// DefaultDocumentTitle is the HTML document title of the report.
	DefaultDocumentTitle = "Telecom API Testing"

	// DefaultReportTitle is the heading displayed in the report.
	DefaultReportTitle = "Telecom API Test Cases"
)
