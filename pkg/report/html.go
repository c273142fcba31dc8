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

package report

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	"github.com/unikorn-cloud/contactlist/pkg/constants"
)

var ErrFinalized = errors.New("report already finalized")

//go:embed report.html.tmpl
var htmlTemplateData string

//nolint:gochecknoglobals
var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc": func(i int) int {
		return i + 1
	},
	"duration": func(d time.Duration) string {
		return d.Round(time.Millisecond).String()
	},
}).Parse(htmlTemplateData))

// Options control where the HTML report is written and how it is titled.
type Options struct {
	// Directory is a local directory the report is written to.
	Directory string

	// BucketURL, when set, overrides Directory with any bucket URL
	// understood by gocloud.dev e.g. file:///tmp/reports or mem://.
	BucketURL string

	// Name is the object key of the report within the bucket.
	Name string

	// DocumentTitle is the HTML document title.
	DocumentTitle string

	// ReportTitle is the heading at the top of the report.
	ReportTitle string
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Directory, "report-dir", ".", "Directory to write the HTML report to.")
	f.StringVar(&o.BucketURL, "report-bucket-url", "", "Bucket URL to write the HTML report to, overrides --report-dir.")
	f.StringVar(&o.Name, "report-name", constants.DefaultReportName, "Name of the HTML report.")
	f.StringVar(&o.DocumentTitle, "report-document-title", constants.DefaultDocumentTitle, "HTML document title of the report.")
	f.StringVar(&o.ReportTitle, "report-title", constants.DefaultReportTitle, "Heading of the report.")
}

// OpenBucket opens the bucket the report is written to, creating the local
// directory if required.  The caller owns the bucket and must close it.
func (o *Options) OpenBucket(ctx context.Context) (*blob.Bucket, error) {
	if o.BucketURL != "" {
		bucket, err := blob.OpenBucket(ctx, o.BucketURL)
		if err != nil {
			return nil, fmt.Errorf("opening report bucket %s: %w", o.BucketURL, err)
		}

		return bucket, nil
	}

	directory, err := filepath.Abs(o.Directory)
	if err != nil {
		return nil, fmt.Errorf("resolving report directory: %w", err)
	}

	bucket, err := fileblob.OpenBucket(directory, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, fmt.Errorf("opening report directory %s: %w", directory, err)
	}

	return bucket, nil
}

// HTML accumulates entries and renders a single HTML document into a
// bucket when finalized.
type HTML struct {
	lock sync.Mutex

	bucket        *blob.Bucket
	name          string
	documentTitle string
	reportTitle   string

	entries   []Entry
	finalized bool

	// now is replaceable for tests.
	now func() time.Time
}

// NewHTML returns an HTML sink writing to the given bucket.
func NewHTML(bucket *blob.Bucket, options *Options) *HTML {
	return &HTML{
		bucket:        bucket,
		name:          options.Name,
		documentTitle: options.DocumentTitle,
		reportTitle:   options.ReportTitle,
		now:           time.Now,
	}
}

func (h *HTML) Record(_ context.Context, entry Entry) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.finalized {
		return fmt.Errorf("%w: recording %s", ErrFinalized, entry.Name)
	}

	h.entries = append(h.entries, entry)

	return nil
}

type htmlData struct {
	DocumentTitle string
	ReportTitle   string
	Generated     time.Time
	Entries       []Entry
	Total         int
	Passed        int
	Failed        int
	Skipped       int
}

// Render returns the report as it would be written at this instant.
func (h *HTML) Render() ([]byte, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	return h.render()
}

func (h *HTML) render() ([]byte, error) {
	data := &htmlData{
		DocumentTitle: h.documentTitle,
		ReportTitle:   h.reportTitle,
		Generated:     h.now(),
		Entries:       h.entries,
		Total:         len(h.entries),
	}

	for i := range h.entries {
		switch h.entries[i].Status {
		case StatusPassed:
			data.Passed++
		case StatusFailed:
			data.Failed++
		case StatusSkipped:
			data.Skipped++
		}
	}

	var buffer bytes.Buffer

	if err := htmlTemplate.Execute(&buffer, data); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	return buffer.Bytes(), nil
}

// Finalize writes the report.  Once written subsequent calls do nothing,
// after a failed write the next call tries again.
func (h *HTML) Finalize(ctx context.Context) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.finalized {
		return nil
	}

	data, err := h.render()
	if err != nil {
		return err
	}

	options := &blob.WriterOptions{
		ContentType: "text/html; charset=utf-8",
	}

	if err := h.bucket.WriteAll(ctx, h.name, data, options); err != nil {
		return fmt.Errorf("writing report %s: %w", h.name, err)
	}

	h.finalized = true

	return nil
}
