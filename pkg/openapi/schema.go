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

package openapi

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed contactlist.yaml
var schemaData []byte

//nolint:gochecknoglobals
var loadSchema = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(schemaData)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validating schema: %w", err)
	}

	return doc, nil
})

// Schema returns the parsed and validated OpenAPI document for the contact
// list service.  The document is shared, callers must not modify it.
func Schema() (*openapi3.T, error) {
	return loadSchema()
}
