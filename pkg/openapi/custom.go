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
	"errors"
	"regexp"
)

var ErrInvalidContactID = errors.New("invalid contact ID: must consist of 24 hexadecimal characters")

var contactIDValidationRegex = regexp.MustCompile("^[0-9a-f]{24}$")

// ContactID is a validated contact identifier, as allocated by the service.
type ContactID struct {
	Value string
}

func (n *ContactID) UnmarshalText(text []byte) error {
	if !contactIDValidationRegex.Match(text) {
		return ErrInvalidContactID
	}

	*n = ContactID{
		Value: string(text),
	}

	return nil
}

func (n ContactID) String() string {
	return n.Value
}
