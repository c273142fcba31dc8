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

package contactlist

import (
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/unikorn-cloud/contactlist/pkg/openapi"

	"k8s.io/utils/ptr"
)

// Fixtures are the request payloads used by the scenario.
type Fixtures struct {
	// User registers the account.
	User openapi.UserCreate
	// UpdatedUser changes every profile field, including the credentials.
	UpdatedUser openapi.UserUpdate
	// Contact is created once logged in.
	Contact openapi.ContactWrite
	// ReplacementContact overwrites the contact.
	ReplacementContact openapi.ContactWrite
	// PartialContact changes only the first name.
	PartialContact openapi.ContactWrite
}

func email(s string) *openapi_types.Email {
	return ptr.To(openapi_types.Email(s))
}

func date(year int, month time.Month, day int) *openapi_types.Date {
	return &openapi_types.Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DefaultFixtures returns the canonical payloads.  Against a shared live
// service these collide with previous runs, see Unique.
func DefaultFixtures() *Fixtures {
	return &Fixtures{
		User: openapi.UserCreate{
			FirstName: "Test",
			LastName:  "User",
			Email:     "telecom_user_test@gmail.com",
			Password:  "myPassword",
		},
		UpdatedUser: openapi.UserUpdate{
			FirstName: ptr.To("Updated"),
			LastName:  ptr.To("Username"),
			Email:     email("telecom_updated_user@gmail.com"),
			Password:  ptr.To("myNewPassword"),
		},
		Contact: openapi.ContactWrite{
			FirstName:     ptr.To("John"),
			LastName:      ptr.To("Doe"),
			Birthdate:     date(1970, time.January, 1),
			Email:         email("jdoe@fake.com"),
			Phone:         ptr.To("8005555555"),
			Street1:       ptr.To("1 Main St."),
			Street2:       ptr.To("Apartment A"),
			City:          ptr.To("Anytown"),
			StateProvince: ptr.To("KS"),
			PostalCode:    ptr.To("12345"),
			Country:       ptr.To("USA"),
		},
		ReplacementContact: openapi.ContactWrite{
			FirstName:     ptr.To("Amy"),
			LastName:      ptr.To("Miller"),
			Birthdate:     date(1992, time.February, 2),
			Email:         email("amiller@fake.com"),
			Phone:         ptr.To("8005554242"),
			Street1:       ptr.To("13 School St."),
			Street2:       ptr.To("Apt. 5"),
			City:          ptr.To("Washington"),
			StateProvince: ptr.To("QC"),
			PostalCode:    ptr.To("A1A1A1"),
			Country:       ptr.To("Canada"),
		},
		PartialContact: openapi.ContactWrite{
			FirstName: ptr.To("Anna"),
		},
	}
}

// uniqueEmail inserts the suffix before the domain of an address.
func uniqueEmail(address, suffix string) string {
	local, domain, ok := strings.Cut(address, "@")
	if !ok {
		return address + "_" + suffix
	}

	return local + "_" + suffix + "@" + domain
}

// Unique returns a copy of the fixtures whose account e-mail addresses carry
// the suffix, so runs against a shared service do not collide.
func (f *Fixtures) Unique(suffix string) *Fixtures {
	out := *f

	out.User.Email = openapi_types.Email(uniqueEmail(string(f.User.Email), suffix))

	if f.UpdatedUser.Email != nil {
		out.UpdatedUser.Email = email(uniqueEmail(string(*f.UpdatedUser.Email), suffix))
	}

	return &out
}

// Credentials are those in effect once the profile has been updated.
func (f *Fixtures) Credentials() openapi.Credentials {
	credentials := openapi.Credentials{
		Email:    f.User.Email,
		Password: f.User.Password,
	}

	if f.UpdatedUser.Email != nil {
		credentials.Email = *f.UpdatedUser.Email
	}

	if f.UpdatedUser.Password != nil {
		credentials.Password = *f.UpdatedUser.Password
	}

	return credentials
}
