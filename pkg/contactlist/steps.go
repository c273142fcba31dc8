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

// Package contactlist defines the end to end scenario exercising user and
// contact management of the contact list service.
package contactlist

import (
	"net/http"

	"github.com/unikorn-cloud/contactlist/pkg/client"
	"github.com/unikorn-cloud/contactlist/pkg/scenario"
)

const (
	StepAddUser              = "Add User"
	StepGetUserProfile       = "Get User Profile"
	StepUpdateUser           = "Update User"
	StepLoginUser            = "Login User"
	StepAddContact           = "Add Contact"
	StepGetContactList       = "Get Contact List"
	StepGetContactByID       = "Get Contact By ID"
	StepUpdateContact        = "Update Contact"
	StepUpdatePartialContact = "Update Partial Contact"
	StepLogoutUser           = "Logout User"
	StepVerifyTokenRevoked   = "Verify Token Revoked"
)

// Steps returns the scenario.  Login uses the credentials set by the profile
// update, so depends on it, and everything after login runs with the token
// it issues.
func Steps(transport scenario.Transport, fixtures *Fixtures) []scenario.Step {
	endpoints := client.NewEndpoints()

	contact := endpoints.Contacts() + "/" + scenario.ResourceIDPlaceholder

	replacementEmail := ""
	if fixtures.ReplacementContact.Email != nil {
		replacementEmail = string(*fixtures.ReplacementContact.Email)
	}

	partialFirstName := ""
	if fixtures.PartialContact.FirstName != nil {
		partialFirstName = *fixtures.PartialContact.FirstName
	}

	return []scenario.Step{
		{
			Name:  StepAddUser,
			Order: 1,
			Execute: scenario.HTTP(transport, scenario.Request{
				Method:         http.MethodPost,
				Path:           endpoints.CreateUser(),
				Body:           fixtures.User,
				ExpectedStatus: http.StatusCreated,
				CaptureToken:   "token",
				Extract:        []string{"user._id", "user.email"},
				Summary:        "User added successfully, token generated",
			}),
		},
		{
			Name:      StepGetUserProfile,
			Order:     2,
			DependsOn: []string{StepAddUser},
			Execute: scenario.HTTP(transport, scenario.Request{
				Method:         http.MethodGet,
				Path:           endpoints.Profile(),
				Authenticated:  true,
				ExpectedStatus: http.StatusOK,
				Extract:        []string{"email", "firstName"},
				Summary:        "User profile fetched successfully",
			}),
		},
		{
			Name:      StepUpdateUser,
			Order:     3,
			DependsOn: []string{StepAddUser},
			Execute: scenario.HTTP(transport, scenario.Request{
				Method:         http.MethodPatch,
				Path:           endpoints.Profile(),
				Body:           fixtures.UpdatedUser,
				Authenticated:  true,
				ExpectedStatus: http.StatusOK,
				Extract:        []string{"email", "firstName"},
				Summary:        "User updated successfully",
			}),
		},
		{
			Name:      StepLoginUser,
			Order:     4,
			DependsOn: []string{StepUpdateUser},
			Execute: scenario.HTTP(transport, scenario.Request{
				Method:         http.MethodPost,
				Path:           endpoints.Login(),
				Body:           fixtures.Credentials(),
				ExpectedStatus: http.StatusOK,
				CaptureToken:   "token",
				Summary:        "User logged in successfully, new token issued",
			}),
		},
		{
			Name:      StepAddContact,
			Order:     5,
			DependsOn: []string{StepLoginUser},
			Execute: scenario.HTTP(transport, scenario.Request{
				Method:          http.MethodPost,
				Path:            endpoints.Contacts(),
				Body:            fixtures.Contact,
				Authenticated:   true,
				ExpectedStatus:  http.StatusCreated,
				CaptureResource: "_id",
				Summary:         "Contact added successfully",
			}),
		},
		{
			Name:      StepGetContactList,
			Order:     6,
			DependsOn: []string{StepLoginUser},
			Execute: scenario.HTTP(transport, scenario.Request{
				Method:         http.MethodGet,
				Path:           endpoints.Contacts(),
				Authenticated:  true,
				ExpectedStatus: http.StatusOK,
				Extract:        []string{"#"},
				Summary:        "Contact list fetched successfully",
			}),
		},
		{
			Name:      StepGetContactByID,
			Order:     7,
			DependsOn: []string{StepAddContact},
			Execute: scenario.HTTP(transport, scenario.Request{
				Method:         http.MethodGet,
				Path:           contact,
				Authenticated:  true,
				ExpectedStatus: http.StatusOK,
				Extract:        []string{"_id", "firstName"},
				Summary:        "Contact fetched successfully by ID",
			}),
		},
		{
			Name:      StepUpdateContact,
			Order:     8,
			DependsOn: []string{StepAddContact},
			Execute: scenario.HTTP(transport, scenario.Request{
				Method:         http.MethodPut,
				Path:           contact,
				Body:           fixtures.ReplacementContact,
				Authenticated:  true,
				ExpectedStatus: http.StatusOK,
				Expect:         map[string]string{"email": replacementEmail},
				Summary:        "Contact updated successfully",
			}),
		},
		{
			Name:      StepUpdatePartialContact,
			Order:     9,
			DependsOn: []string{StepAddContact},
			Execute: scenario.HTTP(transport, scenario.Request{
				Method:         http.MethodPatch,
				Path:           contact,
				Body:           fixtures.PartialContact,
				Authenticated:  true,
				ExpectedStatus: http.StatusOK,
				Expect:         map[string]string{"firstName": partialFirstName},
				Summary:        "Contact partially updated successfully",
			}),
		},
		{
			Name:      StepLogoutUser,
			Order:     10,
			DependsOn: []string{StepLoginUser},
			Execute: scenario.HTTP(transport, scenario.Request{
				Method:         http.MethodPost,
				Path:           endpoints.Logout(),
				Authenticated:  true,
				ExpectedStatus: http.StatusOK,
				Summary:        "User logged out successfully",
			}),
		},
		{
			Name:      StepVerifyTokenRevoked,
			Order:     11,
			DependsOn: []string{StepLogoutUser},
			Execute: scenario.HTTP(transport, scenario.Request{
				Method:         http.MethodGet,
				Path:           endpoints.Profile(),
				Authenticated:  true,
				ExpectedStatus: http.StatusUnauthorized,
				Summary:        "Logged out token rejected",
			}),
		},
	}
}
