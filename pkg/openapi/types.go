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
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// UserCreate is the payload used to register a new user.
type UserCreate struct {
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	Email     openapi_types.Email `json:"email"`
	Password  string              `json:"password"`
}

// UserUpdate carries the profile fields to change, absent fields are left untouched.
type UserUpdate struct {
	FirstName *string              `json:"firstName,omitempty"`
	LastName  *string              `json:"lastName,omitempty"`
	Email     *openapi_types.Email `json:"email,omitempty"`
	Password  *string              `json:"password,omitempty"`
}

// Credentials are exchanged for an authentication token.
type Credentials struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

// User is a user profile as returned by the service.
type User struct {
	ID        string              `json:"_id"`
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	Email     openapi_types.Email `json:"email"`
	Version   int                 `json:"__v,omitempty"`
}

// AuthResponse is returned on registration and login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ContactWrite is used for contact creation, replacement and partial update.
type ContactWrite struct {
	FirstName     *string              `json:"firstName,omitempty"`
	LastName      *string              `json:"lastName,omitempty"`
	Birthdate     *openapi_types.Date  `json:"birthdate,omitempty"`
	Email         *openapi_types.Email `json:"email,omitempty"`
	Phone         *string              `json:"phone,omitempty"`
	Street1       *string              `json:"street1,omitempty"`
	Street2       *string              `json:"street2,omitempty"`
	City          *string              `json:"city,omitempty"`
	StateProvince *string              `json:"stateProvince,omitempty"`
	PostalCode    *string              `json:"postalCode,omitempty"`
	Country       *string              `json:"country,omitempty"`
}

// Contact is a contact as returned by the service.
type Contact struct {
	ID            string               `json:"_id"`
	FirstName     string               `json:"firstName"`
	LastName      string               `json:"lastName"`
	Birthdate     *openapi_types.Date  `json:"birthdate,omitempty"`
	Email         *openapi_types.Email `json:"email,omitempty"`
	Phone         string               `json:"phone,omitempty"`
	Street1       string               `json:"street1,omitempty"`
	Street2       string               `json:"street2,omitempty"`
	City          string               `json:"city,omitempty"`
	StateProvince string               `json:"stateProvince,omitempty"`
	PostalCode    string               `json:"postalCode,omitempty"`
	Country       string               `json:"country,omitempty"`
	Owner         string               `json:"owner"`
	Version       int                  `json:"__v,omitempty"`
}

// ErrorResponse is the error body of the service.  Validation errors use
// message, authentication failures use error.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
