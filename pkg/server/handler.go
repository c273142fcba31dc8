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

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/unikorn-cloud/contactlist/pkg/openapi"
	"github.com/unikorn-cloud/core/pkg/server/middleware/logging"
	"github.com/unikorn-cloud/core/pkg/server/util"

	"k8s.io/utils/ptr"
)

var errUnknownRoute = errors.New("route not described by schema")

// Message returned by the service for any missing or revoked token.
const unauthenticatedMessage = "Please authenticate."

// Handler implements a fake of the contact list service, good enough to
// drive the scenario and client tests without network access.
type Handler struct {
	// store holds users, tokens and contacts.
	store *store

	// schema is used to validate request bodies and parameters.
	schema *openapi3.T
}

func NewHandler() (*Handler, error) {
	schema, err := openapi.Schema()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		store:  newStore(),
		schema: schema,
	}

	return h, nil
}

// Routes returns an HTTP handler serving every endpoint of the service.
func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(logging.New().Middleware)

	router.Post("/users", h.PostUsers)
	router.Get("/users/me", h.GetUsersMe)
	router.Patch("/users/me", h.PatchUsersMe)
	router.Delete("/users/me", h.DeleteUsersMe)
	router.Post("/users/login", h.PostUsersLogin)
	router.Post("/users/logout", h.PostUsersLogout)
	router.Post("/contacts", h.PostContacts)
	router.Get("/contacts", h.GetContacts)
	router.Get("/contacts/{id}", h.GetContactsID)
	router.Put("/contacts/{id}", h.PutContactsID)
	router.Patch("/contacts/{id}", h.PatchContactsID)
	router.Delete("/contacts/{id}", h.DeleteContactsID)

	return router
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func writeMessage(w http.ResponseWriter, r *http.Request, code int, message string) {
	util.WriteJSONResponse(w, r, code, &openapi.ErrorResponse{Message: message})
}

func writeUnauthenticated(w http.ResponseWriter, r *http.Request) {
	util.WriteJSONResponse(w, r, http.StatusUnauthorized, &openapi.ErrorResponse{Error: unauthenticatedMessage})
}

// validate checks the request against the schema operation registered
// under pattern.  The body is restored afterwards so it may be decoded again.
func (h *Handler) validate(r *http.Request, pattern string, params map[string]string) error {
	pathItem := h.schema.Paths.Value(pattern)
	if pathItem == nil {
		return fmt.Errorf("%w: %s", errUnknownRoute, pattern)
	}

	operation := pathItem.GetOperation(r.Method)
	if operation == nil {
		return fmt.Errorf("%w: %s %s", errUnknownRoute, r.Method, pattern)
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: params,
		Route: &routers.Route{
			Spec:      h.schema,
			Path:      pattern,
			PathItem:  pathItem,
			Method:    r.Method,
			Operation: operation,
		},
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}

	return openapi3filter.ValidateRequest(r.Context(), input)
}

// decode validates then unmarshals the request body.
func (h *Handler) decode(r *http.Request, pattern string, params map[string]string, out any) error {
	if err := h.validate(r, pattern, params); err != nil {
		return err
	}

	return util.ReadJSONBody(r, out)
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}

	return strings.TrimSpace(token)
}

// authenticate resolves the caller, writing a 401 response and returning
// false when the token is missing or revoked.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (*openapi.User, string, bool) {
	token := bearerToken(r)

	user, ok := h.store.authenticate(token)
	if !ok {
		writeUnauthenticated(w, r)
		return nil, "", false
	}

	return user, token, true
}

// contactID parses the path parameter, writing a 400 response when malformed.
func contactID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id openapi.ContactID

	if err := id.UnmarshalText([]byte(chi.URLParam(r, "id"))); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Invalid Contact ID")
		return "", false
	}

	return id.String(), true
}

func (h *Handler) PostUsers(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)

	var request openapi.UserCreate

	if err := h.decode(r, "/users", nil, &request); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "User validation failed: "+err.Error())
		return
	}

	user := openapi.User{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
	}

	created, token, err := h.store.register(user, request.Password)
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Email address is already in use")
		return
	}

	util.WriteJSONResponse(w, r, http.StatusCreated, &openapi.AuthResponse{User: *created, Token: token})
}

func (h *Handler) GetUsersMe(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)

	user, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	util.WriteJSONResponse(w, r, http.StatusOK, user)
}

func (h *Handler) PatchUsersMe(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)

	user, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var request openapi.UserUpdate

	if err := h.decode(r, "/users/me", nil, &request); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "User validation failed: "+err.Error())
		return
	}

	updated, err := h.store.updateUser(user.ID, &request)
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Email address is already in use")
		return
	}

	util.WriteJSONResponse(w, r, http.StatusOK, updated)
}

func (h *Handler) DeleteUsersMe(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)

	user, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	h.store.deleteUser(user.ID)

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) PostUsersLogin(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)

	var request openapi.Credentials

	if err := h.decode(r, "/users/login", nil, &request); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	user, token, err := h.store.login(string(request.Email), request.Password)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	util.WriteJSONResponse(w, r, http.StatusOK, &openapi.AuthResponse{User: *user, Token: token})
}

func (h *Handler) PostUsersLogout(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)

	_, token, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	h.store.revoke(token)

	w.WriteHeader(http.StatusOK)
}

// contactFromRequest builds a contact from a full write request.
func contactFromRequest(owner string, request *openapi.ContactWrite) openapi.Contact {
	return openapi.Contact{
		FirstName:     ptr.Deref(request.FirstName, ""),
		LastName:      ptr.Deref(request.LastName, ""),
		Birthdate:     request.Birthdate,
		Email:         request.Email,
		Phone:         ptr.Deref(request.Phone, ""),
		Street1:       ptr.Deref(request.Street1, ""),
		Street2:       ptr.Deref(request.Street2, ""),
		City:          ptr.Deref(request.City, ""),
		StateProvince: ptr.Deref(request.StateProvince, ""),
		PostalCode:    ptr.Deref(request.PostalCode, ""),
		Country:       ptr.Deref(request.Country, ""),
		Owner:         owner,
	}
}

// mergeContact applies only the fields present in the request.
func mergeContact(contact *openapi.Contact, request *openapi.ContactWrite) {
	merge := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	merge(&contact.FirstName, request.FirstName)
	merge(&contact.LastName, request.LastName)
	merge(&contact.Phone, request.Phone)
	merge(&contact.Street1, request.Street1)
	merge(&contact.Street2, request.Street2)
	merge(&contact.City, request.City)
	merge(&contact.StateProvince, request.StateProvince)
	merge(&contact.PostalCode, request.PostalCode)
	merge(&contact.Country, request.Country)

	if request.Birthdate != nil {
		contact.Birthdate = request.Birthdate
	}

	if request.Email != nil {
		contact.Email = request.Email
	}
}

func (h *Handler) PostContacts(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)

	user, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var request openapi.ContactWrite

	if err := h.decode(r, "/contacts", nil, &request); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Contact validation failed: "+err.Error())
		return
	}

	util.WriteJSONResponse(w, r, http.StatusCreated, h.store.createContact(contactFromRequest(user.ID, &request)))
}

func (h *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)

	user, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	util.WriteJSONResponse(w, r, http.StatusOK, h.store.listContacts(user.ID))
}

func (h *Handler) GetContactsID(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)

	user, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	id, ok := contactID(w, r)
	if !ok {
		return
	}

	contact, err := h.store.getContact(user.ID, id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	util.WriteJSONResponse(w, r, http.StatusOK, contact)
}

// writeContact handles both full and partial contact updates.
func (h *Handler) writeContact(w http.ResponseWriter, r *http.Request, replace bool) {
	h.setUncacheable(w)

	user, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	id, ok := contactID(w, r)
	if !ok {
		return
	}

	var request openapi.ContactWrite

	if err := h.decode(r, "/contacts/{id}", map[string]string{"id": id}, &request); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	mutate := func(contact *openapi.Contact) {
		mergeContact(contact, &request)
	}

	if replace {
		mutate = func(contact *openapi.Contact) {
			replacement := contactFromRequest(contact.Owner, &request)
			replacement.ID = contact.ID
			replacement.Version = contact.Version
			*contact = replacement
		}
	}

	contact, err := h.store.mutateContact(user.ID, id, mutate)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	util.WriteJSONResponse(w, r, http.StatusOK, contact)
}

func (h *Handler) PutContactsID(w http.ResponseWriter, r *http.Request) {
	h.writeContact(w, r, true)
}

func (h *Handler) PatchContactsID(w http.ResponseWriter, r *http.Request) {
	h.writeContact(w, r, false)
}

func (h *Handler) DeleteContactsID(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)

	user, _, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	id, ok := contactID(w, r)
	if !ok {
		return
	}

	if err := h.store.deleteContact(user.ID, id); err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}
