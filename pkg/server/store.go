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
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/unikorn-cloud/contactlist/pkg/openapi"
)

var (
	ErrEmailInUse = errors.New("email address is already in use")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNotFound = errors.New("resource not found")
)

// account is a user along with its secret.
type account struct {
	user     openapi.User
	password string
}

// store is the in-memory state of the fake service.  All methods are safe
// for concurrent use.
type store struct {
	lock sync.Mutex

	// accounts is keyed by user ID.
	accounts map[string]*account

	// tokens maps a bearer token to the owning user ID.
	tokens map[string]string

	// contacts is keyed by contact ID.
	contacts map[string]*openapi.Contact

	// order remembers contact creation order so listings are stable.
	order []string
}

func newStore() *store {
	return &store{
		accounts: map[string]*account{},
		tokens:   map[string]string{},
		contacts: map[string]*openapi.Contact{},
	}
}

// newObjectID returns a 24 character lower case hex identifier, the same
// shape as the identifiers allocated by the real service.
func newObjectID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

func sameEmail(a, b openapi.User) bool {
	return strings.EqualFold(string(a.Email), string(b.Email))
}

// emailInUse must be called with the lock held.
func (s *store) emailInUse(user openapi.User) bool {
	for _, a := range s.accounts {
		if a.user.ID != user.ID && sameEmail(a.user, user) {
			return true
		}
	}

	return false
}

// issueToken must be called with the lock held.
func (s *store) issueToken(userID string) string {
	token := uuid.NewString()
	s.tokens[token] = userID

	return token
}

func (s *store) register(user openapi.User, password string) (*openapi.User, string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	user.ID = newObjectID()

	if s.emailInUse(user) {
		return nil, "", ErrEmailInUse
	}

	s.accounts[user.ID] = &account{
		user:     user,
		password: password,
	}

	return &user, s.issueToken(user.ID), nil
}

func (s *store) login(email, password string) (*openapi.User, string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, a := range s.accounts {
		if strings.EqualFold(string(a.user.Email), email) && a.password == password {
			user := a.user

			return &user, s.issueToken(user.ID), nil
		}
	}

	return nil, "", ErrInvalidCredentials
}

// authenticate returns the user owning the token.
func (s *store) authenticate(token string) (*openapi.User, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	userID, ok := s.tokens[token]
	if !ok {
		return nil, false
	}

	a, ok := s.accounts[userID]
	if !ok {
		return nil, false
	}

	user := a.user

	return &user, true
}

func (s *store) revoke(token string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.tokens, token)
}

func (s *store) updateUser(userID string, update *openapi.UserUpdate) (*openapi.User, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	a, ok := s.accounts[userID]
	if !ok {
		return nil, ErrNotFound
	}

	user := a.user

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}

	if update.LastName != nil {
		user.LastName = *update.LastName
	}

	if update.Email != nil {
		user.Email = *update.Email

		if s.emailInUse(user) {
			return nil, ErrEmailInUse
		}
	}

	if update.Password != nil {
		a.password = *update.Password
	}

	a.user = user

	return &user, nil
}

func (s *store) deleteUser(userID string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.accounts, userID)

	for token, owner := range s.tokens {
		if owner == userID {
			delete(s.tokens, token)
		}
	}

	s.order = slices.DeleteFunc(s.order, func(id string) bool {
		if s.contacts[id].Owner != userID {
			return false
		}

		delete(s.contacts, id)

		return true
	})
}

func (s *store) createContact(contact openapi.Contact) *openapi.Contact {
	s.lock.Lock()
	defer s.lock.Unlock()

	contact.ID = newObjectID()

	s.contacts[contact.ID] = &contact
	s.order = append(s.order, contact.ID)

	out := contact

	return &out
}

func (s *store) listContacts(owner string) []openapi.Contact {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := []openapi.Contact{}

	for _, id := range s.order {
		if contact := s.contacts[id]; contact.Owner == owner {
			out = append(out, *contact)
		}
	}

	return out
}

// lookup must be called with the lock held.
func (s *store) lookup(owner, id string) (*openapi.Contact, error) {
	contact, ok := s.contacts[id]
	if !ok || contact.Owner != owner {
		return nil, ErrNotFound
	}

	return contact, nil
}

func (s *store) getContact(owner, id string) (*openapi.Contact, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	contact, err := s.lookup(owner, id)
	if err != nil {
		return nil, err
	}

	out := *contact

	return &out, nil
}

// mutateContact applies the mutation to the stored contact and bumps its
// version.
func (s *store) mutateContact(owner, id string, mutate func(*openapi.Contact)) (*openapi.Contact, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	contact, err := s.lookup(owner, id)
	if err != nil {
		return nil, err
	}

	mutate(contact)

	contact.Version++

	out := *contact

	return &out, nil
}

func (s *store) deleteContact(owner, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, err := s.lookup(owner, id); err != nil {
		return err
	}

	delete(s.contacts, id)

	s.order = slices.DeleteFunc(s.order, func(x string) bool {
		return x == id
	})

	return nil
}
