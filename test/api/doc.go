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

// Package api provides integration test utilities for the contact list API.
//
// Suites use the same client as the scenario runner, so the typed helpers in
// pkg/client are exercised against every target the suites run against.
// When API_BASE_URL is unset the suites start the in-process fake from
// pkg/server, otherwise they run against the live service.
//
// The client provides:
//   - W3C trace context propagation for request correlation
//   - Error logging with trace IDs for debugging
//   - Direct access to HTTP status codes and response bodies
//
// Builders generate unique e-mail addresses, and fixtures schedule cleanup
// with DeferCleanup, so suites can run repeatedly against a shared service.
package api
