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

package api

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/unikorn-cloud/contactlist/pkg/client"
)

var ErrInvalidConfig = errors.New("invalid test configuration")

type TestConfig struct {
	// BaseURL of the service under test, when empty the suites start an
	// in-process fake.
	BaseURL        string
	RequestTimeout time.Duration
	TestTimeout    time.Duration
	DebugLogging   bool
	LogRequests    bool
	LogResponses   bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:        os.Getenv("API_BASE_URL"),
		RequestTimeout: getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:    getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute),
		DebugLogging:   getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:    getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:   getBoolWithDefault("LOG_RESPONSES", false),
	}

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ClientOptions returns options for a client pointed at the given base URL.
func (c *TestConfig) ClientOptions(baseURL string) *client.Options {
	return &client.Options{
		BaseURL:        baseURL,
		RequestTimeout: c.RequestTimeout,
		LogRequests:    c.LogRequests,
		LogResponses:   c.LogResponses,
	}
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../.env", // From test/api/suites directory
		"../.env",    // From test/api directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// Not an error, CI sets the environment directly.
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

func validate(config *TestConfig) error {
	if config.BaseURL != "" {
		u, err := url.Parse(config.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: API_BASE_URL %q is not an absolute URL", ErrInvalidConfig, config.BaseURL)
		}
	}

	if config.RequestTimeout <= 0 || config.TestTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}

	return nil
}
