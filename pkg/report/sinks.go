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
	"context"
	"errors"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Log writes every entry to the context logger.
type Log struct{}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Record(ctx context.Context, entry Entry) error {
	log := log.FromContext(ctx)

	values := []any{"step", entry.Name, "status", entry.Status, "message", entry.Message, "duration", entry.Duration}

	for key, value := range entry.Fields {
		values = append(values, key, value)
	}

	log.Info("step complete", values...)

	return nil
}

func (l *Log) Finalize(_ context.Context) error {
	return nil
}

// Multi fans entries out to every sink.
type Multi []Sink

func (m Multi) Record(ctx context.Context, entry Entry) error {
	var errs []error

	for _, sink := range m {
		if err := sink.Record(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Finalize finalizes every sink, even when earlier ones fail.
func (m Multi) Finalize(ctx context.Context) error {
	var errs []error

	for _, sink := range m {
		if err := sink.Finalize(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
