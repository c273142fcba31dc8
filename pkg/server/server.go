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
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/core/pkg/options"
	"github.com/unikorn-cloud/core/pkg/server/middleware/timeout"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

type Options struct {
	// ServerOptions are common across all servers.
	ServerOptions options.ServerOptions

	// ShutdownTimeout bounds how long in-flight requests may take to drain.
	ShutdownTimeout time.Duration
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	o.ServerOptions.AddFlags(f)

	f.DurationVar(&o.ShutdownTimeout, "server-shutdown-timeout", 5*time.Second, "How long to wait for in-flight requests on shutdown.")
}

// Server serves the fake contact list service until its context is cancelled.
type Server struct {
	Options Options
}

func (s *Server) Run(ctx context.Context) error {
	log := log.FromContext(ctx)

	handler, err := NewHandler()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              s.Options.ServerOptions.ListenAddress,
		ReadTimeout:       s.Options.ServerOptions.ReadTimeout,
		ReadHeaderTimeout: s.Options.ServerOptions.ReadHeaderTimeout,
		WriteTimeout:      s.Options.ServerOptions.WriteTimeout,
		Handler:           timeout.Middleware(s.Options.ServerOptions.RequestTimeout)(handler.Routes()),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errs := make(chan error, 1)

	go func() {
		log.Info("listening", "address", s.Options.ServerOptions.ListenAddress)

		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		// Failed to start, e.g. the address is in use.
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.Options.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
