// Copyright 2026 The tair-client-go Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package admin is a small read-only HTTP surface over the cluster's
// live state: /debug/slots dumps slot ownership, /metrics exposes the
// client's prometheus collectors. It is a debugging aid, not part of
// the dispatcher's public contract.
package admin

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/netutil"

	"github.com/tair-opensource/tair-client-go/cluster"
	"github.com/tair-opensource/tair-client-go/logger"
)

// Config controls whether the admin server runs and how it's bound.
type Config struct {
	Enabled        bool          `config:"enabled"`
	Address        string        `config:"address"`
	MaxConnections int           `config:"max_connections"`
	Timeout        time.Duration `config:"timeout"`
}

// Server exposes the admin HTTP surface over a cluster.Table. The zero
// value is not usable; construct with New.
type Server struct {
	config Config
	table  *cluster.Table
	router *mux.Router
	server *http.Server
}

// New builds a Server bound to table. It returns a nil Server (no error)
// when conf.Enabled is false: callers check for a nil *Server before
// calling ListenAndServe.
func New(conf Config, table *cluster.Table) *Server {
	if !conf.Enabled {
		return nil
	}
	router := mux.NewRouter()
	s := &Server{
		config: conf,
		table:  table,
		router: router,
		server: &http.Server{
			Handler:      router,
			ReadTimeout:  conf.Timeout,
			WriteTimeout: conf.Timeout,
		},
	}
	s.router.Methods(http.MethodGet).Path("/debug/slots").HandlerFunc(s.routeSlots)
	s.router.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.Handler())
	return s
}

// ListenAndServe binds conf.Address and serves until the listener fails
// or is closed. A non-positive MaxConnections leaves the listener
// unbounded.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	if s.config.MaxConnections > 0 {
		l = netutil.LimitListener(l, s.config.MaxConnections)
	}
	logger.Infof("admin: listening on %s", s.config.Address)
	return s.server.Serve(l)
}

// Close shuts the admin server down.
func (s *Server) Close() error {
	return s.server.Close()
}
