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

// Package gateway is the frontend half of a proxy deployment: it accepts
// inbound client connections speaking either RESP or a Memcached dialect,
// decodes each request, routes it through a dispatch.Dispatcher the same
// way tairclient.Client does on the backend-facing side, and encodes the
// reply back in whichever dialect the connection spoke. It is what gives
// package memcache's decoder a caller outside its own tests.
package gateway

import (
	"net"
	"sync"

	"golang.org/x/net/netutil"

	"github.com/tair-opensource/tair-client-go/dispatch"
	"github.com/tair-opensource/tair-client-go/logger"
)

// Config controls whether the gateway listener runs and how it's bound.
type Config struct {
	Enabled        bool   `config:"enabled"`
	Address        string `config:"address"`
	MaxConnections int    `config:"max_connections"`
	// MaxItemSize caps a stored value's size for Memcached-dialect
	// connections; 0 selects memcache's own default.
	MaxItemSize int `config:"max_item_size"`
}

// Server is the frontend listener. The zero value is not usable;
// construct with New.
type Server struct {
	config     Config
	dispatcher *dispatch.Dispatcher

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
}

// New builds a Server that routes every accepted connection's commands
// through d. It returns a nil Server (no error) when conf.Enabled is
// false, mirroring package admin's New: callers check for a nil *Server
// before calling ListenAndServe.
func New(conf Config, d *dispatch.Dispatcher) *Server {
	if !conf.Enabled {
		return nil
	}
	return &Server{config: conf, dispatcher: d}
}

// ListenAndServe binds conf.Address and accepts connections until the
// listener fails or Close is called.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	if s.config.MaxConnections > 0 {
		l = netutil.LimitListener(l, s.config.MaxConnections)
	}
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()

	logger.Infof("gateway: listening on %s", s.config.Address)
	for {
		nc, err := l.Accept()
		if err != nil {
			return err
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			newFrontendConn(nc, s.dispatcher, s.config.MaxItemSize).run()
		}()
	}
}

// Close closes the listener and waits until every accepted connection has
// ended; it does not close those connections itself.
func (s *Server) Close() error {
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()
	if l == nil {
		return nil
	}
	err := l.Close()
	s.wg.Wait()
	return err
}
