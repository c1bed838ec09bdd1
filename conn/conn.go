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

// Package conn defines the minimal I/O trait the dispatcher and cluster
// table are built against, plus a TCP-backed implementation. The core
// never opens a socket itself outside of this package: every other
// package depends only on the Connection interface.
package conn

// Connection is the I/O trait required from the host. Implementations
// deliver inbound bytes to the callback registered via RegisterOnBytes
// from whatever goroutine owns the socket; callers of Send must not
// assume it is safe to call concurrently with itself.
type Connection interface {
	// Send writes b to the connection. It does not block on the remote
	// end acknowledging anything; it only blocks on the local write
	// buffer accepting the bytes.
	Send(b []byte) error

	// RegisterOnBytes installs the callback invoked with each chunk of
	// bytes read off the wire. Only one callback may be registered;
	// installing a second replaces the first.
	RegisterOnBytes(fn func([]byte))

	// OnDisconnect installs the callback invoked exactly once when the
	// connection is closed, whether by the peer, by Close, or by an I/O
	// error.
	OnDisconnect(fn func(err error))

	// Close closes the connection. It is safe to call more than once.
	Close() error

	// Addr returns the remote host:port this connection was dialed to.
	Addr() string
}
