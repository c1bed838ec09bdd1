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

package conn

import (
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/internal/buffer"
	"github.com/tair-opensource/tair-client-go/logger"
	"github.com/tair-opensource/tair-client-go/resp"
)

// ErrConnectFailed is returned by Dial when the TCP handshake fails or the
// optional AUTH command cannot be written; the AUTH reply is not awaited.
var ErrConnectFailed = errors.New("connect-failed")

// Options configures a single TCP connection. It mirrors the subset of
// the client's configuration surface that applies per-connection.
type Options struct {
	Addr                string
	User                string
	Password            string
	ConnectingTimeoutMs int
	KeepAliveSeconds    int
}

// TCPConnection is a Connection backed by a net.TCPConn, with a
// background goroutine pumping inbound bytes to the registered callback.
type TCPConnection struct {
	addr string
	nc   net.Conn

	mu           sync.Mutex
	onBytes      func([]byte)
	onDisconnect func(error)
	closeOnce    sync.Once
	failOnce     sync.Once
}

// Dial opens a TCP connection per opt, performs AUTH if credentials are
// configured, and starts the read pump. The AUTH command is written
// before the connection is handed back so a caller never races it.
func Dial(opt Options) (*TCPConnection, error) {
	timeout := time.Duration(opt.ConnectingTimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 2000 * time.Millisecond
	}
	nc, err := net.DialTimeout("tcp", opt.Addr, timeout)
	if err != nil {
		return nil, errors.Wrap(ErrConnectFailed, err.Error())
	}
	if tc, ok := nc.(*net.TCPConn); ok {
		tc.SetKeepAlive(true)
		keepAlive := opt.KeepAliveSeconds
		if keepAlive <= 0 {
			keepAlive = 60
		}
		tc.SetKeepAlivePeriod(time.Duration(keepAlive) * time.Second)
	}

	c := &TCPConnection{addr: opt.Addr, nc: nc}

	if opt.Password != "" {
		var argv command.Argv
		if opt.User != "" {
			argv = command.New("AUTH", opt.User, opt.Password)
		} else {
			argv = command.New("AUTH", opt.Password)
		}
		if err := c.Send(encodeArgv(argv)); err != nil {
			nc.Close()
			return nil, errors.Wrap(ErrConnectFailed, err.Error())
		}
	}

	go c.readLoop()
	return c, nil
}

func encodeArgv(argv command.Argv) []byte {
	b := buffer.New(resp.EncodedSizeArgv(argv))
	resp.EncodeArgv(b, argv)
	return b.NextAll()
}

func (c *TCPConnection) Send(b []byte) error {
	_, err := c.nc.Write(b)
	if err != nil {
		c.fail(err)
	}
	return err
}

func (c *TCPConnection) RegisterOnBytes(fn func([]byte)) {
	c.mu.Lock()
	c.onBytes = fn
	c.mu.Unlock()
}

func (c *TCPConnection) OnDisconnect(fn func(err error)) {
	c.mu.Lock()
	c.onDisconnect = fn
	c.mu.Unlock()
}

func (c *TCPConnection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.nc.Close()
	})
	return err
}

func (c *TCPConnection) Addr() string {
	return c.addr
}

func (c *TCPConnection) readLoop() {
	buf := make([]byte, 64*1024)
	for {
		n, err := c.nc.Read(buf)
		if n > 0 {
			c.mu.Lock()
			cb := c.onBytes
			c.mu.Unlock()
			if cb != nil {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				cb(chunk)
			}
		}
		if err != nil {
			c.fail(err)
			return
		}
	}
}

func (c *TCPConnection) fail(err error) {
	c.failOnce.Do(func() {
		c.Close()
		c.mu.Lock()
		cb := c.onDisconnect
		c.mu.Unlock()
		if cb != nil {
			cb(err)
		}
		logger.Warnf("conn: %s disconnected: %v", c.addr, err)
	})
}
