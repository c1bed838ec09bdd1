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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialSendsAuthWithUserAndPassword(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		sc, err := ln.Accept()
		if err != nil {
			return
		}
		defer sc.Close()
		buf := make([]byte, 256)
		n, _ := sc.Read(buf)
		received <- buf[:n]
	}()

	c, err := Dial(Options{Addr: ln.Addr().String(), User: "u", Password: "p", ConnectingTimeoutMs: 500})
	require.NoError(t, err)
	defer c.Close()

	select {
	case b := <-received:
		assert.Equal(t, "*3\r\n$4\r\nAUTH\r\n$1\r\nu\r\n$1\r\np\r\n", string(b))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for AUTH")
	}
}

func TestDialWithoutPasswordSendsNothing(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		sc, err := ln.Accept()
		if err == nil {
			accepted <- sc
		}
	}()

	c, err := Dial(Options{Addr: ln.Addr().String(), ConnectingTimeoutMs: 500})
	require.NoError(t, err)
	defer c.Close()

	sc := <-accepted
	defer sc.Close()
	sc.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	buf := make([]byte, 8)
	_, err = sc.Read(buf)
	assert.Error(t, err) // expect a read timeout: nothing was written
}

func TestReadLoopDeliversBytesAndDisconnect(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		sc, err := ln.Accept()
		if err != nil {
			return
		}
		sc.Write([]byte("+OK\r\n"))
		sc.Close()
	}()

	c, err := Dial(Options{Addr: ln.Addr().String(), ConnectingTimeoutMs: 500})
	require.NoError(t, err)

	received := make(chan []byte, 1)
	disconnected := make(chan error, 1)
	c.RegisterOnBytes(func(b []byte) { received <- b })
	c.OnDisconnect(func(err error) { disconnected <- err })

	select {
	case b := <-received:
		assert.Equal(t, "+OK\r\n", string(b))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for bytes")
	}
	select {
	case <-disconnected:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for disconnect")
	}
}

func TestDialFailsOnRefusedConnection(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close() // nothing listening now

	_, err = Dial(Options{Addr: addr, ConnectingTimeoutMs: 200})
	assert.Error(t, err)
}
