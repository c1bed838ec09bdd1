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

package gateway

import (
	"context"
	"net"

	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/dispatch"
	"github.com/tair-opensource/tair-client-go/internal/buffer"
	"github.com/tair-opensource/tair-client-go/logger"
	"github.com/tair-opensource/tair-client-go/memcache"
	"github.com/tair-opensource/tair-client-go/packet"
	"github.com/tair-opensource/tair-client-go/resp"
)

// dialect is decided from a connection's first byte and fixed for its
// lifetime: Memcached connections never switch dialect mid-stream, and
// neither does a RESP one.
type dialect int

const (
	dialectUnknown dialect = iota
	dialectRESP
	dialectMemcache
)

// frontendConn pumps one accepted connection: sniff its dialect, decode
// each request as it completes, dispatch it, and write the reply back
// encoded in the same dialect the request arrived in.
type frontendConn struct {
	nc          net.Conn
	buf         *buffer.Buffer
	dispatcher  *dispatch.Dispatcher
	maxItemSize int

	dia     dialect
	respDec *resp.Decoder
	mcDec   *memcache.Decoder
}

func newFrontendConn(nc net.Conn, d *dispatch.Dispatcher, maxItemSize int) *frontendConn {
	return &frontendConn{nc: nc, buf: buffer.New(4096), dispatcher: d, maxItemSize: maxItemSize}
}

func (c *frontendConn) run() {
	defer c.nc.Close()
	chunk := make([]byte, 64*1024)
	for {
		n, err := c.nc.Read(chunk)
		if n > 0 {
			c.buf.Append(chunk[:n])
			if !c.drain() {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// drain decodes and dispatches every request currently buffered. It
// returns false once the connection must be torn down: a decode failure,
// or a write back to the client failing.
func (c *frontendConn) drain() bool {
	for {
		if c.dia == dialectUnknown {
			if c.buf.ReadableBytes() == 0 {
				return true
			}
			if c.buf.Bytes()[0] == '*' {
				c.dia = dialectRESP
				c.respDec = resp.NewRequestDecoder()
			} else {
				c.dia = dialectMemcache
				c.mcDec = memcache.NewDecoder(c.maxItemSize)
			}
		}

		switch c.dia {
		case dialectRESP:
			if done, alive := c.stepRESP(); !alive {
				return false
			} else if done {
				return true
			}
		case dialectMemcache:
			if done, alive := c.stepMemcache(); !alive {
				return false
			} else if done {
				return true
			}
		}
	}
}

// stepRESP decodes and dispatches a single RESP request. done reports
// whether the buffer is exhausted for now (wait for more bytes); alive
// reports whether the connection survives.
func (c *frontendConn) stepRESP() (done, alive bool) {
	req, status, err := c.respDec.DecodeRequest(c.buf)
	switch status {
	case resp.NeedMore:
		return true, true
	case resp.Failed:
		logger.Warnf("gateway: resp decode failed: %v", err)
		c.nc.Write(encodeErrorV2(err))
		return false, false
	}

	argv, convErr := command.FromPacket(*req)
	reply, execErr := c.execute(argv, convErr)

	out := buffer.New(64)
	if execErr != nil {
		packet.NewError(execErr.Error()).EncodeV2(out)
	} else {
		reply.EncodeV2(out)
	}
	if _, err := c.nc.Write(out.NextAll()); err != nil {
		return false, false
	}
	return false, true
}

// stepMemcache decodes and dispatches a single Memcached-dialect
// request; see stepRESP for the return value contract.
func (c *frontendConn) stepMemcache() (done, alive bool) {
	mreq, status, err := c.mcDec.Decode(c.buf)
	switch status {
	case memcache.NeedMore:
		return true, true
	case memcache.Failed:
		logger.Warnf("gateway: memcache decode failed: %v", err)
		return false, false
	}

	reply, execErr := c.dispatcher.Execute(context.Background(), mreq.Argv)

	out := buffer.New(64)
	memcache.EncodeReply(out, mreq, reply, execErr)
	if _, err := c.nc.Write(out.NextAll()); err != nil {
		return false, false
	}
	return false, true
}

func (c *frontendConn) execute(argv command.Argv, convErr error) (*packet.Packet, error) {
	if convErr != nil {
		return nil, convErr
	}
	return c.dispatcher.Execute(context.Background(), argv)
}

func encodeErrorV2(err error) []byte {
	out := buffer.New(64)
	packet.NewError("ERR " + err.Error()).EncodeV2(out)
	return out.NextAll()
}
