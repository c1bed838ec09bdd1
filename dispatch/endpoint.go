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

package dispatch

import (
	"sync"
	"time"

	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/conn"
	"github.com/tair-opensource/tair-client-go/internal/buffer"
	"github.com/tair-opensource/tair-client-go/metrics"
	"github.com/tair-opensource/tair-client-go/packet"
	"github.com/tair-opensource/tair-client-go/resp"
)

// endpoint wraps one conn.Connection with a request/reply round-trip.
// Calls are serialized with a mutex: per the ordering guarantee, a
// connection writes and matches replies in submission order, which a
// single in-flight call trivially satisfies without a pending-completion
// queue.
type endpoint struct {
	c   conn.Connection
	mu  sync.Mutex
	dec *resp.Decoder
	buf *buffer.Buffer

	replies chan *packet.Packet
	errs    chan error
}

func newEndpoint(c conn.Connection) *endpoint {
	e := &endpoint{
		c:       c,
		dec:     resp.NewDecoder(),
		buf:     buffer.New(4096),
		replies: make(chan *packet.Packet, 1),
		errs:    make(chan error, 1),
	}
	c.RegisterOnBytes(e.onBytes)
	c.OnDisconnect(e.onDisconnect)
	return e
}

func (e *endpoint) onBytes(b []byte) {
	e.buf.Append(b)
	for {
		p, status, err := e.dec.DecodeV2(e.buf)
		switch status {
		case resp.Done:
			e.replies <- p
		case resp.Failed:
			metrics.CodecDecodeFailures.WithLabelValues("resp", "decode-failed").Inc()
			select {
			case e.errs <- err:
			default:
			}
			return
		case resp.NeedMore:
			return
		}
	}
}

func (e *endpoint) onDisconnect(err error) {
	select {
	case e.errs <- err:
	default:
	}
}

// call sends argv and blocks for its matching reply.
func (e *endpoint) call(argv command.Argv, timeout time.Duration) (*packet.Packet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := buffer.New(resp.EncodedSizeArgv(argv))
	resp.EncodeArgv(out, argv)
	if err := e.c.Send(out.NextAll()); err != nil {
		return nil, err
	}

	select {
	case p := <-e.replies:
		return p, nil
	case err := <-e.errs:
		return nil, err
	case <-time.After(timeout):
		return nil, ErrTimeout
	}
}
