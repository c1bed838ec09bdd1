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

// Package dispatch routes a Command Argument Vector to the connection
// that owns its slot, fans it out across the whole cluster when the
// command requires it, and applies the cluster-error detection hook to
// every reply. Dispatcher.Execute is the core's single public entry
// point; ergonomic per-command methods are a façade this package does
// not provide.
package dispatch

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair-opensource/tair-client-go/cluster"
	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/conn"
	"github.com/tair-opensource/tair-client-go/keyslot"
	"github.com/tair-opensource/tair-client-go/logger"
	"github.com/tair-opensource/tair-client-go/metrics"
	"github.com/tair-opensource/tair-client-go/packet"
)

// Dispatcher is the cluster-aware command router. The zero value is not
// usable; construct with NewDispatcher.
type Dispatcher struct {
	table   *cluster.Table
	timeout time.Duration
	tracer  trace.Tracer

	mu        sync.Mutex
	endpoints map[conn.Connection]*endpoint
}

// NewDispatcher returns a Dispatcher routing through table, with
// per-call timeout applied to every round trip (including fan-out
// shards). A no-op trace.TracerProvider costs nothing when the caller
// hasn't configured OpenTelemetry.
func NewDispatcher(table *cluster.Table, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		table:     table,
		timeout:   timeout,
		tracer:    trace.NewNoopTracerProvider().Tracer("tair-client-go/dispatch"),
		endpoints: make(map[conn.Connection]*endpoint),
	}
}

func (d *Dispatcher) endpointFor(c conn.Connection) *endpoint {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.endpoints[c]
	if !ok {
		e = newEndpoint(c)
		d.endpoints[c] = e
	}
	return e
}

// Execute dispatches argv, returning the decoded reply packet or a
// routing/connection error. It never panics on a malformed argv; every
// failure is reported as an error.
func (d *Dispatcher) Execute(ctx context.Context, argv command.Argv) (p *packet.Packet, err error) {
	ctx, span := d.tracer.Start(ctx, "tair.dispatch")
	defer span.End()
	name := argv.Name()
	span.SetAttributes(attribute.String("tair.command", name))
	_ = ctx

	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			metrics.RoutingErrors.WithLabelValues(routingErrorKind(err)).Inc()
		}
		metrics.CommandsDispatched.WithLabelValues(name, outcome).Inc()
	}()

	if isRejected(argv) {
		return nil, ErrClusterNotSupported
	}

	if isFanout(argv) {
		p, err := d.fanout(argv)
		return finish(span, p, err)
	}

	if dest, others, ok := destinationKeylistArgs(argv); ok {
		slot, err := cluster.AllSameSlotPinned(dest, others...)
		if err != nil {
			return finish(span, nil, err)
		}
		span.SetAttributes(attribute.Int64("tair.slot", int64(slot)))
		c, err := d.table.Route(dest)
		if err != nil {
			return finish(span, nil, err)
		}
		p, err := d.endpointFor(c).call(argv, d.timeout)
		if err != nil {
			return finish(span, nil, err)
		}
		checkClusterError(p)
		return finish(span, p, nil)
	}

	idx, ok := keyIndex(argv)
	if !ok {
		return finish(span, nil, ErrUnroutable)
	}
	key, _ := argv.At(idx)
	span.SetAttributes(attribute.Int64("tair.slot", int64(keyslot.Slot(key))))
	c, err := d.table.Route(key)
	if err != nil {
		return finish(span, nil, err)
	}
	p, err := d.endpointFor(c).call(argv, d.timeout)
	if err != nil {
		return finish(span, nil, err)
	}
	checkClusterError(p)
	return finish(span, p, nil)
}

// routingErrorKind buckets an Execute failure into a small, stable set
// of metric label values.
func routingErrorKind(err error) string {
	switch {
	case stderrors.Is(err, ErrClusterNotSupported):
		return "cluster-not-supported"
	case stderrors.Is(err, ErrUnroutable):
		return "unroutable"
	case stderrors.Is(err, ErrTimeout):
		return "timeout"
	case stderrors.Is(err, cluster.ErrNotInSameSlot):
		return "not-in-same-slot"
	case stderrors.Is(err, cluster.ErrNoSuchSlot):
		return "no-such-slot"
	default:
		return "other"
	}
}

func finish(span trace.Span, p *packet.Packet, err error) (*packet.Packet, error) {
	if err != nil {
		span.RecordError(err)
	}
	return p, err
}

// checkClusterError inspects a reply for a MOVED/ASK error prefix. It is
// a detect-not-follow stub: topology changes are surfaced to the caller,
// who is expected to reinitialize the cluster table.
func checkClusterError(p *packet.Packet) bool {
	if p == nil || !p.IsError() {
		return false
	}
	msg := string(p.Str)
	if strings.HasPrefix(msg, "MOVED ") || strings.HasPrefix(msg, "ASK ") {
		logger.Warnf("dispatch: cluster topology error from server: %s", msg)
		return true
	}
	return false
}
