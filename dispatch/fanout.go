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
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/logger"
	"github.com/tair-opensource/tair-client-go/metrics"
	"github.com/tair-opensource/tair-client-go/packet"
)

// isFanout reports whether argv must be issued to every known
// connection rather than routed to a single slot's owner.
func isFanout(argv command.Argv) bool {
	switch argv.Name() {
	case "keys", "flushall", "quit":
		return true
	case "script":
		sub, ok := argv.At(1)
		if !ok {
			return false
		}
		switch strings.ToLower(string(sub)) {
		case "load", "flush", "kill":
			return true
		}
	}
	return false
}

type shardResult struct {
	idx int
	p   *packet.Packet
	err error
}

// fanout issues argv to every connection concurrently and aggregates the
// results according to the command's own aggregation rule. Each shard is
// tagged with a correlation id purely for logging; shards have no
// natural sequence number of their own to log by otherwise.
func (d *Dispatcher) fanout(argv command.Argv) (*packet.Packet, error) {
	start := time.Now()
	defer func() {
		metrics.FanoutLatencySeconds.WithLabelValues(argv.Name()).Observe(time.Since(start).Seconds())
	}()

	conns := d.table.AllConnections()
	if len(conns) == 0 {
		return nil, ErrUnroutable
	}

	results := make(chan shardResult, len(conns))
	for i, c := range conns {
		i, c := i, c
		corrID := uuid.NewString()
		go func() {
			p, err := d.endpointFor(c).call(argv, d.timeout)
			if err != nil {
				logger.Warnf("dispatch: fanout shard %s (%s) failed: %v", corrID, c.Addr(), err)
			}
			results <- shardResult{idx: i, p: p, err: err}
		}()
	}

	collected := make([]shardResult, len(conns))
	for i := 0; i < len(conns); i++ {
		r := <-results
		collected[r.idx] = r
	}

	switch argv.Name() {
	case "keys":
		return aggregateKeys(collected)
	case "quit":
		ok := packet.NewSimpleString("OK")
		return &ok, nil
	default: // script load/flush/kill, flushall
		return aggregateAllOrError(collected)
	}
}

func aggregateKeys(results []shardResult) (*packet.Packet, error) {
	var merr *multierror.Error
	var items []packet.Packet
	for _, r := range results {
		if r.err != nil {
			merr = multierror.Append(merr, r.err)
			continue
		}
		if r.p.IsError() {
			merr = multierror.Append(merr, errFromPacket(r.p))
			continue
		}
		items = append(items, r.p.Items...)
	}
	if merr != nil {
		return nil, merr.ErrorOrNil()
	}
	p := packet.NewArray(items...)
	return &p, nil
}

func aggregateAllOrError(results []shardResult) (*packet.Packet, error) {
	var merr *multierror.Error
	for _, r := range results {
		if r.err != nil {
			merr = multierror.Append(merr, r.err)
			continue
		}
		if r.p.IsError() {
			merr = multierror.Append(merr, errFromPacket(r.p))
		}
	}
	if merr != nil {
		return nil, merr.ErrorOrNil()
	}
	ok := packet.NewSimpleString("OK")
	return &ok, nil
}

func errFromPacket(p *packet.Packet) error {
	return errors.New(string(p.Str))
}
