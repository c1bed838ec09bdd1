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

// Package cluster builds and queries the client-side slot table: which
// connection owns which of the 16384 hash slots, derived once at init
// time from a CLUSTER NODES reply and treated as read-only afterward.
package cluster

import (
	"time"

	"github.com/pkg/errors"

	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/conn"
	"github.com/tair-opensource/tair-client-go/internal/buffer"
	"github.com/tair-opensource/tair-client-go/keyslot"
	"github.com/tair-opensource/tair-client-go/logger"
	"github.com/tair-opensource/tair-client-go/metrics"
	"github.com/tair-opensource/tair-client-go/packet"
	"github.com/tair-opensource/tair-client-go/resp"
)

var (
	// ErrClusterNodesCallFailed is returned when CLUSTER NODES cannot be
	// retrieved from the seed node within the connect timeout.
	ErrClusterNodesCallFailed = errors.New("cluster-nodes call failed")
	// ErrSlotsNotInitialized is returned when at least one of the 16384
	// slots has no owner after parsing every master line.
	ErrSlotsNotInitialized = errors.New("some slots are not initialized")
	// ErrNotInSameSlot is returned by AllSameSlot when a multi-key
	// operation's keys don't hash to the same slot.
	ErrNotInSameSlot = errors.New("not in the same slot")
	// ErrNoSuchSlot is returned by Route when a slot has no owner, which
	// should not happen once Init has succeeded.
	ErrNoSuchSlot = errors.New("no-such-slot")
)

// Dialer opens a connection to addr. Table.Init calls it for the seed
// address and once per distinct address discovered in CLUSTER NODES. In
// production it is a closure over conn.Dial that fills in conn.Options
// (see tairclient.New); tests substitute a fake.
type Dialer func(addr string) (conn.Connection, error)

// Table is the client-side cluster slot table.
type Table struct {
	dial   Dialer
	slots  [keyslot.Count]conn.Connection
	eps    *endpointTable
	nowSec func() int64
}

// NewTable returns a Table that dials connections via dial.
func NewTable(dial Dialer) *Table {
	return &Table{dial: dial, eps: newEndpointTable(), nowSec: func() int64 { return time.Now().Unix() }}
}

// Init performs the four-step initialization protocol against seedAddr:
// fetch CLUSTER NODES, parse it, intern one connection per master, and
// verify full slot coverage.
func (t *Table) Init(seedAddr string, connectTimeout time.Duration) (err error) {
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.SlotTableInit.WithLabelValues(outcome).Inc()
	}()

	seed, err := t.dial(seedAddr)
	if err != nil {
		return errors.Wrap(ErrClusterNodesCallFailed, err.Error())
	}
	body, err := fetchClusterNodes(seed, connectTimeout)
	if err != nil {
		return errors.Wrap(ErrClusterNodesCallFailed, err.Error())
	}

	lines, err := parseNodesInfo(body)
	if err != nil {
		return err
	}

	var covered slotBitset
	for _, nl := range lines {
		c, err := t.internConnection(nl.addr)
		if err != nil {
			return errors.Wrap(ErrClusterNodesCallFailed, err.Error())
		}
		for _, r := range nl.slots {
			for s := r.start; ; s++ {
				t.slots[s] = c
				covered.set(s)
				if s == r.end {
					break
				}
			}
		}
	}

	if !covered.allSet() {
		logger.Errorf("cluster: slot %d has no owner after CLUSTER NODES parse", covered.missing())
		return ErrSlotsNotInitialized
	}
	return nil
}

// InitStandalone builds a single-node table that routes every slot to
// the one connection at addr, skipping the CLUSTER NODES protocol
// entirely — the routing layer stays uniform between standalone and
// cluster mode even though standalone has exactly one destination.
func (t *Table) InitStandalone(addr string) (err error) {
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.SlotTableInit.WithLabelValues(outcome).Inc()
	}()

	c, err := t.dial(addr)
	if err != nil {
		return errors.Wrap(ErrClusterNodesCallFailed, err.Error())
	}
	t.eps.put(addr, c)
	for s := range t.slots {
		t.slots[s] = c
	}
	return nil
}

func (t *Table) internConnection(addr string) (conn.Connection, error) {
	if c, ok := t.eps.get(addr); ok {
		return c, nil
	}
	c, err := t.dial(addr)
	if err != nil {
		return nil, err
	}
	t.eps.put(addr, c)
	return c, nil
}

// Route returns the connection owning key's slot.
func (t *Table) Route(key []byte) (conn.Connection, error) {
	s := keyslot.Slot(key)
	c := t.slots[s]
	if c == nil {
		return nil, ErrNoSuchSlot
	}
	return c, nil
}

// RouteRandom returns the connection owning an arbitrarily chosen slot;
// the choice only needs to land on *some* live node, so wall-clock
// seconds modulo the slot count is a fine source, not a cryptographic
// one.
func (t *Table) RouteRandom() (conn.Connection, error) {
	s := uint16(t.nowSec() % keyslot.Count)
	c := t.slots[s]
	if c == nil {
		return nil, ErrNoSuchSlot
	}
	return c, nil
}

// AllSameSlot requires every key in keys to hash to the same slot,
// returning that slot. It performs no I/O.
func AllSameSlot(keys ...[]byte) (uint16, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	first := keyslot.Slot(keys[0])
	for _, k := range keys[1:] {
		if keyslot.Slot(k) != first {
			return 0, ErrNotInSameSlot
		}
	}
	return first, nil
}

// AllSameSlotPinned requires every key in keys to share dest's slot,
// returning that slot — the variant used by destination+key-list
// commands (pfmerge, zrangestore) where the destination, not the first
// argument, determines the shard.
func AllSameSlotPinned(dest []byte, keys ...[]byte) (uint16, error) {
	pinned := keyslot.Slot(dest)
	for _, k := range keys {
		if keyslot.Slot(k) != pinned {
			return 0, ErrNotInSameSlot
		}
	}
	return pinned, nil
}

// AllConnections returns every distinct connection currently owning at
// least one slot, for fan-out operations.
func (t *Table) AllConnections() []conn.Connection {
	return t.eps.all()
}

// fetchClusterNodes issues a synchronous CLUSTER NODES request over c
// and waits up to timeout for a complete reply, decoded with the RESP
// codec shared with the rest of the client.
func fetchClusterNodes(c conn.Connection, timeout time.Duration) (string, error) {
	replies := make(chan *packet.Packet, 1)
	errs := make(chan error, 1)

	dec := resp.NewDecoder()
	buf := buffer.New(4096)
	c.RegisterOnBytes(func(b []byte) {
		buf.Append(b)
		p, status, err := dec.DecodeV2(buf)
		switch status {
		case resp.Done:
			replies <- p
		case resp.Failed:
			errs <- err
		}
	})
	c.OnDisconnect(func(err error) {
		select {
		case errs <- err:
		default:
		}
	})

	argv := command.New("CLUSTER", "NODES")
	out := buffer.New(resp.EncodedSizeArgv(argv))
	resp.EncodeArgv(out, argv)
	if err := c.Send(out.NextAll()); err != nil {
		return "", err
	}

	select {
	case p := <-replies:
		if p.IsError() {
			return "", errors.Errorf("CLUSTER NODES failed: %s", string(p.Str))
		}
		return string(p.Str), nil
	case err := <-errs:
		return "", err
	case <-time.After(timeout):
		return "", errors.New("timeout")
	}
}
