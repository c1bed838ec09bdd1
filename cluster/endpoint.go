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

package cluster

import (
	"github.com/cespare/xxhash/v2"

	"github.com/tair-opensource/tair-client-go/conn"
)

type endpointEntry struct {
	addr string
	c    conn.Connection
}

// endpointTable interns one conn.Connection per host:port so that slots
// sharing a node share the exact same connection object instead of each
// slot dialing its own. It is read-only after init (per the shared
// resource policy), so no locking is needed on the lookup path; routing
// is called once per outbound command and a plain string map would
// already be fast enough, but a fan-out bucket keyed by xxhash avoids
// Go's built-in string-hash overhead on that hot path.
type endpointTable struct {
	buckets map[uint64][]endpointEntry
}

func newEndpointTable() *endpointTable {
	return &endpointTable{buckets: make(map[uint64][]endpointEntry)}
}

func (t *endpointTable) get(addr string) (conn.Connection, bool) {
	h := xxhash.Sum64String(addr)
	for _, e := range t.buckets[h] {
		if e.addr == addr {
			return e.c, true
		}
	}
	return nil, false
}

func (t *endpointTable) put(addr string, c conn.Connection) {
	h := xxhash.Sum64String(addr)
	bucket := t.buckets[h]
	for i, e := range bucket {
		if e.addr == addr {
			bucket[i].c = c
			return
		}
	}
	t.buckets[h] = append(bucket, endpointEntry{addr: addr, c: c})
}

func (t *endpointTable) all() []conn.Connection {
	out := make([]conn.Connection, 0, len(t.buckets))
	for _, bucket := range t.buckets {
		for _, e := range bucket {
			out = append(out, e.c)
		}
	}
	return out
}
