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

import "github.com/tair-opensource/tair-client-go/conn"

// SlotRangeOwner is one contiguous run of slots owned by the same
// connection, the shape the admin package's /debug/slots endpoint dumps.
type SlotRangeOwner struct {
	Start uint16 `json:"start"`
	End   uint16 `json:"end"`
	Addr  string `json:"addr"`
}

// Snapshot collapses the 16384-entry slot table into contiguous
// owner runs, for display or debugging. A slot with no owner is
// reported with an empty Addr.
func (t *Table) Snapshot() []SlotRangeOwner {
	var out []SlotRangeOwner
	var cur *SlotRangeOwner
	addrOf := func(c conn.Connection) string {
		if c == nil {
			return ""
		}
		return c.Addr()
	}
	for s := 0; s < len(t.slots); s++ {
		addr := addrOf(t.slots[s])
		if cur != nil && cur.Addr == addr {
			cur.End = uint16(s)
			continue
		}
		if cur != nil {
			out = append(out, *cur)
		}
		cur = &SlotRangeOwner{Start: uint16(s), End: uint16(s), Addr: addr}
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}
