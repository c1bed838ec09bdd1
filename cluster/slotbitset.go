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

import "github.com/tair-opensource/tair-client-go/keyslot"

const bitsetWords = (keyslot.Count + 63) / 64

// slotBitset tracks which of the 16384 slots have been assigned an
// owner during CLUSTER NODES parsing, so verifying full coverage is an
// O(16384/64) word scan instead of a 16384-entry nil-check loop.
type slotBitset [bitsetWords]uint64

func (s *slotBitset) set(n uint16) {
	s[n/64] |= 1 << (n % 64)
}

func (s *slotBitset) has(n uint16) bool {
	return s[n/64]&(1<<(n%64)) != 0
}

// allSet reports whether every slot in [0, keyslot.Count) is set.
func (s *slotBitset) allSet() bool {
	full := bitsetWords * 64
	for i, w := range s {
		if i == bitsetWords-1 && full != keyslot.Count {
			// last word is only partially meaningful when Count isn't a
			// multiple of 64; keyslot.Count (16384) is, so this never
			// triggers today, but guards against the constant changing.
			mask := uint64(1)<<(keyslot.Count%64) - 1
			if mask != 0 && w&mask != mask {
				return false
			}
			continue
		}
		if w != ^uint64(0) {
			return false
		}
	}
	return true
}

// missing returns the first unassigned slot, or -1 if allSet.
func (s *slotBitset) missing() int {
	for i := 0; i < keyslot.Count; i++ {
		if !s.has(uint16(i)) {
			return i
		}
	}
	return -1
}
