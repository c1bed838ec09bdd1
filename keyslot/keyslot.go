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

// Package keyslot implements spec component B: mapping a command key to
// one of the 16384 cluster hash slots, honoring Redis Cluster's "hash tag"
// convention for key co-location.
package keyslot

import "github.com/tair-opensource/tair-client-go/internal/crc"

// Count is the number of hash slots in the cluster keyspace.
const Count = 16384

const slotMask = Count - 1

// Slot returns the hash slot of key: CRC16_XMODEM(tagged(key)) & 0x3FFF.
func Slot(key []byte) uint16 {
	return crc.CRC16(tagged(key)) & slotMask
}

// SlotString is a convenience wrapper over Slot for string keys.
func SlotString(key string) uint16 {
	return Slot([]byte(key))
}

// tagged returns the hash-tag region of key: if key contains '{', and a
// '}' occurs strictly after the following byte, the bytes between them are
// used; otherwise the whole key is used.
func tagged(key []byte) []byte {
	s := -1
	for i, c := range key {
		if c == '{' {
			s = i
			break
		}
	}
	if s < 0 {
		return key
	}

	e := -1
	for i := s + 1; i < len(key); i++ {
		if key[i] == '}' {
			e = i
			break
		}
	}
	if e < 0 || e == s+1 {
		return key
	}
	return key[s+1 : e]
}
