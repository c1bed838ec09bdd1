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

package keyslot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tair-opensource/tair-client-go/internal/crc"
)

func TestSlotKnownVector(t *testing.T) {
	assert.EqualValues(t, 16097, SlotString("abcde"))
}

func TestHashTagStability(t *testing.T) {
	a := SlotString("abcde{same}abcdefghi")
	b := SlotString("123456789{same}123456789")
	assert.Equal(t, a, b)
}

func TestHashTagStabilityForAnySuffix(t *testing.T) {
	base := SlotString("user:1000")
	for _, suffix := range []string{"", ":profile", ":friends:list"} {
		tagged := "{user:1000}" + suffix
		assert.Equal(t, base, SlotString(tagged), "suffix=%q", suffix)
	}
}

func TestNoClosingBraceHashesWholeKey(t *testing.T) {
	withBrace := SlotString("foo{bar")
	whole := crc.CRC16([]byte("foo{bar")) & slotMask
	assert.Equal(t, whole, withBrace)
}

func TestEmptyBracesHashWholeKey(t *testing.T) {
	a := SlotString("foo{}bar")
	// {} is adjacent (e == s+1) so the whole key is hashed, not an empty tag.
	assert.NotEqual(t, SlotString(""), a)
}

func TestDeterminism(t *testing.T) {
	assert.Equal(t, SlotString("k1"), SlotString("k1"))
}
