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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair-opensource/tair-client-go/command"
)

func TestKeyIndexDefault(t *testing.T) {
	idx, ok := keyIndex(command.New("GET", "foo"))
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestKeyIndexArsWrapperShiftsByTwo(t *testing.T) {
	idx, ok := keyIndex(command.New("ars", "x", "GET", "foo"))
	require.True(t, ok)
	assert.Equal(t, 3, idx)
}

func TestKeyIndexBitop(t *testing.T) {
	idx, ok := keyIndex(command.New("BITOP", "AND", "dest", "src1", "src2"))
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestKeyIndexXgroup(t *testing.T) {
	idx, ok := keyIndex(command.New("XGROUP", "CREATE", "stream", "group"))
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestKeyIndexXreadFindsStreamsToken(t *testing.T) {
	idx, ok := keyIndex(command.New("XREAD", "COUNT", "2", "STREAMS", "mystream", "0"))
	require.True(t, ok)
	assert.Equal(t, 4, idx)
}

func TestKeyIndexXreadWithoutStreamsTokenIsUnroutable(t *testing.T) {
	_, ok := keyIndex(command.New("XREAD", "COUNT", "2"))
	assert.False(t, ok)
}

func TestKeyIndexOutOfBoundsIsUnroutable(t *testing.T) {
	_, ok := keyIndex(command.New("GET"))
	assert.False(t, ok)
}

func TestKeyIndexArsWithXreadgroup(t *testing.T) {
	idx, ok := keyIndex(command.New("ars", "tag", "XREADGROUP", "GROUP", "g", "c", "STREAMS", "s", ">"))
	require.True(t, ok)
	assert.Equal(t, 7, idx)
}
