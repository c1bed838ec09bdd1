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

	"github.com/tair-opensource/tair-client-go/cluster"
	"github.com/tair-opensource/tair-client-go/command"
)

func TestIsRejectedAlwaysMultiKeyCommands(t *testing.T) {
	assert.True(t, isRejected(command.New("MGET", "a", "b")))
	assert.True(t, isRejected(command.New("MSET", "a", "1", "b", "2")))
	assert.True(t, isRejected(command.New("MSETNX", "a", "1")))
}

func TestIsRejectedDelOnlyWhenMultiKey(t *testing.T) {
	assert.False(t, isRejected(command.New("DEL", "a")))
	assert.True(t, isRejected(command.New("DEL", "a", "b")))
	assert.True(t, isRejected(command.New("DEL", "{tag}a", "{tag}b"))) // rejected even though same slot
}

func TestIsRejectedUnrelatedCommandsPass(t *testing.T) {
	assert.False(t, isRejected(command.New("GET", "a")))
	assert.False(t, isRejected(command.New("SET", "a", "1")))
}

func TestIsRejectedUnlinkExistsTouchNeverRejectedDirectly(t *testing.T) {
	// unlink/exists/touch have no del-style special case: multi-key forms
	// are routed via destinationKeylistArgs's same-slot check instead of
	// being rejected eagerly here.
	assert.False(t, isRejected(command.New("UNLINK", "a", "b")))
	assert.False(t, isRejected(command.New("EXISTS", "a", "b")))
	assert.False(t, isRejected(command.New("TOUCH", "a", "b")))
}

func TestDestinationKeylistUnlinkSameSlotNotRejected(t *testing.T) {
	dest, others, ok := destinationKeylistArgs(command.New("UNLINK", "k1{tag}", "k2{tag}"))
	require.True(t, ok)
	_, err := cluster.AllSameSlotPinned(dest, others...)
	assert.NoError(t, err)
}

func TestDestinationKeylistExistsTouchDifferentSlotsRejected(t *testing.T) {
	for _, name := range []string{"EXISTS", "TOUCH"} {
		dest, others, ok := destinationKeylistArgs(command.New(name, "k1", "k2"))
		require.True(t, ok, name)
		_, err := cluster.AllSameSlotPinned(dest, others...)
		assert.ErrorIs(t, err, cluster.ErrNotInSameSlot, name)
	}
}

func TestDestinationKeylistUnlinkSingleKey(t *testing.T) {
	dest, others, ok := destinationKeylistArgs(command.New("UNLINK", "a"))
	require.True(t, ok)
	assert.Equal(t, "a", string(dest))
	assert.Empty(t, others)
}

func TestDestinationKeylistPfmerge(t *testing.T) {
	dest, others, ok := destinationKeylistArgs(command.New("PFMERGE", "dst", "s1", "s2"))
	require.True(t, ok)
	assert.Equal(t, "dst", string(dest))
	assert.Equal(t, "s1", string(others[0]))
	assert.Equal(t, "s2", string(others[1]))
}

func TestDestinationKeylistZrangestore(t *testing.T) {
	dest, others, ok := destinationKeylistArgs(command.New("ZRANGESTORE", "dst", "src", "0", "-1"))
	require.True(t, ok)
	assert.Equal(t, "dst", string(dest))
	assert.Equal(t, "src", string(others[0]))
}

func TestDestinationKeylistNotApplicable(t *testing.T) {
	_, _, ok := destinationKeylistArgs(command.New("GET", "a"))
	assert.False(t, ok)
}
