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
	"github.com/tair-opensource/tair-client-go/packet"
)

func TestIsFanoutAlwaysCommands(t *testing.T) {
	assert.True(t, isFanout(command.New("KEYS", "*")))
	assert.True(t, isFanout(command.New("FLUSHALL")))
	assert.True(t, isFanout(command.New("QUIT")))
}

func TestIsFanoutScriptSubcommands(t *testing.T) {
	assert.True(t, isFanout(command.New("SCRIPT", "LOAD", "return 1")))
	assert.True(t, isFanout(command.New("SCRIPT", "FLUSH")))
	assert.True(t, isFanout(command.New("SCRIPT", "KILL")))
	assert.False(t, isFanout(command.New("SCRIPT", "EXISTS", "abc")))
	assert.False(t, isFanout(command.New("SCRIPT")))
}

func TestIsFanoutUnrelatedCommands(t *testing.T) {
	assert.False(t, isFanout(command.New("GET", "a")))
	assert.False(t, isFanout(command.New("MGET", "a", "b")))
}

func bulkArray(items ...string) *packet.Packet {
	ps := make([]packet.Packet, len(items))
	for i, s := range items {
		ps[i] = packet.NewBulkString([]byte(s))
	}
	p := packet.NewArray(ps...)
	return &p
}

func errPacket(msg string) *packet.Packet {
	p := packet.NewError(msg)
	return &p
}

func TestAggregateKeysConcatenatesAcrossShards(t *testing.T) {
	results := []shardResult{
		{idx: 0, p: bulkArray("a", "b")},
		{idx: 1, p: bulkArray("c")},
	}
	p, err := aggregateKeys(results)
	require.NoError(t, err)
	require.Len(t, p.Items, 3)
	assert.Equal(t, "a", string(p.Items[0].Str))
	assert.Equal(t, "c", string(p.Items[2].Str))
}

func TestAggregateKeysFailsIfAnyShardErrors(t *testing.T) {
	results := []shardResult{
		{idx: 0, p: bulkArray("a")},
		{idx: 1, p: errPacket("ERR down")},
	}
	_, err := aggregateKeys(results)
	assert.Error(t, err)
}

func TestAggregateKeysFailsOnTransportError(t *testing.T) {
	results := []shardResult{
		{idx: 0, p: bulkArray("a")},
		{idx: 1, err: assert.AnError},
	}
	_, err := aggregateKeys(results)
	assert.Error(t, err)
}

func TestAggregateAllOrErrorSucceedsWhenEveryShardOK(t *testing.T) {
	ok := packet.NewSimpleString("OK")
	results := []shardResult{{idx: 0, p: &ok}, {idx: 1, p: &ok}}
	p, err := aggregateAllOrError(results)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(p.Str))
}

func TestAggregateAllOrErrorFailsOnOneBadShard(t *testing.T) {
	ok := packet.NewSimpleString("OK")
	results := []shardResult{{idx: 0, p: &ok}, {idx: 1, p: errPacket("ERR boom")}}
	_, err := aggregateAllOrError(results)
	assert.Error(t, err)
}
