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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNodes = "07c37dfeb235213a872192d90877d0cd55635b91 127.0.0.1:30001@31001 myself,master - 0 0 0 connected 0-5460\n" +
	"67ed2db8d677e59ec4a4cefb06858cf2a1a89fa1 127.0.0.1:30002@31002 master - 0 1426238316232 2 connected 5461-10922\n" +
	"292f8b365bb7edb5e285caf0b7e6ddc7265d2f4f 127.0.0.1:30003@31003 master - 0 1426238316232 3 connected 10923-16383\n" +
	"e7d1eecce10fd6bb5eb35b9f99a514335d9ba9ca 127.0.0.1:30004@31004 slave 07c37dfeb235213a872192d90877d0cd55635b91 0 1426238317239 1 connected\n"

func TestParseNodesInfoSkipsSlaves(t *testing.T) {
	lines, err := parseNodesInfo(sampleNodes)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "127.0.0.1:30001", lines[0].addr)
	assert.Equal(t, []slotRange{{0, 5460}}, lines[0].slots)
	assert.Equal(t, "127.0.0.1:30002", lines[1].addr)
	assert.Equal(t, []slotRange{{5461, 10922}}, lines[1].slots)
}

func TestParseNodesLineMyselfMasterTolerated(t *testing.T) {
	nl, ok, err := parseNodesLine(
		"id 10.0.0.1:7000@17000 myself,master - 0 0 0 connected 0-100")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1:7000", nl.addr)
}

func TestParseNodesLineStopsAtMigrationMarker(t *testing.T) {
	nl, ok, err := parseNodesLine(
		"id 10.0.0.1:7000@17000 master - 0 0 0 connected 100-200 [300-<-other]")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []slotRange{{100, 200}}, nl.slots)
}

func TestParseNodesLineTrailingDisconnectedMarkerTolerated(t *testing.T) {
	nl, ok, err := parseNodesLine(
		"id 10.0.0.1:7000@17000 master - 0 0 0 connected 0-100 -0")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []slotRange{{0, 100}}, nl.slots)
}

func TestParseNodesLineOutOfRangeSlotFails(t *testing.T) {
	_, _, err := parseNodesLine(
		"id 10.0.0.1:7000@17000 master - 0 0 0 connected 99999")
	assert.Error(t, err)
}

func TestParseNodesLineReversedRangeFails(t *testing.T) {
	_, _, err := parseNodesLine(
		"id 10.0.0.1:7000@17000 master - 0 0 0 connected 500-100")
	assert.Error(t, err)
}

func TestParseNodeAddrStripsClusterBusPort(t *testing.T) {
	addr, err := parseNodeAddr("10.0.0.1:7000@17000")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:7000", addr)
}

func TestParseNodeAddrNoBusPort(t *testing.T) {
	addr, err := parseNodeAddr("10.0.0.1:7000")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:7000", addr)
}
