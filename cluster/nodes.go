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
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tair-opensource/tair-client-go/keyslot"
	"github.com/tair-opensource/tair-client-go/logger"
)

// errParseNodesInfo is returned when a CLUSTER NODES line cannot be
// interpreted at all (bad address, bad slot range).
var errParseNodesInfo = errors.New("parse cluster nodes info failed")

// nodeLine is one parsed master line of a CLUSTER NODES reply.
type nodeLine struct {
	addr  string // host:port, cluster bus port stripped
	slots []slotRange
}

type slotRange struct {
	start, end uint16
}

// parseNodesInfo parses the full CLUSTER NODES text body, returning only
// master lines. Non-master lines, and slot fields that are migration
// markers (leading '[') or otherwise unrecognized, are skipped.
func parseNodesInfo(body string) ([]nodeLine, error) {
	var out []nodeLine
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		nl, ok, err := parseNodesLine(line)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, nl)
		}
	}
	return out, nil
}

// parseNodesLine parses a single CLUSTER NODES line. ok is false for
// non-master lines, which callers should silently skip.
func parseNodesLine(line string) (nodeLine, bool, error) {
	fields := strings.Fields(line)
	if len(fields) < 9 {
		return nodeLine{}, false, nil
	}
	flags := strings.Split(fields[2], ",")
	isMaster := false
	for _, f := range flags {
		if f == "master" {
			isMaster = true
			break
		}
	}
	if !isMaster {
		return nodeLine{}, false, nil
	}

	addr, err := parseNodeAddr(fields[1])
	if err != nil {
		return nodeLine{}, false, errors.Wrap(errParseNodesInfo, err.Error())
	}

	var ranges []slotRange
	for _, seg := range fields[8:] {
		if seg == "" {
			break
		}
		if seg[0] == '[' {
			break // migration marker, parsing stops here per upstream behavior
		}
		r, ok, err := parseSlotSegment(seg)
		if err != nil {
			return nodeLine{}, false, errors.Wrap(errParseNodesInfo, err.Error())
		}
		if !ok {
			logger.Warnf("cluster: skipping unrecognized slot field %q in line %q", seg, line)
			continue
		}
		ranges = append(ranges, r)
	}
	return nodeLine{addr: addr, slots: ranges}, true, nil
}

// parseNodeAddr strips the optional "@busport" suffix from the node's
// address field.
func parseNodeAddr(field string) (string, error) {
	parts := strings.SplitN(field, "@", 2)
	if parts[0] == "" {
		return "", errors.New("empty node address")
	}
	return parts[0], nil
}

// parseSlotSegment parses one "N" or "N-M" slot field. A field that is
// neither is reported via ok=false (caller logs and skips) rather than
// failing the whole parse, matching the disconnected-replica "-0"
// tolerance recovered from the reference implementation.
func parseSlotSegment(seg string) (slotRange, bool, error) {
	parts := strings.SplitN(seg, "-", 2)
	switch len(parts) {
	case 1:
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			return slotRange{}, false, nil // not "N" at all: tolerate and skip
		}
		if n < 0 || n >= keyslot.Count {
			return slotRange{}, false, errors.Errorf("slot %d out of range", n)
		}
		return slotRange{start: uint16(n), end: uint16(n)}, true, nil
	case 2:
		start, err1 := strconv.Atoi(parts[0])
		end, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return slotRange{}, false, nil // e.g. a disconnected-replica "-0" marker
		}
		if start < 0 || end < 0 || start >= keyslot.Count || end >= keyslot.Count || start > end {
			return slotRange{}, false, errors.Errorf("slot range %d-%d out of range", start, end)
		}
		return slotRange{start: uint16(start), end: uint16(end)}, true, nil
	default:
		return slotRange{}, false, nil
	}
}
