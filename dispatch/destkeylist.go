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

import "github.com/tair-opensource/tair-client-go/command"

// destinationKeylistArgs reports whether argv has the "destination +
// key-list" shape (pfmerge, zrangestore, and the multi-key forms of
// unlink/exists/touch), returning the destination and the other keys
// that must share its slot. For unlink/exists/touch the "destination"
// is just the first key — the node that owns it is where argv is
// forwarded, matching the source's getClientByKey(*keys.begin()) — and
// the remaining keys are checked against its slot rather than silently
// ignored.
func destinationKeylistArgs(argv command.Argv) (dest []byte, others [][]byte, ok bool) {
	switch argv.Name() {
	case "pfmerge":
		if len(argv) < 2 {
			return nil, nil, false
		}
		return argv[1], toKeys(argv[2:]), true
	case "zrangestore":
		if len(argv) < 3 {
			return nil, nil, false
		}
		return argv[1], [][]byte{argv[2]}, true
	case "unlink", "exists", "touch":
		if len(argv) < 2 {
			return nil, nil, false
		}
		return argv[1], toKeys(argv[2:]), true
	default:
		return nil, nil, false
	}
}

func toKeys(argv command.Argv) [][]byte {
	out := make([][]byte, len(argv))
	copy(out, argv)
	return out
}
