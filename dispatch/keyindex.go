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

// keyIndex derives the position of the routing key within argv, per the
// spec's slot-derivation rules. ok is false when the command carries no
// routable key at this position (out-of-bounds key index, or a
// streams/xread(group) command with no "streams" token).
func keyIndex(argv command.Argv) (idx int, ok bool) {
	cmdIndex, keyIndex := 0, 1
	if argv.Is("ars") {
		cmdIndex, keyIndex = 2, 3
	}
	if cmdIndex >= len(argv) {
		return 0, false
	}
	cmd := string(argv[cmdIndex])

	switch {
	case equalsNoCase(cmd, "bitop") || equalsNoCase(cmd, "xgroup"):
		keyIndex = cmdIndex + 2
	case equalsNoCase(cmd, "xread") || equalsNoCase(cmd, "xreadgroup"):
		found := false
		for i := cmdIndex + 1; i < len(argv); i++ {
			if equalsNoCase(string(argv[i]), "streams") && i+1 < len(argv) {
				keyIndex = i + 1
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}

	if keyIndex >= len(argv) {
		return 0, false
	}
	return keyIndex, true
}

func equalsNoCase(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
