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

// isRejected reports whether argv must be rejected locally with
// ErrClusterNotSupported. mget/mset/msetnx are inherently multi-key and
// always rejected. Multi-key del is rejected unconditionally too, even
// when every key happens to share a slot — mirroring the source's eager
// rejection bit-for-bit rather than letting same-slot multi-key del
// through. unlink/exists/touch have no such special case: multi-key
// forms of those three are routed normally and rejected only when their
// keys actually span multiple slots, via destinationKeylistArgs.
func isRejected(argv command.Argv) bool {
	switch argv.Name() {
	case "mget", "mset", "msetnx":
		return true
	case "del":
		return len(argv) > 2
	default:
		return false
	}
}
