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

package resp

import (
	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/internal/buffer"
)

// EncodeArgv writes argv to buf as a RESP multibulk array of bulk
// strings — the wire form every real Redis client sends regardless of
// the negotiated reply dialect. It is the inverse of DecodeRequest's
// multibulk path.
func EncodeArgv(buf *buffer.Buffer, argv command.Argv) {
	argv.ToPacket().EncodeV2(buf)
}

// EncodedSizeArgv returns the exact byte count EncodeArgv will append.
func EncodedSizeArgv(argv command.Argv) int {
	return argv.ToPacket().EncodedSizeV2()
}
