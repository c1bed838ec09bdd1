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

package memcache

import "github.com/pkg/errors"

// Text-protocol error lines, verbatim.
var (
	errUnknownCommand = errors.New("ERROR")
	errBadCommandLine = errors.New("CLIENT_ERROR bad command line format")
	errBadDataChunk   = errors.New("CLIENT_ERROR bad data chunk")
	errObjectTooLarge = errors.New("SERVER_ERROR object too large for cache")
)

// RespStatus is a binary-protocol response status code.
type RespStatus uint16

const (
	StatusNoError       RespStatus = 0x0000
	StatusKeyNotFound   RespStatus = 0x0001
	StatusKeyExists     RespStatus = 0x0002
	StatusValueTooLarge RespStatus = 0x0003
	StatusInvalidArgs   RespStatus = 0x0004
	StatusItemNotStored RespStatus = 0x0005
	StatusNonNumeric    RespStatus = 0x0006
	StatusAuthError     RespStatus = 0x0008
	StatusUnknownCmd    RespStatus = 0x0081
	StatusOutOfMemory   RespStatus = 0x0082
)

// StatusFor translates a decode-time error into the binary status code a
// response should carry, per spec's taxonomy-to-status mapping.
func StatusFor(err error) RespStatus {
	switch {
	case errors.Is(err, errBadCommandLine):
		return StatusInvalidArgs
	case errors.Is(err, errBadDataChunk):
		return StatusValueTooLarge
	case errors.Is(err, errUnknownCommand):
		return StatusUnknownCmd
	case errors.Is(err, errObjectTooLarge):
		return StatusOutOfMemory
	default:
		return StatusInvalidArgs
	}
}
