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

// Package memcache implements spec component E: a resumable decoder for
// both the Memcached text and binary request dialects, normalizing each
// onto the same command.Argv model the RESP decoder produces so the
// dispatcher never has to know which wire format a connection speaks.
package memcache

import "github.com/tair-opensource/tair-client-go/command"

// Request is one decoded Memcached command: its normalized argv, plus —
// for binary-origin requests only — the framing fields a response needs
// to echo back (opcode, opaque, CAS) and whether the request came in on
// a quiet opcode (GETQ, SETQ, ...), which means its reply is suppressed:
// on a miss for a quiet get, on success for the other quiet opcodes.
type Request struct {
	Argv command.Argv

	Binary bool
	Opcode Opcode
	Opaque uint32
	CAS    uint64
	Quiet  bool
}
