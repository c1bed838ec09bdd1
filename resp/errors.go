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

import "github.com/pkg/errors"

// The decode error taxonomy. Every Failed Status carries one of these or
// an error built by errUnknownType/errExpected below, unwrapped.
var (
	errTooBigCountString  = errors.New("too big count string")
	errTooBigInlineReq    = errors.New("too big inline request")
	errUnbalancedQuotes   = errors.New("unbalanced quotes in request")
	errIntegerFormat      = errors.New("integer format error")
	errDoubleFormat       = errors.New("double format error")
	errBooleanFormat      = errors.New("boolean format error")
	errBigNumberFormat    = errors.New("big number format error")
	errInvalidBulkLength  = errors.New("invalid bulk length")
	errInvalidMultibulk   = errors.New("invalid multibulk length")
	errNoArraySize        = errors.New("not found array size")
	errNoBulkStringLen    = errors.New("not found bulkstring len")
	errNonNullCapableNull = errors.New("unbalanced aggregate null in non-null-capable variant")
)

func errUnknownType(b byte) error {
	return errors.Errorf("unknown packet type: '%c'", b)
}

func errExpected(want, got []byte) error {
	return errors.Errorf("expected %q, got %q", want, got)
}
