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

import "github.com/pkg/errors"

var (
	// ErrClusterNotSupported is returned synchronously, before any I/O,
	// for commands the cluster dispatcher never routes.
	ErrClusterNotSupported = errors.New("cluster not supported")
	// ErrUnroutable is returned when a command's key position can't be
	// determined (out-of-bounds index, or xread/xreadgroup with no
	// "streams" token).
	ErrUnroutable = errors.New("params-empty")
	// ErrTimeout is returned when a routed command's reply does not
	// arrive within the dispatcher's configured timeout.
	ErrTimeout = errors.New("timeout")
)
