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

// Package tairclient assembles the codec, cluster, and dispatch layers
// into the single entry point applications use: New builds a connected
// client from Options, either dialing one standalone connection or
// bootstrapping a cluster.Table from a seed node.
package tairclient

import (
	"time"

	"github.com/pkg/errors"
)

// Mode selects how server_addrs is interpreted.
type Mode string

const (
	ModeStandalone Mode = "standalone"
	ModeCluster    Mode = "cluster"
	// ModeSentinel is accepted as a config value purely so New can reject
	// it with a clear error; sentinel discovery is out of scope.
	ModeSentinel Mode = "sentinel"
)

// ErrSentinelNotSupported is returned by New when Options.Mode is
// ModeSentinel.
var ErrSentinelNotSupported = errors.New("tairclient: sentinel mode is not supported")

// ErrNoServerAddrs is returned when Options.ServerAddrs is empty.
var ErrNoServerAddrs = errors.New("tairclient: server_addrs must not be empty")

// ErrStandaloneSingleAddr is returned when standalone mode is given more
// than one address.
var ErrStandaloneSingleAddr = errors.New("tairclient: standalone mode requires exactly one server address")

// Options is the client's caller-visible configuration surface.
type Options struct {
	Mode        Mode     `config:"mode"`
	ServerAddrs []string `config:"server_addrs"`
	User        string   `config:"user"`
	Password    string   `config:"password"`

	ConnectingTimeoutMs int  `config:"connecting_timeout_ms"`
	ReconnectIntervalMs int  `config:"reconnect_interval_ms"`
	AutoReconnect       bool `config:"auto_reconnect"`
	KeepAliveSeconds    int  `config:"keep_alive_seconds"`

	ProtoMaxBulkLen      int `config:"proto_max_bulk_len"`
	MemcachedMaxItemSize int `config:"memcached_max_item_size"`
}

// DefaultOptions returns Options with every documented default applied;
// callers typically start here and override only what they need.
func DefaultOptions() Options {
	return Options{
		Mode:                 ModeStandalone,
		ConnectingTimeoutMs:  2000,
		ReconnectIntervalMs:  -1,
		AutoReconnect:        true,
		KeepAliveSeconds:     60,
		ProtoMaxBulkLen:      512 * 1024 * 1024,
		MemcachedMaxItemSize: 1024 * 1024,
	}
}

func (o Options) validate() error {
	if o.Mode == ModeSentinel {
		return ErrSentinelNotSupported
	}
	if len(o.ServerAddrs) == 0 {
		return ErrNoServerAddrs
	}
	if o.Mode == ModeStandalone && len(o.ServerAddrs) != 1 {
		return ErrStandaloneSingleAddr
	}
	return nil
}

func (o Options) connectTimeout() time.Duration {
	return time.Duration(o.ConnectingTimeoutMs) * time.Millisecond
}
