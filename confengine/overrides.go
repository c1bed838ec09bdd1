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

package confengine

import "github.com/mitchellh/mapstructure"

// NodeOverride holds per-address tuning that overrides the client's global
// defaults for a single cluster node.
type NodeOverride struct {
	ConnectingTimeoutMs int `mapstructure:"connecting_timeout_ms"`
	KeepAliveSeconds    int `mapstructure:"keep_alive_seconds"`
}

// NodeOverrides decodes the free-form "node_overrides" section: a map keyed
// by "host:port" whose shape go-ucfg's static struct tags can't express, so
// it is unpacked into a generic map first and then decoded field-by-field
// with mapstructure.
func (c *Config) NodeOverrides(key string) (map[string]NodeOverride, error) {
	if !c.Has(key) {
		return nil, nil
	}

	var raw map[string]any
	if err := c.UnpackChild(key, &raw); err != nil {
		return nil, err
	}

	out := make(map[string]NodeOverride, len(raw))
	for addr, v := range raw {
		var o NodeOverride
		if err := mapstructure.Decode(v, &o); err != nil {
			return nil, err
		}
		out[addr] = o
	}
	return out, nil
}
