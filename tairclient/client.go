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

package tairclient

import (
	"context"

	"github.com/tair-opensource/tair-client-go/cluster"
	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/conn"
	"github.com/tair-opensource/tair-client-go/dispatch"
	"github.com/tair-opensource/tair-client-go/packet"
)

// Client is the assembled entry point: a dialer bound to Options, a
// cluster.Table (a single-node table in standalone mode), and the
// Dispatcher routing through it.
type Client struct {
	opt        Options
	table      *cluster.Table
	dispatcher *dispatch.Dispatcher
}

// New validates opt and builds a Client. In cluster mode it bootstraps
// the slot table from the first address in ServerAddrs (the others are
// not tried); in
// standalone mode it builds a single-node table that routes every slot
// to the one configured connection.
func New(opt Options) (*Client, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}

	dial := func(addr string) (conn.Connection, error) {
		return conn.Dial(conn.Options{
			Addr:                addr,
			User:                opt.User,
			Password:            opt.Password,
			ConnectingTimeoutMs: opt.ConnectingTimeoutMs,
			KeepAliveSeconds:    opt.KeepAliveSeconds,
		})
	}

	table := cluster.NewTable(dial)
	switch opt.Mode {
	case ModeCluster:
		if err := table.Init(opt.ServerAddrs[0], opt.connectTimeout()); err != nil {
			return nil, err
		}
	case ModeStandalone:
		if err := table.InitStandalone(opt.ServerAddrs[0]); err != nil {
			return nil, err
		}
	}

	return &Client{
		opt:        opt,
		table:      table,
		dispatcher: dispatch.NewDispatcher(table, opt.connectTimeout()),
	}, nil
}

// Execute dispatches argv through the client's routing layer. It is the
// low-level entry point; ergonomic per-command wrappers are left to
// callers, consistent with the dispatcher's own contract.
func (c *Client) Execute(ctx context.Context, argv command.Argv) (*packet.Packet, error) {
	return c.dispatcher.Execute(ctx, argv)
}

// Table exposes the underlying slot table, e.g. for wiring admin.New.
func (c *Client) Table() *cluster.Table {
	return c.table
}

// Dispatcher exposes the underlying dispatcher, e.g. for wiring gateway.New
// to run a frontend listener against the same backend routing this client
// uses for outbound calls.
func (c *Client) Dispatcher() *dispatch.Dispatcher {
	return c.dispatcher
}
