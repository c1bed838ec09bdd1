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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tair-opensource/tair-client-go/gateway"
)

var gatewayFlags gateway.Config

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Run a frontend listener that accepts RESP or Memcached-dialect clients and routes them through this client's backend",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
			os.Exit(1)
		}

		gatewayFlags.Enabled = true
		srv := gateway.New(gatewayFlags, c.Dispatcher())

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sig
			srv.Close()
		}()

		if err := srv.ListenAndServe(); err != nil {
			fmt.Fprintf(os.Stderr, "gateway stopped: %v\n", err)
			os.Exit(1)
		}
	},
	Example: "# tairctl gateway --listen 127.0.0.1:11211 --mode standalone --addr 127.0.0.1:6379",
}

func init() {
	pf := gatewayCmd.Flags()
	pf.StringVar(&gatewayFlags.Address, "listen", "127.0.0.1:11211", "Address the gateway listens on for frontend clients")
	pf.IntVar(&gatewayFlags.MaxConnections, "max-connections", 0, "Maximum concurrent frontend connections, 0 for unbounded")
	pf.IntVar(&gatewayFlags.MaxItemSize, "max-item-size", 0, "Maximum stored value size for Memcached-dialect connections, 0 for the package default")
	rootCmd.AddCommand(gatewayCmd)
}
