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
	"github.com/spf13/cobra"

	"github.com/tair-opensource/tair-client-go/tairclient"
)

var rootCmd = &cobra.Command{
	Use:   "tairctl",
	Short: "Command-line client for the tair-client-go wire protocol and cluster router",
}

// clientFlags holds the subset of tairclient.Options every subcommand
// needs to assemble a client, bound as persistent flags on rootCmd.
type clientFlags struct {
	mode     string
	addrs    []string
	user     string
	password string
	timeout  int
}

var flags clientFlags

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.mode, "mode", "standalone", "Connection mode: standalone or cluster")
	pf.StringSliceVar(&flags.addrs, "addr", nil, "Server address(es), host:port (repeatable)")
	pf.StringVar(&flags.user, "user", "", "AUTH username")
	pf.StringVar(&flags.password, "password", "", "AUTH password")
	pf.IntVar(&flags.timeout, "connect-timeout-ms", 2000, "Connect timeout in milliseconds")
}

func newClient() (*tairclient.Client, error) {
	opt := tairclient.DefaultOptions()
	opt.Mode = tairclient.Mode(flags.mode)
	opt.ServerAddrs = flags.addrs
	opt.User = flags.user
	opt.Password = flags.password
	opt.ConnectingTimeoutMs = flags.timeout
	return tairclient.New(opt)
}
