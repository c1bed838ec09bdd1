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

	"github.com/spf13/cobra"
)

var clusterNodesCmd = &cobra.Command{
	Use:   "cluster-nodes",
	Short: "Print the client-side slot table built from CLUSTER NODES",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
			os.Exit(1)
		}
		for _, r := range c.Table().Snapshot() {
			fmt.Printf("%d-%d %s\n", r.Start, r.End, r.Addr)
		}
	},
	Example: "# tairctl cluster-nodes --mode cluster --addr 127.0.0.1:7000",
}

func init() {
	rootCmd.AddCommand(clusterNodesCmd)
}
