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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tair-opensource/tair-client-go/command"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Issue a GET and print the reply",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
			os.Exit(1)
		}
		p, err := c.Execute(context.Background(), command.New("GET", args[0]))
		if err != nil {
			fmt.Fprintf(os.Stderr, "GET failed: %v\n", err)
			os.Exit(1)
		}
		if p.IsNull {
			fmt.Println("(nil)")
			return
		}
		fmt.Println(string(p.Str))
	},
	Example: "# tairctl get foo --addr 127.0.0.1:6379",
}

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Issue a SET and print the reply",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
			os.Exit(1)
		}
		p, err := c.Execute(context.Background(), command.New("SET", args[0], args[1]))
		if err != nil {
			fmt.Fprintf(os.Stderr, "SET failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(p.Str))
	},
	Example: "# tairctl set foo bar --addr 127.0.0.1:6379",
}

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
}
