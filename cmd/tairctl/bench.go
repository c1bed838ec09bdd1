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
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/tairclient"
)

var benchFlags struct {
	requests    int
	concurrency int
	keyPrefix   string
	valueSize   int
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a SET/GET throughput smoke test against the configured server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBench(); err != nil {
			fmt.Fprintf(os.Stderr, "bench failed: %v\n", err)
			os.Exit(1)
		}
	},
	Example: "# tairctl bench --requests 20000 --concurrency 32",
}

func init() {
	pf := benchCmd.Flags()
	pf.IntVar(&benchFlags.requests, "requests", 10000, "Total number of SET+GET pairs to issue")
	pf.IntVar(&benchFlags.concurrency, "concurrency", 16, "Number of concurrent workers")
	pf.StringVar(&benchFlags.keyPrefix, "key-prefix", "tairctl-bench", "Prefix used for generated keys")
	pf.IntVar(&benchFlags.valueSize, "value-size", 64, "Size in bytes of the value written by SET")
	rootCmd.AddCommand(benchCmd)
}

func runBench() error {
	c, err := newClient()
	if err != nil {
		return err
	}

	value := make([]byte, benchFlags.valueSize)
	for i := range value {
		value[i] = 'x'
	}
	strValue := string(value)

	total := benchFlags.requests
	workers := benchFlags.concurrency
	if workers > total {
		workers = total
	}
	if workers < 1 {
		workers = 1
	}

	var next int64
	var errCount int64
	var wg sync.WaitGroup
	start := time.Now()

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := context.Background()
			for {
				i := atomic.AddInt64(&next, 1) - 1
				if i >= int64(total) {
					return
				}
				key := benchFlags.keyPrefix + "-" + strconv.FormatInt(i, 10)
				if _, err := c.Execute(ctx, command.New("SET", key, strValue)); err != nil {
					atomic.AddInt64(&errCount, 1)
					continue
				}
				if _, err := c.Execute(ctx, command.New("GET", key)); err != nil {
					atomic.AddInt64(&errCount, 1)
				}
			}
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)
	ops := total * 2
	fmt.Printf("mode=%s workers=%d requests=%d ops=%d errors=%d elapsed=%s ops/sec=%.0f\n",
		tairclient.Mode(flags.mode), workers, total, ops, errCount, elapsed, float64(ops)/elapsed.Seconds())
	return nil
}
