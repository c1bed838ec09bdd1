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

// Package metrics exposes the client's prometheus instrumentation:
// commands dispatched by verb, routing errors by kind, codec decode
// failures by reason, and cluster fan-out latency. Every collector is
// registered once at package init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tair_client"

var (
	// CommandsDispatched counts every Dispatcher.Execute call by command
	// verb and outcome ("ok", "error").
	CommandsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_dispatched_total",
			Help:      "Commands dispatched, by verb and outcome",
		},
		[]string{"command", "outcome"},
	)

	// RoutingErrors counts slot-routing failures by kind
	// (unroutable, not-in-same-slot, no-such-slot, cluster-not-supported,
	// timeout, other).
	RoutingErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routing_errors_total",
			Help:      "Routing failures, by kind",
		},
		[]string{"kind"},
	)

	// CodecDecodeFailures counts Failed decode outcomes by dialect and
	// reason. Only the dispatcher's RESP reply decoding reports to it
	// (dialect "resp"); the gateway's request decode failures are logged,
	// not counted.
	CodecDecodeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "codec_decode_failures_total",
			Help:      "Codec decode failures, by dialect and reason",
		},
		[]string{"dialect", "reason"},
	)

	// FanoutLatencySeconds observes the wall time of a complete fan-out
	// operation (every shard's round trip plus aggregation), by command.
	FanoutLatencySeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fanout_latency_seconds",
			Help:      "Fan-out operation latency, by command",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	// SlotTableInit counts Table.Init attempts by outcome.
	SlotTableInit = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_table_init_total",
			Help:      "Cluster slot table initializations, by outcome",
		},
		[]string{"outcome"},
	)
)
