// Package control
// Author: momentics <momentics@gmail.com>
//
// Hot-reload, runtime metrics, configuration control, and debug introspection
// layer shared by pool, queue and framing. None of these primitives carry
// domain logic; pool.Pool and queue.Queue register their counters into a
// MetricsRegistry/DebugProbes instance the caller owns.
//
// Provides concurrent-safe state handling primitives including:
//   - Immutable snapshot config reads and atomic updates
//   - Runtime observers for hot-reload
//   - Metrics telemetry contracts
//   - State export, debug hooks, and probe registration
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
