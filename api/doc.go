// Package api holds the small set of contracts shared across pool, queue
// and framing: generic object/byte pooling and debug introspection. They are
// implemented by pool.SyncPool, pool.BytePool and control.DebugProbes.
// pool.Pool, queue.Queue and framing.Framer are defined in their own
// packages and do not implement these interfaces.
//
// Author: momentics <momentics@gmail.com>
package api
