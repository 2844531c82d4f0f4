// File: framing/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package framing delimits complete top-level JSON values (objects or
// arrays) out of an unbounded byte stream without building a parse
// tree. A byte-wise state machine classifies structural bytes; two
// framer shapes sit on top of it — a growable linear buffer (Incremental)
// and a ring buffer that grows on demand (RingBuffer) — both emitting
// the same raw-bytes-per-value contract to a caller callback.
package framing
