// File: queue/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package queue implements a bounded, blocking FIFO mailbox between
// producers and consumers. It wraps github.com/eapache/queue's ring
// buffer with a mutex and a pair of condition variables for the
// not-empty / not-full wait states, following the same Cond-based
// signaling shape used elsewhere in this codebase for single-slot
// mailboxes, generalized to a bounded multi-slot queue with timed waits.
package queue
