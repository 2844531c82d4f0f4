// Package api
// Author: momentics
//
// Mock/testing utilities for all core contracts; extendable for new interfaces.

package api

// MockObjectPool is a test and mock-friendly implementation of ObjectPool.
type MockObjectPool[T any] struct {
	GetFunc func() T
	PutFunc func(T)
}

func (m *MockObjectPool[T]) Get() T      { return m.GetFunc() }
func (m *MockObjectPool[T]) Put(obj T)   { m.PutFunc(obj) }

// MockBytePool is a test and mock-friendly implementation of BytePool.
type MockBytePool struct {
	AcquireFunc func(int) []byte
	ReleaseFunc func([]byte)
}

func (m *MockBytePool) Acquire(n int) []byte { return m.AcquireFunc(n) }
func (m *MockBytePool) Release(buf []byte)   { m.ReleaseFunc(buf) }

// Extend with mocks for all additional core contracts as architecture evolves.
