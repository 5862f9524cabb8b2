// Copyright 2024 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package malloc is the allocation provider growable containers delegate
// to. The Go runtime owns the memory itself; an Allocator decides whether
// a request is granted and accounts for what is in use.
package malloc

import "unsafe"

type Hints uint64

const (
	NoHints Hints = 0
	// NoClear tells the allocator the caller overwrites the memory anyway.
	NoClear Hints = 1 << iota
)

//go:generate mockgen -source malloc.go -destination mock_malloc/mock_allocator.go -package mock_malloc

// Allocator grants or refuses requests of size bytes. A granted request
// returns a Deallocator that must be called exactly once to give the
// bytes back.
type Allocator interface {
	Allocate(size uint64, hints Hints) (Deallocator, error)
}

type Deallocator interface {
	Deallocate(hints Hints)
}

// MakeSlice charges n elements of T to a and returns the backing slice.
func MakeSlice[T any](a Allocator, n int) ([]T, Deallocator, error) {
	var v T
	dec, err := a.Allocate(uint64(unsafe.Sizeof(v))*uint64(n), NoHints)
	if err != nil {
		return nil, nil, err
	}
	return make([]T, n), dec, nil
}

// DefaultAllocator serves containers built without an allocator. It is
// not synchronized; set it before containers are created.
var DefaultAllocator Allocator = NewGoAllocator()

func GetDefault() Allocator {
	return DefaultAllocator
}

func SetDefault(a Allocator) {
	DefaultAllocator = a
}
