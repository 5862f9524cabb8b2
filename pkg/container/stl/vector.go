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

package stl

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// Vector is the method form of the operations in this package over one
// Storage.
type Vector[T any] struct {
	s Storage[T]
}

func NewVector[T any](s Storage[T]) *Vector[T] {
	return &Vector[T]{s: s}
}

// NewHeapVector is a Vector over a new Heap.
func NewHeapVector[T any](opts ...Options) *Vector[T] {
	return NewVector[T](NewHeap[T](opts...))
}

// NewFixedVector is a Vector over a new Fixed of the given capacity.
func NewFixedVector[T any](capacity int) *Vector[T] {
	return NewVector[T](NewFixed(make([]T, capacity)))
}

func (vec *Vector[T]) Storage() Storage[T] { return vec.s }
func (vec *Vector[T]) Len() int            { return vec.s.Len() }
func (vec *Vector[T]) Capacity() int       { return vec.s.Capacity() }
func (vec *Vector[T]) IsEmpty() bool       { return IsEmpty(vec.s) }
func (vec *Vector[T]) Slice() []T          { return AsSlice(vec.s) }
func (vec *Vector[T]) SpareCapacity() []T  { return SpareCapacity(vec.s) }
func (vec *Vector[T]) SetLen(n int)        { vec.s.SetLen(n) }

func (vec *Vector[T]) Reserve(additional int)      { Reserve(vec.s, additional) }
func (vec *Vector[T]) ReserveExact(additional int) { ReserveExact(vec.s, additional) }

func (vec *Vector[T]) TryReserve(additional int) error {
	return TryReserve(vec.s, additional)
}

func (vec *Vector[T]) TryReserveExact(additional int) error {
	return TryReserveExact(vec.s, additional)
}

func (vec *Vector[T]) Get(i int) T              { return Get(vec.s, i) }
func (vec *Vector[T]) Set(i int, v T)           { Set(vec.s, i, v) }
func (vec *Vector[T]) Push(v T)                 { Push(vec.s, v) }
func (vec *Vector[T]) Pop() (T, bool)           { return Pop(vec.s) }
func (vec *Vector[T]) Extend(vals ...T)         { Extend(vec.s, vals...) }
func (vec *Vector[T]) Insert(i int, v T)        { Insert(vec.s, i, v) }
func (vec *Vector[T]) Remove(i int) T           { return Remove(vec.s, i) }
func (vec *Vector[T]) SwapRemove(i int) T       { return SwapRemove(vec.s, i) }
func (vec *Vector[T]) Truncate(n int)           { Truncate(vec.s, n) }
func (vec *Vector[T]) Clear()                   { Clear(vec.s) }
func (vec *Vector[T]) Retain(keep func(T) bool) { Retain(vec.s, keep) }

func (vec *Vector[T]) RetainMut(keep func(*T) bool) {
	RetainMut(vec.s, keep)
}

func (vec *Vector[T]) DedupBy(sameBucket func(cur, prev *T) bool) {
	DedupBy(vec.s, sameBucket)
}

func (vec *Vector[T]) ResizeWith(n int, f func() T) {
	ResizeWith(vec.s, n, f)
}

// Append moves every element of other into vec, leaving other empty.
func (vec *Vector[T]) Append(other *Vector[T]) {
	Append(vec.s, other.s)
}

func (vec *Vector[T]) DeleteBatch(deletes *roaring.Bitmap) {
	DeleteBatch(vec.s, deletes)
}

func (vec *Vector[T]) ShrinkToFit()             { ShrinkToFit(vec.s) }
func (vec *Vector[T]) ShrinkTo(minCapacity int) { ShrinkTo(vec.s, minCapacity) }

// Close drops the elements and releases the storage if it holds resources.
func (vec *Vector[T]) Close() {
	if c, ok := vec.s.(interface{ Close() }); ok {
		c.Close()
		return
	}
	Clear(vec.s)
}

func (vec *Vector[T]) Desc() string {
	return Desc(vec.s)
}

func (vec *Vector[T]) String() string {
	s := vec.Desc()
	end := 100
	if vec.Len() < end {
		end = vec.Len()
	}
	if end == 0 {
		return s
	}
	data := ""
	for i := 0; i < end; i++ {
		data = fmt.Sprintf("%s %v", data, vec.Get(i))
	}
	return fmt.Sprintf("%s %s", s, data)
}
