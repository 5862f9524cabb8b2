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

	"github.com/matrixorigin/mostd/pkg/common/moerr"
)

func checkIndex(op string, i, length int) {
	if i < 0 || i >= length {
		panic(moerr.NewOutOfRange("index", "%s index %d, length %d", op, i, length))
	}
}

// Reserve makes room for at least additional more elements and panics
// when the storage cannot.
func Reserve[T any](s Storage[T], additional int) {
	if err := TryReserve(s, additional); err != nil {
		panic(err)
	}
}

func ReserveExact[T any](s Storage[T], additional int) {
	if err := TryReserveExact(s, additional); err != nil {
		panic(err)
	}
}

func TryReserve[T any](s Storage[T], additional int) error {
	if additional < 0 {
		return moerr.NewInvalidArg("additional", additional)
	}
	if s.Capacity()-s.Len() >= additional {
		return nil
	}
	return s.TryReserve(additional)
}

// TryReserveExact is TryReserve without over-provisioning, when the
// storage supports it.
func TryReserveExact[T any](s Storage[T], additional int) error {
	if additional < 0 {
		return moerr.NewInvalidArg("additional", additional)
	}
	if s.Capacity()-s.Len() >= additional {
		return nil
	}
	if r, ok := s.(ExactReserver); ok {
		return r.TryReserveExact(additional)
	}
	return s.TryReserve(additional)
}

func IsEmpty[T any](s Storage[T]) bool {
	return s.Len() == 0
}

// AsSlice returns the live elements. Appending to the result never writes
// into the storage.
func AsSlice[T any](s Storage[T]) []T {
	n := s.Len()
	if n == 0 {
		return nil
	}
	return s.Buffer()[:n:n]
}

// SpareCapacity returns the unused tail of the buffer. Elements written
// there become live only after SetLen.
func SpareCapacity[T any](s Storage[T]) []T {
	return s.Buffer()[s.Len():]
}

func Get[T any](s Storage[T], i int) T {
	checkIndex("get", i, s.Len())
	return s.Buffer()[i]
}

// Set replaces the element at i, dropping the old one.
func Set[T any](s Storage[T], i int, v T) {
	checkIndex("set", i, s.Len())
	buf := s.Buffer()
	drop(&buf[i])
	buf[i] = v
}

// Truncate drops the elements past n. It does nothing when Len() <= n.
func Truncate[T any](s Storage[T], n int) {
	if n < 0 {
		panic(moerr.NewOutOfRange("length", "truncate to %d", n))
	}
	length := s.Len()
	if length <= n {
		return
	}
	buf := s.Buffer()
	s.SetLen(n)
	for i := n; i < length; i++ {
		drop(&buf[i])
	}
}

func Clear[T any](s Storage[T]) {
	Truncate(s, 0)
}

func Push[T any](s Storage[T], v T) {
	length := s.Len()
	if length == s.Capacity() {
		Reserve(s, 1)
	}
	s.Buffer()[length] = v
	s.SetLen(length + 1)
}

// Pop removes the last element. ok is false when the storage is empty.
func Pop[T any](s Storage[T]) (v T, ok bool) {
	length := s.Len()
	if length == 0 {
		return
	}
	buf := s.Buffer()
	v, ok = buf[length-1], true
	var zero T
	buf[length-1] = zero
	s.SetLen(length - 1)
	return
}

// Extend pushes a copy of every value in vals.
func Extend[T any](s Storage[T], vals ...T) {
	if len(vals) == 0 {
		return
	}
	Reserve(s, len(vals))
	length := s.Len()
	copy(s.Buffer()[length:], vals)
	s.SetLen(length + len(vals))
}

// Insert places v at i, shifting [i, Len()) right by one.
func Insert[T any](s Storage[T], i int, v T) {
	length := s.Len()
	if i < 0 || i > length {
		panic(moerr.NewOutOfRange("index", "insert index %d, length %d", i, length))
	}
	if length == s.Capacity() {
		Reserve(s, 1)
	}
	buf := s.Buffer()
	copy(buf[i+1:length+1], buf[i:length])
	buf[i] = v
	s.SetLen(length + 1)
}

// Remove takes the element at i out, shifting [i+1, Len()) left by one.
func Remove[T any](s Storage[T], i int) T {
	length := s.Len()
	checkIndex("remove", i, length)
	buf := s.Buffer()
	v := buf[i]
	copy(buf[i:length-1], buf[i+1:length])
	var zero T
	buf[length-1] = zero
	s.SetLen(length - 1)
	return v
}

// SwapRemove takes the element at i out and moves the last element into
// its slot. Order is not preserved.
func SwapRemove[T any](s Storage[T], i int) T {
	length := s.Len()
	checkIndex("swap_remove", i, length)
	buf := s.Buffer()
	v := buf[i]
	buf[i] = buf[length-1]
	var zero T
	buf[length-1] = zero
	s.SetLen(length - 1)
	return v
}

func Retain[T any](s Storage[T], keep func(T) bool) {
	RetainMut(s, func(v *T) bool {
		return keep(*v)
	})
}

// RetainMut keeps the elements for which keep returns true, in order, in
// one pass. Rejected elements are dropped as they are visited.
//
// If keep panics the length is left as it was and elements not visited yet
// are never dropped; the storage must not be used afterwards.
func RetainMut[T any](s Storage[T], keep func(*T) bool) {
	length := s.Len()
	buf := s.Buffer()[:length]
	var zero T
	deleted := 0
	for i := range buf {
		if !keep(&buf[i]) {
			drop(&buf[i])
			deleted++
			continue
		}
		if deleted > 0 {
			buf[i-deleted] = buf[i]
			buf[i] = zero
		}
	}
	s.SetLen(length - deleted)
}

// DedupBy drops every element for which sameBucket(element, previous kept
// element) returns true. Only consecutive runs collapse. Like RetainMut it
// is not safe against a panicking sameBucket.
func DedupBy[T any](s Storage[T], sameBucket func(cur, prev *T) bool) {
	length := s.Len()
	if length <= 1 {
		return
	}
	buf := s.Buffer()[:length]
	var zero T
	w := 1
	for r := 1; r < length; r++ {
		if sameBucket(&buf[r], &buf[w-1]) {
			drop(&buf[r])
			continue
		}
		if r != w {
			buf[w] = buf[r]
			buf[r] = zero
		}
		w++
	}
	s.SetLen(w)
}

func DedupByKey[T any, K comparable](s Storage[T], key func(*T) K) {
	DedupBy(s, func(cur, prev *T) bool {
		return key(cur) == key(prev)
	})
}

func Dedup[T comparable](s Storage[T]) {
	DedupBy(s, func(cur, prev *T) bool {
		return *cur == *prev
	})
}

// Append moves every element of src to the end of dst and leaves src
// empty. The moved elements are not dropped.
func Append[T any](dst, src Storage[T]) {
	if dst == src {
		panic(moerr.NewInvalidArg("append source", "the destination itself"))
	}
	n := src.Len()
	if n == 0 {
		return
	}
	Reserve(dst, n)
	length := dst.Len()
	moved := src.Buffer()[:n]
	copy(dst.Buffer()[length:], moved)
	clear(moved)
	src.SetLen(0)
	dst.SetLen(length + n)
}

// ResizeWith truncates to n, or grows to n filling every new slot, in
// order, with a fresh value from f.
func ResizeWith[T any](s Storage[T], n int, f func() T) {
	length := s.Len()
	if n <= length {
		Truncate(s, n)
		return
	}
	Reserve(s, n-length)
	buf := s.Buffer()
	for i := length; i < n; i++ {
		buf[i] = f()
		// published one at a time so a panicking f leaves no unowned slot
		s.SetLen(i + 1)
	}
}

// DeleteBatch drops every element whose index is in deletes, keeping the
// rest in order.
func DeleteBatch[T any](s Storage[T], deletes *roaring.Bitmap) {
	if deletes == nil || deletes.IsEmpty() {
		return
	}
	length := s.Len()
	if last := int(deletes.Maximum()); last >= length {
		panic(moerr.NewOutOfRange("index", "delete index %d, length %d", last, length))
	}
	buf := s.Buffer()[:length]
	var zero T
	it := deletes.Iterator()
	next := int(it.Next())
	w := next
	for r := next; r < length; r++ {
		if r == next {
			drop(&buf[r])
			if it.HasNext() {
				next = int(it.Next())
			}
			continue
		}
		buf[w] = buf[r]
		buf[r] = zero
		w++
	}
	s.SetLen(w)
}

func ShrinkToFit[T any](s Storage[T]) {
	ShrinkTo(s, 0)
}

// ShrinkTo lowers the capacity to max(minCapacity, Len()) if the storage
// supports shrinking.
func ShrinkTo[T any](s Storage[T], minCapacity int) {
	sh, ok := s.(Shrinker)
	if !ok {
		return
	}
	target := max(minCapacity, s.Len())
	if target >= s.Capacity() {
		return
	}
	sh.ShrinkTo(target)
}

func Desc[T any](s Storage[T]) string {
	return fmt.Sprintf("Len=%d;Cap=%d", s.Len(), s.Capacity())
}
