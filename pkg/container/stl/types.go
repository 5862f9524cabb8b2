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
	"reflect"
	"unsafe"
)

func Sizeof[T any]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

func SizeOfMany[T any](cnt int) int {
	var v T
	return int(unsafe.Sizeof(v)) * cnt
}

// Storage is the backing of a contiguous container. Slots [0, Len()) of
// Buffer() hold live elements; slots [Len(), Capacity()) hold the zero
// value of T and are never read as elements.
//
// Every operation in this package is written against Storage alone, so any
// implementation gets all of them.
type Storage[T any] interface {
	// Capacity is the number of slots available without growing.
	Capacity() int
	Len() int
	// Buffer returns every slot, len(Buffer()) == Capacity(). The slice is
	// invalidated by a call to TryReserve.
	Buffer() []T
	// TryReserve makes room for at least additional more elements past
	// Len(). It returns a *moerr.Error with code ErrCapacityExceeded when
	// it cannot.
	TryReserve(additional int) error
	// SetLen records n as the length. It neither constructs nor destructs.
	SetLen(n int)
}

// ExactReserver is implemented by storages that can grow to exactly the
// requested capacity instead of over-provisioning.
type ExactReserver interface {
	TryReserveExact(additional int) error
}

// Shrinker is implemented by storages that can give capacity back.
type Shrinker interface {
	ShrinkTo(minCapacity int)
}

// Dropper is implemented by elements that own resources. Drop is called
// once when an element is destructed by the container: cleared, truncated,
// filtered out, deduplicated or overwritten. Elements moved out of the
// container are not dropped, and neither are nil pointer elements.
type Dropper interface {
	Drop()
}

func drop[T any](slot *T) {
	if d, ok := any(slot).(Dropper); ok {
		d.Drop()
	} else if d, ok := any(*slot).(Dropper); ok && !isNil(d) {
		d.Drop()
	}
	var zero T
	*slot = zero
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
