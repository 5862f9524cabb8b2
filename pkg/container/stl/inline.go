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
	"unsafe"

	"github.com/matrixorigin/mostd/pkg/common/moerr"
	v2 "github.com/matrixorigin/mostd/pkg/util/metric/v2"
)

// Array lists the capacities an Inline storage can be declared with.
type Array[T any] interface {
	~[1]T | ~[2]T | ~[3]T | ~[4]T | ~[5]T | ~[6]T | ~[7]T | ~[8]T |
		~[9]T | ~[10]T | ~[11]T | ~[12]T | ~[13]T | ~[14]T | ~[15]T | ~[16]T |
		~[24]T | ~[32]T | ~[48]T | ~[64]T | ~[96]T | ~[128]T | ~[256]T |
		~[512]T | ~[1024]T | ~[2048]T | ~[4096]T
}

// Inline is a storage whose slots are embedded in the value itself, so it
// never allocates and its capacity is len(A):
//
//	var s stl.Inline[int, [4]int]
//
// The zero value is empty and ready to use. An Inline must not be copied
// after first use.
type Inline[T any, A Array[T]] struct {
	len int
	buf A
}

var _ Storage[int] = new(Inline[int, [4]int])

func (s *Inline[T, A]) Capacity() int {
	return len(s.buf)
}

func (s *Inline[T, A]) Len() int {
	return s.len
}

func (s *Inline[T, A]) Buffer() []T {
	return unsafe.Slice((*T)(unsafe.Pointer(&s.buf)), len(s.buf))
}

func (s *Inline[T, A]) TryReserve(additional int) error {
	if additional > len(s.buf)-s.len {
		v2.StlInlineCapacityExceededCounter.Inc()
		return moerr.NewCapacityExceeded(s.len+additional, len(s.buf))
	}
	return nil
}

func (s *Inline[T, A]) SetLen(n int) {
	if n < 0 || n > len(s.buf) {
		panic(moerr.NewInvalidState("inline storage length %d, capacity %d", n, len(s.buf)))
	}
	s.len = n
}

// Close drops every live element.
func (s *Inline[T, A]) Close() {
	Clear[T](s)
}

func (s *Inline[T, A]) String() string {
	return "Inline:" + Desc[T](s)
}
