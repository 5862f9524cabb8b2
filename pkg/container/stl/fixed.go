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
	"github.com/matrixorigin/mostd/pkg/common/moerr"
	v2 "github.com/matrixorigin/mostd/pkg/util/metric/v2"
)

// Fixed is a storage over a caller provided slice whose length is the
// capacity. It never reallocates.
type Fixed[T any] struct {
	len int
	buf []T
}

var _ Storage[int] = new(Fixed[int])

// NewFixed takes ownership of backing, which is zeroed.
func NewFixed[T any](backing []T) *Fixed[T] {
	clear(backing)
	return &Fixed[T]{
		buf: backing,
	}
}

func (s *Fixed[T]) Capacity() int { return len(s.buf) }
func (s *Fixed[T]) Len() int      { return s.len }
func (s *Fixed[T]) Buffer() []T   { return s.buf }

func (s *Fixed[T]) TryReserve(additional int) error {
	if additional > len(s.buf)-s.len {
		v2.StlFixedCapacityExceededCounter.Inc()
		return moerr.NewCapacityExceeded(s.len+additional, len(s.buf))
	}
	return nil
}

func (s *Fixed[T]) SetLen(n int) {
	if n < 0 || n > len(s.buf) {
		panic(moerr.NewInvalidState("fixed storage length %d, capacity %d", n, len(s.buf)))
	}
	s.len = n
}

func (s *Fixed[T]) Close() {
	Clear[T](s)
}

func (s *Fixed[T]) String() string {
	return "Fixed:" + Desc[T](s)
}
