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
	"math"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/matrixorigin/mostd/pkg/common/malloc"
	"github.com/matrixorigin/mostd/pkg/common/moerr"
	"github.com/matrixorigin/mostd/pkg/logutil"
	v2 "github.com/matrixorigin/mostd/pkg/util/metric/v2"
)

const minHeapCapacity = 4

type Options struct {
	Capacity  int
	Allocator malloc.Allocator
}

// Heap is a growable storage. Every buffer it holds is charged to its
// allocator, and a refused charge is reported as a capacity failure.
type Heap[T any] struct {
	alloc   malloc.Allocator
	dealloc malloc.Deallocator
	buf     []T
	len     int
}

var (
	_ Storage[int]  = new(Heap[int])
	_ ExactReserver = new(Heap[int])
	_ Shrinker      = new(Heap[int])
)

// NewHeap returns an empty Heap. Without an allocator in opts the default
// allocator is used. It panics if the initial capacity is refused.
func NewHeap[T any](opts ...Options) *Heap[T] {
	h := new(Heap[T])
	var capacity int
	if len(opts) > 0 {
		h.alloc = opts[0].Allocator
		capacity = opts[0].Capacity
	}
	if capacity > 0 {
		if err := h.TryReserveExact(capacity); err != nil {
			panic(err)
		}
	}
	return h
}

func (h *Heap[T]) allocator() malloc.Allocator {
	if h.alloc == nil {
		h.alloc = malloc.GetDefault()
	}
	return h.alloc
}

func (h *Heap[T]) Capacity() int { return len(h.buf) }
func (h *Heap[T]) Len() int      { return h.len }
func (h *Heap[T]) Buffer() []T   { return h.buf }

func (h *Heap[T]) SetLen(n int) {
	if n < 0 || n > len(h.buf) {
		panic(moerr.NewInvalidState("heap storage length %d, capacity %d", n, len(h.buf)))
	}
	h.len = n
}

func (h *Heap[T]) TryReserve(additional int) error {
	need, err := h.required(additional)
	if err != nil || need <= len(h.buf) {
		return err
	}
	return h.grow(growCapacity(len(h.buf), need))
}

func (h *Heap[T]) TryReserveExact(additional int) error {
	need, err := h.required(additional)
	if err != nil || need <= len(h.buf) {
		return err
	}
	return h.grow(need)
}

func (h *Heap[T]) required(additional int) (int, error) {
	if additional > maxHeapLen[T]()-h.len {
		v2.StlHeapCapacityExceededCounter.Inc()
		return 0, moerr.NewCapacityExceeded(math.MaxInt, len(h.buf))
	}
	return h.len + additional, nil
}

func maxHeapLen[T any]() int {
	if size := Sizeof[T](); size > 0 {
		return math.MaxInt / size
	}
	return math.MaxInt
}

// growCapacity doubles small buffers and grows large ones by a quarter,
// never returning less than need.
func growCapacity(old, need int) int {
	newCap := old + old
	if old >= 1024 {
		newCap = old
		for 0 < newCap && newCap < need {
			newCap += newCap / 4
		}
	}
	if newCap <= 0 || newCap < need {
		newCap = need
	}
	if newCap < minHeapCapacity {
		newCap = minHeapCapacity
	}
	return newCap
}

func (h *Heap[T]) grow(capacity int) error {
	if err := h.realloc(capacity); err != nil {
		v2.StlHeapCapacityExceededCounter.Inc()
		if logutil.Enabled(zapcore.DebugLevel) {
			logutil.Debug("heap storage grow denied",
				zap.Int("len", h.len),
				zap.Int("from", len(h.buf)),
				zap.Int("to", capacity),
				zap.Error(err))
		}
		return moerr.NewCapacityExceededWithCause(capacity, len(h.buf), err)
	}
	v2.StlHeapGrowCounter.Inc()
	return nil
}

func (h *Heap[T]) realloc(capacity int) error {
	buf, dealloc, err := malloc.MakeSlice[T](h.allocator(), capacity)
	if err != nil {
		return err
	}
	if logutil.Enabled(zapcore.DebugLevel) {
		logutil.Debug("heap storage realloc",
			zap.Int("len", h.len),
			zap.Int("from", len(h.buf)),
			zap.Int("to", capacity))
	}
	copy(buf, h.buf[:h.len])
	h.release()
	h.buf, h.dealloc = buf, dealloc
	return nil
}

// ShrinkTo moves the live elements into a buffer of max(minCapacity, Len())
// slots. A refused allocation leaves the storage as it is.
func (h *Heap[T]) ShrinkTo(minCapacity int) {
	target := max(minCapacity, h.len)
	if target >= len(h.buf) {
		return
	}
	if target == 0 {
		h.release()
		v2.StlHeapShrinkCounter.Inc()
		return
	}
	if err := h.realloc(target); err != nil {
		logutil.Warn("heap storage shrink denied",
			zap.Int("len", h.len),
			zap.Int("capacity", len(h.buf)),
			zap.Error(err))
		return
	}
	v2.StlHeapShrinkCounter.Inc()
}

func (h *Heap[T]) release() {
	if h.dealloc != nil {
		h.dealloc.Deallocate(malloc.NoHints)
		h.dealloc = nil
	}
	h.buf = nil
}

// Close drops every live element and gives the buffer back to the
// allocator. The Heap stays usable.
func (h *Heap[T]) Close() {
	Clear[T](h)
	h.release()
}

func (h *Heap[T]) String() string {
	return "Heap:" + Desc[T](h)
}
