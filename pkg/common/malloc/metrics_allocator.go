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

package malloc

import (
	"sync/atomic"

	v2 "github.com/matrixorigin/mostd/pkg/util/metric/v2"
)

// MetricsAllocator reports every grant and release of its upstream to a
// labelled set of prometheus collectors.
type MetricsAllocator[U Allocator] struct {
	upstream U
	metrics  v2.AllocatorMetrics

	allocateBytes   atomic.Uint64
	inuseBytes      atomic.Int64
	allocateObjects atomic.Uint64
	inuseObjects    atomic.Int64
}

var _ Allocator = new(MetricsAllocator[Allocator])

func NewMetricsAllocator[U Allocator](upstream U, metrics v2.AllocatorMetrics) *MetricsAllocator[U] {
	return &MetricsAllocator[U]{
		upstream: upstream,
		metrics:  metrics,
	}
}

func (m *MetricsAllocator[U]) Allocate(size uint64, hints Hints) (Deallocator, error) {
	dec, err := m.upstream.Allocate(size, hints)
	if err != nil {
		if m.metrics.Denied != nil {
			m.metrics.Denied.Inc()
		}
		return nil, err
	}
	m.allocateBytes.Add(size)
	m.inuseBytes.Add(int64(size))
	m.allocateObjects.Add(1)
	m.inuseObjects.Add(1)
	if m.metrics.AllocateBytes != nil {
		m.metrics.AllocateBytes.Add(float64(size))
	}
	if m.metrics.InuseBytes != nil {
		m.metrics.InuseBytes.Add(float64(size))
	}
	if m.metrics.AllocateObjects != nil {
		m.metrics.AllocateObjects.Inc()
	}
	if m.metrics.InuseObjects != nil {
		m.metrics.InuseObjects.Inc()
	}

	return ChainDeallocator(
		dec,
		FuncDeallocator(func(Hints) {
			m.inuseBytes.Add(-int64(size))
			m.inuseObjects.Add(-1)
			if m.metrics.InuseBytes != nil {
				m.metrics.InuseBytes.Sub(float64(size))
			}
			if m.metrics.InuseObjects != nil {
				m.metrics.InuseObjects.Dec()
			}
		}),
	), nil
}

// AllocateObjects is the number of grants since creation.
func (m *MetricsAllocator[U]) AllocateObjects() uint64 {
	return m.allocateObjects.Load()
}

func (m *MetricsAllocator[U]) AllocateBytes() uint64 {
	return m.allocateBytes.Load()
}

func (m *MetricsAllocator[U]) InuseBytes() int64 {
	return m.inuseBytes.Load()
}

func (m *MetricsAllocator[U]) InuseObjects() int64 {
	return m.inuseObjects.Load()
}
