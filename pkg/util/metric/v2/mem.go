// Copyright 2023 Matrix Origin
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

package v2

import "github.com/prometheus/client_golang/prometheus"

var (
	memAllocateBytesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "mem",
			Name:      "allocate_bytes_total",
			Help:      "Total bytes granted by an allocator.",
		}, []string{"type"})

	memInuseBytesGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "mo",
			Subsystem: "mem",
			Name:      "inuse_bytes",
			Help:      "Bytes granted by an allocator and not yet released.",
		}, []string{"type"})

	memAllocateObjectsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "mem",
			Name:      "allocate_objects_total",
			Help:      "Total number of allocations granted by an allocator.",
		}, []string{"type"})

	memInuseObjectsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "mo",
			Subsystem: "mem",
			Name:      "inuse_objects",
			Help:      "Allocations granted by an allocator and not yet released.",
		}, []string{"type"})

	memAllocateDeniedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "mem",
			Name:      "allocate_denied_total",
			Help:      "Total number of allocations an allocator refused.",
		}, []string{"type"})
)

// AllocatorMetrics groups the collectors of one labelled allocator.
type AllocatorMetrics struct {
	AllocateBytes   prometheus.Counter
	InuseBytes      prometheus.Gauge
	AllocateObjects prometheus.Counter
	InuseObjects    prometheus.Gauge
	Denied          prometheus.Counter
}

func NewAllocatorMetrics(typ string) AllocatorMetrics {
	return AllocatorMetrics{
		AllocateBytes:   memAllocateBytesCounter.WithLabelValues(typ),
		InuseBytes:      memInuseBytesGauge.WithLabelValues(typ),
		AllocateObjects: memAllocateObjectsCounter.WithLabelValues(typ),
		InuseObjects:    memInuseObjectsGauge.WithLabelValues(typ),
		Denied:          memAllocateDeniedCounter.WithLabelValues(typ),
	}
}

var (
	StlHeapGrowCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "stl",
			Name:      "heap_grow_total",
			Help:      "Total number of heap storage reallocations caused by growth.",
		})

	StlHeapShrinkCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "stl",
			Name:      "heap_shrink_total",
			Help:      "Total number of heap storage reallocations caused by shrinking.",
		})

	StlCapacityExceededCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "stl",
			Name:      "capacity_exceeded_total",
			Help:      "Total number of capacity requests a storage could not satisfy.",
		}, []string{"storage"})

	StlInlineCapacityExceededCounter = StlCapacityExceededCounter.WithLabelValues("inline")
	StlFixedCapacityExceededCounter  = StlCapacityExceededCounter.WithLabelValues("fixed")
	StlHeapCapacityExceededCounter   = StlCapacityExceededCounter.WithLabelValues("heap")
)

func initMemMetrics() {
	registry.MustRegister(memAllocateBytesCounter)
	registry.MustRegister(memInuseBytesGauge)
	registry.MustRegister(memAllocateObjectsCounter)
	registry.MustRegister(memInuseObjectsGauge)
	registry.MustRegister(memAllocateDeniedCounter)

	registry.MustRegister(StlHeapGrowCounter)
	registry.MustRegister(StlHeapShrinkCounter)
	registry.MustRegister(StlCapacityExceededCounter)
}
