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

package main

import (
	"time"

	"github.com/RoaringBitmap/roaring"
	"go.uber.org/zap"

	"github.com/matrixorigin/mostd/pkg/common/moerr"
	"github.com/matrixorigin/mostd/pkg/container/stl"
	"github.com/matrixorigin/mostd/pkg/logutil"
)

type result struct {
	storage  string
	round    int
	pushed   int
	kept     int
	capacity int
	full     bool
	elapsed  time.Duration
	err      error
}

type storageFactory struct {
	name string
	new  func(cfg *Config) stl.Storage[int64]
}

var storageFactories = []storageFactory{
	{
		name: "inline",
		new: func(*Config) stl.Storage[int64] {
			return new(stl.Inline[int64, [4096]int64])
		},
	},
	{
		name: "fixed",
		new: func(cfg *Config) stl.Storage[int64] {
			return stl.NewFixed(make([]int64, cfg.Workload.FixedCapacity))
		},
	},
	{
		name: "heap",
		new: func(*Config) stl.Storage[int64] {
			return stl.NewHeap[int64]()
		},
	},
}

func runWorkload(cfg *Config) []result {
	var results []result
	for round := 0; round < cfg.Workload.Rounds; round++ {
		for _, f := range storageFactories {
			res := runOne(f.new(cfg), cfg.Workload.Elements)
			res.storage = f.name
			res.round = round
			logutil.Info("workload done",
				zap.String("storage", res.storage),
				zap.Int("round", res.round),
				zap.Int("pushed", res.pushed),
				zap.Int("kept", res.kept),
				zap.Int("capacity", res.capacity),
				zap.Bool("full", res.full),
				zap.Duration("elapsed", res.elapsed),
				zap.Error(res.err))
			results = append(results, res)
		}
	}
	return results
}

// runOne fills s with up to n values, stopping early once the storage is
// full, then exercises the compaction operations on what it holds.
func runOne(s stl.Storage[int64], n int) (res result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.err = moerr.ConvertPanicError(r)
		}
		res.elapsed = time.Since(start)
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}()

	for i := 0; i < n; i++ {
		if err := stl.TryReserve(s, 1); err != nil {
			if !moerr.IsMoErrCode(err, moerr.ErrCapacityExceeded) {
				panic(err)
			}
			res.full = true
			break
		}
		stl.Push(s, int64(i))
		res.pushed++
	}

	stl.Retain(s, func(v int64) bool { return v%2 == 0 })
	stl.DedupByKey(s, func(v *int64) int64 { return *v / 8 })
	if l := s.Len(); l > 0 {
		deletes := roaring.New()
		deletes.AddRange(0, uint64(l/10)+1)
		stl.DeleteBatch(s, deletes)
	}
	if l := s.Len(); l > 0 {
		stl.SwapRemove(s, l/2)
	}
	stl.ShrinkToFit(s)

	res.kept = s.Len()
	res.capacity = s.Capacity()
	return
}
