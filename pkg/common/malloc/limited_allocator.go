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

	"go.uber.org/zap"

	"github.com/matrixorigin/mostd/pkg/common/moerr"
	"github.com/matrixorigin/mostd/pkg/logutil"
)

// LimitedAllocator grants requests from its upstream only while the bytes
// in use stay within limit.
type LimitedAllocator[U Allocator] struct {
	upstream U
	limit    uint64
	inuse    atomic.Uint64
	peak     *PeakInuseTracker
}

var _ Allocator = new(LimitedAllocator[Allocator])

func NewLimitedAllocator[U Allocator](upstream U, limit uint64) *LimitedAllocator[U] {
	return &LimitedAllocator[U]{
		upstream: upstream,
		limit:    limit,
		peak:     NewPeakInuseTracker(),
	}
}

func (l *LimitedAllocator[U]) Allocate(size uint64, hints Hints) (Deallocator, error) {
	if size == 0 {
		return dumbDeallocator, nil
	}
	for {
		cur := l.inuse.Load()
		if cur+size < cur || cur+size > l.limit {
			logutil.Warn("allocation denied",
				zap.Uint64("size", size),
				zap.Uint64("inuse", cur),
				zap.Uint64("limit", l.limit),
			)
			return nil, moerr.NewOOM()
		}
		if l.inuse.CompareAndSwap(cur, cur+size) {
			l.peak.Update(cur + size)
			break
		}
	}

	dec, err := l.upstream.Allocate(size, hints)
	if err != nil {
		l.inuse.Add(^(size - 1))
		return nil, err
	}
	return ChainDeallocator(
		dec,
		FuncDeallocator(func(Hints) {
			l.inuse.Add(^(size - 1))
		}),
	), nil
}

func (l *LimitedAllocator[U]) Limit() uint64 {
	return l.limit
}

func (l *LimitedAllocator[U]) Inuse() uint64 {
	return l.inuse.Load()
}

// Peak returns the highest number of bytes ever in use at once.
func (l *LimitedAllocator[U]) Peak() uint64 {
	v, _ := l.peak.Peak()
	return v
}
