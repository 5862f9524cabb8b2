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
	"testing"

	"github.com/RoaringBitmap/roaring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mostd/pkg/common/moerr"
)

func TestVector1(t *testing.T) {
	vecs := []*Vector[int]{
		NewVector[int](new(Inline[int, [32]int])),
		NewFixedVector[int](32),
		NewHeapVector[int](),
	}
	for _, vec := range vecs {
		require.True(t, vec.IsEmpty())
		vec.Extend(1, 2, 3)
		vec.Push(4)
		vec.Insert(0, 0)
		require.Equal(t, []int{0, 1, 2, 3, 4}, vec.Slice())
		require.Equal(t, 5, vec.Len())
		require.GreaterOrEqual(t, vec.Capacity(), 5)

		vec.Set(4, 40)
		require.Equal(t, 40, vec.Get(4))
		require.Equal(t, 2, vec.Remove(2))
		require.Equal(t, 0, vec.SwapRemove(0))
		require.Equal(t, []int{40, 1, 3}, vec.Slice())

		v, ok := vec.Pop()
		require.True(t, ok)
		require.Equal(t, 3, v)

		vec.Retain(func(v int) bool { return v > 1 })
		require.Equal(t, []int{40}, vec.Slice())
		vec.RetainMut(func(v *int) bool {
			*v++
			return true
		})
		require.Equal(t, []int{41}, vec.Slice())

		vec.ResizeWith(4, func() int { return 7 })
		vec.DedupBy(func(cur, prev *int) bool { return *cur == *prev })
		require.Equal(t, []int{41, 7}, vec.Slice())

		vec.Truncate(1)
		require.NoError(t, vec.TryReserve(2))
		require.NoError(t, vec.TryReserveExact(2))
		vec.Reserve(1)
		vec.ReserveExact(1)
		spare := vec.SpareCapacity()
		spare[0] = 8
		vec.SetLen(2)
		require.Equal(t, []int{41, 8}, vec.Slice())

		vec.Clear()
		require.True(t, vec.IsEmpty())
		vec.Close()
	}
}

func TestVectorAppend(t *testing.T) {
	a := NewHeapVector[string]()
	b := NewFixedVector[string](4)
	a.Extend("a", "b")
	b.Extend("c", "d")
	a.Append(b)
	require.Equal(t, []string{"a", "b", "c", "d"}, a.Slice())
	require.Equal(t, 0, b.Len())

	requirePanicCode(t, moerr.ErrInvalidArg, func() { a.Append(a) })
}

func TestVectorDeleteBatch(t *testing.T) {
	vec := NewHeapVector[int](Options{Capacity: 16})
	for i := 0; i < 10; i++ {
		vec.Push(i)
	}
	deletes := roaring.New()
	deletes.AddRange(2, 8)
	vec.DeleteBatch(deletes)
	require.Equal(t, []int{0, 1, 8, 9}, vec.Slice())

	vec.ShrinkTo(8)
	require.Equal(t, 8, vec.Capacity())
	vec.ShrinkToFit()
	require.Equal(t, 4, vec.Capacity())
}

func TestVectorString(t *testing.T) {
	vec := NewFixedVector[int](8)
	assert.Equal(t, "Len=0;Cap=8", vec.String())
	vec.Extend(1, 2, 3)
	assert.Equal(t, "Len=3;Cap=8", vec.Desc())
	assert.Equal(t, "Len=3;Cap=8  1 2 3", vec.String())

	big := NewHeapVector[int]()
	for i := 0; i < 200; i++ {
		big.Push(i)
	}
	s := big.String()
	assert.Contains(t, s, " 99")
	assert.NotContains(t, s, " 100")
	t.Log(s)
}
