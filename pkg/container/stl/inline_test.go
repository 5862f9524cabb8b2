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
	"unsafe"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mostd/pkg/common/moerr"
	v2 "github.com/matrixorigin/mostd/pkg/util/metric/v2"
)

func TestInlineScenario(t *testing.T) {
	convey.Convey("inline storage of capacity 4", t, func() {
		var s Inline[int, [4]int]
		convey.So(s.Capacity(), convey.ShouldEqual, 4)
		convey.So(s.Len(), convey.ShouldEqual, 0)

		for _, v := range []int{1, 2, 3, 4} {
			Push[int](&s, v)
		}
		convey.So(AsSlice[int](&s), convey.ShouldResemble, []int{1, 2, 3, 4})

		convey.Convey("a fifth push aborts", func() {
			convey.So(func() { Push[int](&s, 5) }, convey.ShouldPanic)
			convey.So(AsSlice[int](&s), convey.ShouldResemble, []int{1, 2, 3, 4})
		})

		convey.Convey("swap_remove then retain", func() {
			convey.So(SwapRemove[int](&s, 0), convey.ShouldEqual, 1)
			convey.So(AsSlice[int](&s), convey.ShouldResemble, []int{4, 2, 3})

			Retain[int](&s, func(v int) bool { return v%2 == 0 })
			convey.So(AsSlice[int](&s), convey.ShouldResemble, []int{4, 2})
			convey.So(s.Buffer()[2:], convey.ShouldResemble, []int{0, 0})
		})
	})
}

func TestInlineCapacityFailure(t *testing.T) {
	var s Inline[string, [2]string]
	before := testutil.ToFloat64(v2.StlInlineCapacityExceededCounter)

	require.NoError(t, TryReserve[string](&s, 2))
	err := TryReserve[string](&s, 3)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrCapacityExceeded))
	require.Equal(t, before+1, testutil.ToFloat64(v2.StlInlineCapacityExceededCounter))

	// exact reservation falls back to the plain one
	err = TryReserveExact[string](&s, 3)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrCapacityExceeded))

	Extend[string](&s, "a", "b")
	require.Error(t, s.TryReserve(1))
	require.Equal(t, 2, s.Len())
}

func TestInlineBufferAliasesValue(t *testing.T) {
	var s Inline[int64, [8]int64]
	buf := s.Buffer()
	require.Equal(t, 8, len(buf))
	require.Equal(t, unsafe.Pointer(&s.buf), unsafe.Pointer(&buf[0]))

	Push[int64](&s, 7)
	require.Equal(t, int64(7), s.buf[0])
	require.Equal(t, uintptr(8*8+unsafe.Sizeof(0)), unsafe.Sizeof(s))
}

func TestInlineSetLen(t *testing.T) {
	var s Inline[int, [3]int]
	requirePanicCode(t, moerr.ErrInvalidState, func() { s.SetLen(4) })
	requirePanicCode(t, moerr.ErrInvalidState, func() { s.SetLen(-1) })
	s.SetLen(3)
	require.Equal(t, 3, s.Len())
}

func TestInlineShrinkIsNoop(t *testing.T) {
	var s Inline[int, [16]int]
	Extend[int](&s, 1, 2)
	ShrinkToFit[int](&s)
	ShrinkTo[int](&s, 1)
	require.Equal(t, 16, s.Capacity())
	require.Equal(t, "Inline:Len=2;Cap=16", s.String())

	s.Close()
	require.Equal(t, 0, s.Len())
}

func TestInlineMenu(t *testing.T) {
	require.Equal(t, 1, new(Inline[int, [1]int]).Capacity())
	require.Equal(t, 96, new(Inline[byte, [96]byte]).Capacity())
	require.Equal(t, 4096, new(Inline[byte, [4096]byte]).Capacity())

	type slots [24]uint32
	require.Equal(t, 24, new(Inline[uint32, slots]).Capacity())
}
