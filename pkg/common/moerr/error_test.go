// Copyright 2021 - 2022 Matrix Origin
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

package moerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMoErrCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     uint16
		expected bool
	}{
		{name: "nil is ok", err: nil, code: Ok, expected: true},
		{name: "nil is not internal", err: nil, code: ErrInternal, expected: false},
		{name: "out of range", err: NewOutOfRange("index", "index %d, len %d", 3, 2), code: ErrOutOfRange, expected: true},
		{name: "capacity", err: NewCapacityExceeded(5, 4), code: ErrCapacityExceeded, expected: true},
		{name: "code mismatch", err: NewOOM(), code: ErrCapacityExceeded, expected: false},
		{name: "wrapped", err: fmt.Errorf("push: %w", NewCapacityExceeded(5, 4)), code: ErrCapacityExceeded, expected: true},
		{name: "standard error", err: errors.New("some error"), code: ErrInternal, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMoErrCode(tt.err, tt.code))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "capacity exceeded: requested 5 slots, capacity 4", NewCapacityExceeded(5, 4).Error())
	require.Equal(t, "out of range: index, index 3, len 2", NewOutOfRange("index", "index %d, len %d", 3, 2).Error())
	require.Equal(t, "invalid argument limit, bad value -1", NewInvalidArg("limit", -1).Error())
	require.Equal(t, "error: out of memory", NewOOM().Error())

	err := NewCapacityExceededWithCause(8, 4, NewOOM())
	require.Equal(t, "error: out of memory", err.Detail())
	require.Equal(t, "capacity exceeded: requested 8 slots, capacity 4: error: out of memory", err.Display())
	require.False(t, err.Succeeded())
}

func TestConvertPanicError(t *testing.T) {
	orig := NewOutOfRange("index", "index %d, len %d", 1, 0)
	require.Same(t, orig, ConvertPanicError(orig))

	converted := ConvertPanicError("boom")
	require.Equal(t, ErrInternal, converted.ErrorCode())
	require.Contains(t, converted.Error(), "boom")
	require.NotEmpty(t, converted.Detail())
}

func TestConvertGoError(t *testing.T) {
	require.NoError(t, ConvertGoError(nil))
	orig := NewOOM()
	require.Equal(t, error(orig), ConvertGoError(orig))
	require.True(t, IsMoErrCode(ConvertGoError(errors.New("x")), ErrInternal))
}

func TestUnknownCodePanics(t *testing.T) {
	require.Panics(t, func() { _ = newError(12345) })
}
