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
	"runtime/debug"
)

const (
	// 0 - 99 is OK. They do not contain info.
	Ok    uint16 = 0
	OkMax uint16 = 99

	// Group 1: Internal errors
	ErrStart    uint16 = 20100
	ErrInternal uint16 = 20101
	ErrOOM      uint16 = 20103

	// Group 2: numeric and index arguments
	ErrOutOfRange uint16 = 20201
	ErrInvalidArg uint16 = 20203

	// Group 3: invalid input
	ErrBadConfig uint16 = 20300

	// Group 4: unexpected state
	ErrInvalidState uint16 = 20400
	// ErrCapacityExceeded a storage could not provide the requested slots,
	// either because it is fixed and full or because its allocator refused.
	ErrCapacityExceeded uint16 = 20480

	// ErrEnd, the max value of MOErrorCode
	ErrEnd uint16 = 65535
)

type moErrorMsgItem struct {
	errorMsgOrFormat string
}

var errorMsgRefer = map[uint16]moErrorMsgItem{
	// Group 1: Internal errors
	ErrStart:    {"internal error: error code start"},
	ErrInternal: {"internal error: %s"},
	ErrOOM:      {"error: out of memory"},

	// Group 2: numeric and index arguments
	ErrOutOfRange: {"out of range: %s, %s"},
	ErrInvalidArg: {"invalid argument %s, bad value %s"},

	// Group 3: invalid input
	ErrBadConfig: {"invalid configuration: %s"},

	// Group 4: unexpected state
	ErrInvalidState:     {"invalid state %s"},
	ErrCapacityExceeded: {"capacity exceeded: requested %d slots, capacity %d"},

	// Group End: max value of MOErrorCode
	ErrEnd: {"internal error: end of errcode code"},
}

func newError(code uint16, args ...any) *Error {
	item, has := errorMsgRefer[code]
	if !has {
		panic(NewInternalError("not exist MOErrorCode: %d", code))
	}
	if len(args) == 0 {
		return &Error{
			code:    code,
			message: item.errorMsgOrFormat,
		}
	}
	return &Error{
		code:    code,
		message: fmt.Sprintf(item.errorMsgOrFormat, args...),
	}
}

type Error struct {
	code    uint16
	message string
	detail  string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Detail() string {
	return e.detail
}

func (e *Error) Display() string {
	if len(e.detail) == 0 {
		return e.message
	}
	return fmt.Sprintf("%s: %s", e.message, e.detail)
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func (e *Error) Succeeded() bool {
	return e.code < OkMax
}

// IsMoErrCode reports whether e carries code rc. A nil error matches Ok.
func IsMoErrCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}

	var me *Error
	if !errors.As(e, &me) {
		// This is not a moerr
		return false
	}
	return me.code == rc
}

// ConvertPanicError converts a recovered panic value to an *Error. Aborts
// raised by this module already panic with *Error and are returned as is.
func ConvertPanicError(v interface{}) *Error {
	if e, ok := v.(*Error); ok {
		return e
	}
	err := newError(ErrInternal, fmt.Sprintf("panic %v", v))
	err.detail = string(debug.Stack())
	return err
}

// ConvertGoError converts a go error into mo error.
// Note here we must return error, because nil error
// is the same as nil *Error -- Go strangeness.
func ConvertGoError(err error) error {
	if err == nil {
		return err
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	e := NewInternalError("convert go error to mo error %v", err)
	e.detail = err.Error()
	return e
}

func NewInternalError(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ErrInternal, xmsg)
}

func NewOOM() *Error {
	return newError(ErrOOM)
}

func NewOutOfRange(typ string, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ErrOutOfRange, typ, xmsg)
}

func NewInvalidArg(arg string, val any) *Error {
	return newError(ErrInvalidArg, arg, fmt.Sprintf("%v", val))
}

func NewBadConfig(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ErrBadConfig, xmsg)
}

func NewInvalidState(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ErrInvalidState, xmsg)
}

func NewCapacityExceeded(requested, capacity int) *Error {
	return newError(ErrCapacityExceeded, requested, capacity)
}

// NewCapacityExceededWithCause is NewCapacityExceeded carrying the reason an
// allocator gave for refusing, in Detail.
func NewCapacityExceededWithCause(requested, capacity int, cause error) *Error {
	err := newError(ErrCapacityExceeded, requested, capacity)
	if cause != nil {
		err.detail = cause.Error()
	}
	return err
}
