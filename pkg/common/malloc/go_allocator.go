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

// GoAllocator grants every request; the Go runtime reports real exhaustion
// by itself.
type GoAllocator struct{}

var _ Allocator = new(GoAllocator)

func NewGoAllocator() *GoAllocator {
	return new(GoAllocator)
}

func (*GoAllocator) Allocate(size uint64, _ Hints) (Deallocator, error) {
	return dumbDeallocator, nil
}
