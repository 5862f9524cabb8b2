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

type FuncDeallocator func(hints Hints)

var _ Deallocator = FuncDeallocator(nil)

func (f FuncDeallocator) Deallocate(hints Hints) {
	f(hints)
}

type chainDeallocator []Deallocator

// ChainDeallocator returns a Deallocator calling each of ds in order.
// nil entries are skipped.
func ChainDeallocator(ds ...Deallocator) Deallocator {
	var ret chainDeallocator
	for _, d := range ds {
		if d == nil {
			continue
		}
		if chain, ok := d.(chainDeallocator); ok {
			ret = append(ret, chain...)
			continue
		}
		ret = append(ret, d)
	}
	return ret
}

func (c chainDeallocator) Deallocate(hints Hints) {
	for _, d := range c {
		d.Deallocate(hints)
	}
}

// dumbDeallocator is returned for zero sized requests.
var dumbDeallocator = FuncDeallocator(func(Hints) {})
