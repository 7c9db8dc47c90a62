// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package collectcalls

import "sort"

// sortedSet is an array of unique, sorted strings.  A local, minimal stand-in
// for the front-end's generic set.SortedSet[T cmp.Ordered]: this pass only
// ever needs a sorted set of node IDs, so it keeps the same Insert/Iter
// idiom without pulling in the generic container's wider array/codec
// machinery.
type sortedSet []string

// newSortedSet returns an empty sorted set.
func newSortedSet() *sortedSet {
	return &sortedSet{}
}

// insert adds element to the set, preserving sorted order, if not already
// present.
func (p *sortedSet) insert(element string) {
	data := *p
	i := sort.SearchStrings(data, element)
	//
	if i >= len(data) || data[i] != element {
		ndata := make(sortedSet, len(data)+1)
		copy(ndata, data[:i])
		ndata[i] = element
		copy(ndata[i+1:], data[i:])
		*p = ndata
	}
}

// sortedSetIterator walks a sortedSet's elements in ascending order.
type sortedSetIterator struct {
	items []string
	index int
}

// iter returns an iterator over this set's elements in sorted order.
func (p *sortedSet) iter() *sortedSetIterator {
	return &sortedSetIterator{items: *p}
}

// hasNext reports whether any elements remain to visit.
func (it *sortedSetIterator) hasNext() bool {
	return it.index < len(it.items)
}

// next returns the next element and advances the iterator.
func (it *sortedSetIterator) next() string {
	v := it.items[it.index]
	it.index++
	//
	return v
}
