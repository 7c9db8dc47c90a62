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

import "fmt"

// nameGenerator produces names which are guaranteed not to collide with any
// name already in use within a single module's namespace.  Determinism is
// required (spec §5): given the same inputs, the same sequence of fresh
// names must be produced every time, so generation is a pure counter keyed
// by hint rather than anything involving randomness or map iteration order.
type nameGenerator struct {
	used    map[string]bool
	nextIdx map[string]uint
}

// newNameGenerator seeds the generator with every name already used in a
// module's namespace (its ports, its declarations, and its instance names),
// so that a freshly generated name can never collide with one of them.
func newNameGenerator(used map[string]bool) *nameGenerator {
	return &nameGenerator{used: used, nextIdx: make(map[string]uint)}
}

// Fresh returns an unused name derived from hint, reserving it so that
// subsequent calls (even with the same hint) never repeat it.
func (g *nameGenerator) Fresh(hint string) string {
	for {
		idx := g.nextIdx[hint]
		g.nextIdx[hint] = idx + 1
		candidate := fmt.Sprintf("%s_%d", hint, idx)
		//
		if !g.used[candidate] {
			g.used[candidate] = true
			return candidate
		}
	}
}
