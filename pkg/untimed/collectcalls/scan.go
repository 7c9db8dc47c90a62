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

import "github.com/consensys/go-untimed/pkg/untimed/ir"

// scanState enumerates every register and memory declaration anywhere in a
// module body, in textual (depth-first) order.  Instance declarations are
// not state: a stateful submodule is accounted for transitively via
// ModuleInfo.HasState, not by re-exposing its registers here (spec §4.1).
func scanState(body ir.Block) []StateRef {
	var refs []StateRef
	//
	body.Walk(func(s ir.Stmt) bool {
		switch d := s.(type) {
		case ir.RegisterDecl:
			refs = append(refs, StateRef{Name: d.Name, Type: d.Type, Depth: 1})
		case ir.MemoryDecl:
			refs = append(refs, StateRef{
				Name:  d.Name,
				Type:  ir.Type{Fields: map[string]ir.Type{"elem": d.Elem}},
				Depth: d.Depth,
			})
		}
		//
		return true
	})
	//
	return refs
}
