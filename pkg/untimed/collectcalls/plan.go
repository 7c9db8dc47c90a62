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

// InstancePlan records the physical instances the planner decided to
// materialize for a single direct child module.
type InstancePlan struct {
	// Child is the name of the child module being instantiated.
	Child string
	// Names lists the instance names allocated, in order: Names[0] is
	// always the front-end's original instance name for this child (reused
	// rather than regenerated); Names[1:] are freshly generated.
	Names []string
}

// planInstances decides, for every direct child of module, how many
// physical instances to materialize (spec §4.4).
//
//   - a stateful child always gets exactly one instance, reusing the
//     front-end's chosen instance name;
//   - a stateless child gets k instances, where k is the largest number of
//     calls any single method of this module makes to any single method of
//     that child; k == 0 means the child is never called and is omitted
//     entirely.
func planInstances(module ir.Module, info *ModuleInfo, gen *nameGenerator) []InstancePlan {
	var (
		plans     []InstancePlan
		childSeen = make(map[string]bool)
	)
	//
	for _, decl := range module.InstanceDecls() {
		if childSeen[decl.Module] {
			continue
		}
		//
		childSeen[decl.Module] = true
		//
		child, ok := info.Submodule(decl.Module)
		if !ok {
			// Unknown submodules are rejected by the Structural Validator
			// before planning ever runs; this defends against being called
			// out of order.
			continue
		}
		//
		if child.HasState() {
			plans = append(plans, InstancePlan{Child: decl.Module, Names: []string{decl.Name}})
			continue
		}
		//
		k := maxCallCount(info, decl.Module)
		if k == 0 {
			continue
		}
		//
		names := make([]string, k)
		names[0] = decl.Name
		//
		for i := uint(1); i < k; i++ {
			names[i] = gen.Fresh(decl.Module)
		}
		//
		plans = append(plans, InstancePlan{Child: decl.Module, Names: names})
	}
	//
	return plans
}

// maxCallCount returns the largest number of calls, across every method of
// info and every distinct callee method on child, made to a single callee
// method of child.
func maxCallCount(info *ModuleInfo, child string) uint {
	var max uint
	//
	for _, m := range info.Methods {
		counts := make(map[string]uint)
		//
		for _, c := range m.Calls {
			if c.CalleeParent != child {
				continue
			}
			//
			counts[c.CalleeMethod]++
			//
			if counts[c.CalleeMethod] > max {
				max = counts[c.CalleeMethod]
			}
		}
	}
	//
	return max
}
