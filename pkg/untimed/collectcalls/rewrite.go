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

import (
	"sort"

	"github.com/consensys/go-untimed/pkg/untimed/ir"
)

// zero is the canonical 1-bit "false"/disabled literal used for every
// synthesised default enable connection.
var zero = ir.Literal{Width: 1, Value: 0}

// rewriteModule produces the rewritten body for module, given its own
// summary, its submodule summaries, and the planner's instance decisions
// (spec §4.5).  The original module, its ModuleInfo and the submodule
// lookup are all treated as immutable; a brand new Block is constructed.
func rewriteModule(module ir.Module, info *ModuleInfo, plans []InstancePlan, callPorts map[string]callPortInfo) ir.Module {
	var body ir.Block
	//
	body = append(body, instanceDefaults(plans, info)...)
	body = append(body, callPortDefaults(callPorts)...)
	body = append(body, callSiteWiring(info, plans)...)
	body = append(body, dropInstanceDecls(module.Body)...)
	//
	return module.WithBody(body)
}

// dropInstanceDecls returns body with its top-level InstanceDecl statements
// removed; instanceDefaults already re-emits one declaration per materialized
// instance; without this the front-end's original placeholder declarations
// would survive alongside the rewriter's own, duplicating each instance name.
func dropInstanceDecls(body ir.Block) ir.Block {
	var out ir.Block
	//
	for _, s := range body {
		if _, ok := s.(ir.InstanceDecl); ok {
			continue
		}
		//
		out = append(out, s)
	}
	//
	return out
}

// instanceDefaults emits, for every materialized instance, an instance
// declaration followed by its clock/reset connections and a default
// disabled/invalid state for each of its method IO ports (spec §4.5 item 1,
// invariants P1 and P2: the declaration always precedes any statement
// referencing the instance, and the defaults always precede any other
// connection to that port).
func instanceDefaults(plans []InstancePlan, info *ModuleInfo) ir.Block {
	var body ir.Block
	//
	for _, plan := range plans {
		child, ok := info.Submodule(plan.Child)
		if !ok {
			continue
		}
		//
		for _, name := range plan.Names {
			body = append(body, ir.InstanceDecl{Name: name, Module: plan.Child})
			body = append(body,
				ir.Connect{Lhs: ir.Field{Base: ir.Ref{Name: name}, Field: "clock"}, Rhs: ir.Ref{Name: "clock"}},
				ir.Connect{Lhs: ir.Field{Base: ir.Ref{Name: name}, Field: "reset"}, Rhs: ir.Ref{Name: "reset"}},
			)
			//
			for _, m := range child.Methods {
				portRef := ir.Field{Base: ir.Ref{Name: name}, Field: m.IOPortName}
				body = append(body, ir.Connect{Lhs: ir.Field{Base: portRef, Field: "enabled"}, Rhs: zero})
				//
				if m.Shape.HasArg() {
					body = append(body, ir.Invalidate{Lhs: ir.Field{Base: portRef, Field: "arg"}})
				}
			}
		}
	}
	//
	return body
}

// callPortDefaults emits, for every call port this module uses as a caller,
// a default disabled/invalid state (spec §4.5 item 2).
func callPortDefaults(callPorts map[string]callPortInfo) ir.Block {
	names := sortedKeys(callPorts)
	//
	var body ir.Block
	//
	for _, name := range names {
		body = append(body,
			ir.Connect{Lhs: ir.Field{Base: ir.Ref{Name: name}, Field: "enabled"}, Rhs: zero},
			ir.Invalidate{Lhs: ir.Field{Base: ir.Ref{Name: name}, Field: "arg"}},
		)
	}
	//
	return body
}

// callSiteWiring emits, for every call-site occurrence of every method,
// the connections binding that call site's caller port to the instance
// selected for it by round-robin over the planned instances of its callee
// (spec §4.5 item 3): the instance's enabled/arg sub-fields are driven from
// the caller port, and the caller port's ret sub-field (when present) is
// driven back from the instance.
func callSiteWiring(info *ModuleInfo, plans []InstancePlan) ir.Block {
	instances := make(map[string][]string)
	//
	for _, p := range plans {
		instances[p.Child] = p.Names
	}
	//
	var body ir.Block
	//
	for _, m := range info.Methods {
		counters := make(map[[2]string]uint)
		//
		for _, c := range m.Calls {
			key := [2]string{c.CalleeParent, c.CalleeMethod}
			idx := counters[key]
			counters[key]++
			//
			names := instances[c.CalleeParent]
			if int(idx) >= len(names) {
				// Defensive: the planner guarantees enough instances exist;
				// skip rather than panic if summaries and plans ever
				// disagree.
				continue
			}
			//
			instanceName := names[idx]
			child, _ := info.Submodule(c.CalleeParent)
			calleeShape := ir.ArgAndRet
			calleePort := c.CalleeMethod
			//
			if mi, ok := child.Method(c.CalleeMethod); ok {
				calleeShape = mi.Shape
				calleePort = mi.IOPortName
			}
			//
			callerPort := ir.Ref{Name: c.CallerPortName}
			instancePort := ir.Field{Base: ir.Ref{Name: instanceName}, Field: calleePort}
			//
			body = append(body, ir.Connect{
				Lhs: ir.Field{Base: instancePort, Field: "enabled"},
				Rhs: ir.Field{Base: callerPort, Field: "enabled"},
			})
			//
			if calleeShape.HasArg() {
				body = append(body, ir.Connect{
					Lhs: ir.Field{Base: instancePort, Field: "arg"},
					Rhs: ir.Field{Base: callerPort, Field: "arg"},
				})
			}
			//
			if calleeShape.HasRet() {
				body = append(body, ir.Connect{
					Lhs: ir.Field{Base: callerPort, Field: "ret"},
					Rhs: ir.Field{Base: instancePort, Field: "ret"},
				})
			}
		}
	}
	//
	return body
}

// sortedKeys returns the keys of m in deterministic (lexicographic) order,
// since map iteration order is not stable and the rewriter's output must be
// byte-identical across runs on identical inputs (spec §5).
func sortedKeys(m map[string]callPortInfo) []string {
	keys := make([]string, 0, len(m))
	//
	for k := range m {
		keys = append(keys, k)
	}
	//
	sort.Strings(keys)
	//
	return keys
}
