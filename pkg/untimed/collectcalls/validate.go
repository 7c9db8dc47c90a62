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
	"fmt"
	"strings"

	"github.com/consensys/go-untimed/pkg/untimed/annotation"
	"github.com/consensys/go-untimed/pkg/untimed/ir"
)

// validateKnownCallees enforces rule 1 of spec §4.3: every CallInfo's
// CalleeParent must be the name of a direct child submodule of module.
func validateKnownCallees(module ir.Module, info *ModuleInfo) error {
	children := make(map[string]bool)
	//
	for _, decl := range module.InstanceDecls() {
		children[decl.Module] = true
	}
	//
	for _, m := range info.Methods {
		for _, c := range m.Calls {
			if !children[c.CalleeParent] {
				return &Error{
					Kind: UnknownCallee,
					Message: fmt.Sprintf("[%s.%s] unknown submodule %s",
						module.Name, m.Name, c.CalleeParent),
				}
			}
		}
	}
	//
	return nil
}

// validateStatefulDeterminism enforces rule 2 of spec §4.3: within a single
// method, at most one call may target any method of a stateful submodule.
func validateStatefulDeterminism(module ir.Module, info *ModuleInfo) error {
	for _, m := range info.Methods {
		byParent := make(map[string][]CallInfo)
		//
		for _, c := range m.Calls {
			byParent[c.CalleeParent] = append(byParent[c.CalleeParent], c)
		}
		//
		for parent, calls := range byParent {
			child, ok := info.Submodule(parent)
			if !ok || !child.HasState() || len(calls) <= 1 {
				continue
			}
			//
			names := make([]string, len(calls))
			for i, c := range calls {
				names[i] = c.CalleeMethod
			}
			//
			return &Error{
				Kind: StatefulCallNonDeterminism,
				Message: fmt.Sprintf(
					"[%s.%s] cannot call more than one method of stateful submodule %s. Detected calls: %s",
					module.Name, m.Name, parent, strings.Join(names, ", ")),
			}
		}
	}
	//
	return nil
}

// validateNoIntraModuleCalls enforces rule 3 of spec §4.3, once globally
// over the union of every MethodCall annotation in the program.
func validateNoIntraModuleCalls(calls []annotation.MethodCall) error {
	for _, c := range calls {
		if c.CalleeParent == c.CallerModule {
			return &Error{
				Kind:    IntraModuleCall,
				Message: "currently, only calls to submodules are supported",
			}
		}
	}
	//
	return nil
}

// nodeID identifies a method uniquely across the whole program, for the
// purposes of recursion detection.
func nodeID(module, method string) string {
	return module + "." + method
}

// validateNoRecursion enforces rule 4 of spec §4.3: the inter-method call
// graph (node = method, edge = call) must be acyclic.  methods maps each
// module's name to its extracted MethodInfo list, which is sufficient to
// build every edge since each MethodInfo.Calls already names the callee
// module and method directly.
func validateNoRecursion(methods map[string][]MethodInfo) error {
	graph, nodes := buildCallGraph(methods)
	visited := make(map[string]uint8) // 0=unvisited,1=in-progress,2=done
	//
	// Iterating nodes via the sorted set keeps the scan order (and thus
	// which cycle is reported first, were more than one to exist)
	// deterministic across runs (spec §5).
	it := nodes.iter()
	//
	for it.hasNext() {
		n := it.next()
		//
		if visited[n] == 0 && hasCycle(n, graph, visited) {
			return &Error{Kind: RecursiveCall, Message: "recursive calls are not allowed"}
		}
	}
	//
	return nil
}

// buildCallGraph assembles the inter-method call graph as an adjacency map
// of sorted edge sets, plus the sorted set of every node, for deterministic
// iteration without a manual sort.
func buildCallGraph(methods map[string][]MethodInfo) (map[string]*sortedSet, *sortedSet) {
	graph := make(map[string]*sortedSet)
	nodes := newSortedSet()
	//
	for mod, ms := range methods {
		for _, m := range ms {
			from := nodeID(mod, m.Name)
			nodes.insert(from)
			//
			edges, ok := graph[from]
			if !ok {
				edges = newSortedSet()
				graph[from] = edges
			}
			//
			for _, c := range m.Calls {
				edges.insert(nodeID(c.CalleeParent, c.CalleeMethod))
			}
		}
	}
	//
	return graph, nodes
}

// hasCycle performs a DFS with an explicit recursion stack (encoded via the
// visited states 1=in-progress) to detect a cycle reachable from n.
func hasCycle(n string, graph map[string]*sortedSet, visited map[string]uint8) bool {
	visited[n] = 1
	//
	if edges, ok := graph[n]; ok {
		it := edges.iter()
		//
		for it.hasNext() {
			next := it.next()
			//
			switch visited[next] {
			case 1:
				return true
			case 0:
				if hasCycle(next, graph, visited) {
					return true
				}
			}
		}
	}
	//
	visited[n] = 2
	//
	return false
}
