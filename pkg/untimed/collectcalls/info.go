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

// StateRef identifies a single piece of local state (a register or a
// memory) discovered by the State Scanner.  For a register, Type is the
// register's own type and Depth is 1.  For a memory of depth D and element
// type T, Type is a bundle whose single "elem" field has type T, and Depth
// is D.
type StateRef struct {
	Name  string
	Type  ir.Type
	Depth uint // 1 for a register; the memory's depth for a memory
}

// CallInfo records a single submodule method invocation discovered within a
// method body.
type CallInfo struct {
	CalleeParent   string
	CalleeMethod   string
	CallerPortName string
}

// MethodInfo is the per-method summary produced by the Method Extractor.
type MethodInfo struct {
	Name       string
	IOPortName string
	Shape      ir.MethodShape
	// Writes is the set of top-level signal names this method's body
	// connects or invalidates, excluding local names, the method's own IO
	// port, and call ports.
	Writes map[string]bool
	// Calls is the ordered (first-occurrence per callee port), possibly
	// repeating, list of submodule calls this method's body contains.
	Calls []CallInfo
}

// ModuleInfo is the per-module summary produced bottom-up by the pipeline.
// Once constructed it is never mutated (spec §3 lifecycle).
type ModuleInfo struct {
	Name       string
	LocalState []StateRef
	Methods    []MethodInfo
	Submodules []*ModuleInfo
	hasState   bool
}

// NewModuleInfo constructs a ModuleInfo, computing hasState once from the
// given local state and the already-computed hasState of every submodule
// summary (spec §3: hasState is transitive through the whole subtree).
func NewModuleInfo(name string, localState []StateRef, methods []MethodInfo, submodules []*ModuleInfo) *ModuleInfo {
	hasState := len(localState) > 0
	//
	for _, sub := range submodules {
		hasState = hasState || sub.HasState()
	}
	//
	return &ModuleInfo{
		Name:       name,
		LocalState: localState,
		Methods:    methods,
		Submodules: submodules,
		hasState:   hasState,
	}
}

// HasState reports whether this module, or any module transitively beneath
// it, declares at least one register or memory (spec §3, P5).
func (m *ModuleInfo) HasState() bool {
	return m.hasState
}

// Submodule looks up a direct child summary by name.
func (m *ModuleInfo) Submodule(name string) (*ModuleInfo, bool) {
	for _, sub := range m.Submodules {
		if sub.Name == name {
			return sub, true
		}
	}
	//
	return nil, false
}

// Method looks up a method summary by name.
func (m *ModuleInfo) Method(name string) (MethodInfo, bool) {
	for _, mi := range m.Methods {
		if mi.Name == name {
			return mi, true
		}
	}
	//
	return MethodInfo{}, false
}
