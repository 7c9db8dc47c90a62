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

// Package collectcalls implements the CollectCalls pass: it elaborates an
// untimed-module circuit IR into module summaries (per-module state and
// per-method writes/calls), validates the structural rules of the module
// hierarchy, decides how many physical instances of each submodule are
// required, and rewrites the circuit with instances declared, default
// wiring inserted, and call ports connected to those instances.
package collectcalls

import (
	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-untimed/pkg/untimed/annotation"
	"github.com/consensys/go-untimed/pkg/untimed/ir"
)

// Run executes the full CollectCalls pass over circuit, consuming the given
// mixed annotation list.  abstracted must be empty; any non-empty value is
// rejected per spec §6 (the contract currently accepts only the empty set).
func Run(circuit ir.Circuit, annotations []annotation.Annotation, abstracted map[string]bool,
	cfg Config) (ir.Circuit, []annotation.Annotation, error) {
	//
	if len(abstracted) != 0 {
		return ir.Circuit{}, nil, &Error{
			Kind:    UnsupportedAbstraction,
			Message: "TODO: allow submodules to be abstracted",
		}
	}
	//
	ioAnns, callAnns, rest := annotation.Split(annotations)
	//
	if err := validateNoIntraModuleCalls(callAnns); err != nil {
		return ir.Circuit{}, nil, err
	}
	//
	extracted, callPortIndex, err := extractAll(circuit, ioAnns, callAnns, cfg)
	if err != nil {
		return ir.Circuit{}, nil, err
	}
	//
	if err := validateNoRecursion(extracted); err != nil {
		return ir.Circuit{}, nil, err
	}
	//
	infos, err := buildAllModuleInfo(circuit, extracted)
	if err != nil {
		return ir.Circuit{}, nil, err
	}
	//
	rewritten, err := rewriteAll(circuit, infos, callPortIndex)
	if err != nil {
		return ir.Circuit{}, nil, err
	}
	//
	return circuit.WithModules(rewritten), rest, nil
}

// extractAll runs the Method Extractor over every module in the circuit,
// independent of hierarchy order (extraction only needs a module's own body
// and its own annotations, never a child's summary).
func extractAll(circuit ir.Circuit, ioAnns []annotation.MethodIO, callAnns []annotation.MethodCall,
	cfg Config) (map[string][]MethodInfo, map[string]map[string]callPortInfo, error) {
	//
	extracted := make(map[string][]MethodInfo, len(circuit.Modules))
	callPortIndex := make(map[string]map[string]callPortInfo, len(circuit.Modules))
	//
	for _, module := range circuit.Modules {
		ioMap := annotation.MethodIOFor(ioAnns, module.Name)
		callPorts := buildCallPortIndex(annotation.MethodCallsFor(callAnns, module.Name))
		//
		methods, err := extractMethods(module, ioMap, callPorts, cfg)
		if err != nil {
			return nil, nil, err
		}
		//
		extracted[module.Name] = methods
		callPortIndex[module.Name] = callPorts
	}
	//
	return extracted, callPortIndex, nil
}

// buildAllModuleInfo builds a ModuleInfo for every module reachable from, or
// declared in, circuit, bottom-up: a module's children are always fully
// summarised (and validated against rules 1 and 2) before the module itself
// is summarised (spec §2 leaf ordering, §3 lifecycle).
func buildAllModuleInfo(circuit ir.Circuit, extracted map[string][]MethodInfo) (map[string]*ModuleInfo, error) {
	infos := make(map[string]*ModuleInfo, len(circuit.Modules))
	building := make(map[string]bool)
	//
	var build func(name string) (*ModuleInfo, error)
	//
	build = func(name string) (*ModuleInfo, error) {
		if info, ok := infos[name]; ok {
			return info, nil
		}
		//
		if building[name] {
			// A cycle here would have already been caught by
			// validateNoRecursion at the method level; this guards against
			// a module instantiating itself, directly or through other
			// modules, with no method calls, which recursion detection
			// would not see.
			return nil, &Error{Kind: RecursiveCall, Message: "recursive calls are not allowed"}
		}
		//
		building[name] = true
		defer delete(building, name)
		//
		module, ok := circuit.Module(name)
		if !ok {
			return nil, &Error{Kind: UnknownCallee, Message: "unknown module " + name}
		}
		//
		localState := scanState(module.Body)
		//
		var submodules []*ModuleInfo
		//
		seen := make(map[string]bool)
		for _, decl := range module.InstanceDecls() {
			if seen[decl.Module] {
				continue
			}
			//
			seen[decl.Module] = true
			//
			sub, err := build(decl.Module)
			if err != nil {
				return nil, err
			}
			//
			submodules = append(submodules, sub)
		}
		//
		info := NewModuleInfo(name, localState, extracted[name], submodules)
		//
		if err := validateKnownCallees(module, info); err != nil {
			return nil, err
		}
		//
		if err := validateStatefulDeterminism(module, info); err != nil {
			return nil, err
		}
		//
		log.WithFields(log.Fields{
			"module":    name,
			"hasState":  info.HasState(),
			"methods":   len(info.Methods),
			"submodule": len(info.Submodules),
		}).Debug("module summarised")
		//
		infos[name] = info
		//
		return info, nil
	}
	//
	for _, module := range circuit.Modules {
		if _, err := build(module.Name); err != nil {
			return nil, err
		}
	}
	//
	return infos, nil
}

// rewriteAll applies the Instance Planner and Rewriter to every module in
// the circuit, producing the full replacement module set (spec §6: the
// output's full set of modules, including transitively rewritten children,
// replaces the original).
func rewriteAll(circuit ir.Circuit, infos map[string]*ModuleInfo,
	callPortIndex map[string]map[string]callPortInfo) ([]ir.Module, error) {
	//
	out := make([]ir.Module, 0, len(circuit.Modules))
	//
	for _, module := range circuit.Modules {
		info := infos[module.Name]
		gen := newNameGenerator(namespaceOf(module))
		plans := planInstances(module, info, gen)
		rewritten := rewriteModule(module, info, plans, callPortIndex[module.Name])
		//
		out = append(out, rewritten)
	}
	//
	return out, nil
}

// namespaceOf seeds a nameGenerator with every name already in use within a
// module, so that freshly generated instance names can never collide with
// an existing port, declaration or instance.
func namespaceOf(module ir.Module) map[string]bool {
	used := make(map[string]bool)
	//
	for _, p := range module.Ports {
		used[p.Name] = true
	}
	//
	module.Body.Walk(func(s ir.Stmt) bool {
		switch d := s.(type) {
		case ir.RegisterDecl:
			used[d.Name] = true
		case ir.MemoryDecl:
			used[d.Name] = true
		case ir.WireDecl:
			used[d.Name] = true
		case ir.NodeDecl:
			used[d.Name] = true
		case ir.InstanceDecl:
			used[d.Name] = true
		}
		//
		return true
	})
	//
	return used
}
