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

	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-untimed/pkg/untimed/annotation"
	"github.com/consensys/go-untimed/pkg/untimed/ir"
)

// callPortInfo is the subset of a MethodCall annotation the extractor needs
// to turn a "ref(C).enabled" write into a CallInfo.
type callPortInfo struct {
	calleeParent string
	calleeMethod string
}

// extractMethods locates every method region in module's body and returns
// one MethodInfo per region matched against ioMap (port name -> method
// name).  callPorts indexes every call-port name this module uses as a
// caller, per the front-end's MethodCall annotations.
func extractMethods(module ir.Module, ioMap map[string]string, callPorts map[string]callPortInfo,
	cfg Config) ([]MethodInfo, error) {
	//
	var methods []MethodInfo
	//
	stateNames := stateNameSet(module.Body)
	//
	for _, s := range module.Body {
		cond, ok := s.(ir.Conditional)
		if !ok {
			warnIfOrphanWrite(module.Name, s, stateNames, cfg)
			continue
		}
		//
		port, methodName, ok := matchMethodRegion(cond, ioMap)
		if !ok {
			continue
		}
		//
		info, err := extractMethodRegion(module.Name, methodName, port, cond, callPorts, cfg)
		if err != nil {
			return nil, err
		}
		//
		if p, ok := module.Port(port); ok {
			info.Shape = shapeOf(p.Type)
		}
		//
		methods = append(methods, info)
	}
	//
	return methods, nil
}

// matchMethodRegion checks whether cond is a method region: predicate
// ref(P).enabled for some P in ioMap, and an empty else-block.  Non-matching
// conditionals are silently ignored (spec §4.2): other gating is permitted
// elsewhere in a module body.
func matchMethodRegion(cond ir.Conditional, ioMap map[string]string) (port, methodName string, ok bool) {
	f, isField := cond.Pred.(ir.Field)
	if !isField || f.Field != "enabled" {
		return "", "", false
	}
	//
	ref, isRef := f.Base.(ir.Ref)
	if !isRef {
		return "", "", false
	}
	//
	name, known := ioMap[ref.Name]
	if !known {
		return "", "", false
	}
	//
	if len(cond.Else) != 0 {
		return "", "", false
	}
	//
	return ref.Name, name, true
}

// extractMethodRegion performs the within-region analysis of spec §4.2 for
// a single matched method region.
func extractMethodRegion(moduleName, methodName, port string, cond ir.Conditional,
	callPorts map[string]callPortInfo, cfg Config) (MethodInfo, error) {
	//
	locals := collectLocalNames(cond.Then)
	//
	var (
		writes   = make(map[string]bool)
		calls    []CallInfo
		callSeen = make(map[string]bool)
		walkErr  error
	)
	//
	cond.Then.Walk(func(s ir.Stmt) bool {
		if walkErr != nil {
			return false
		}
		//
		switch d := s.(type) {
		case ir.RegisterDecl:
			walkErr = forbiddenDeclError("register", d.Name, methodName, moduleName)
			return false
		case ir.MemoryDecl:
			walkErr = forbiddenDeclError("memory", d.Name, methodName, moduleName)
			return false
		case ir.InstanceDecl:
			walkErr = forbiddenDeclError("instance", d.Name, methodName, moduleName)
			return false
		case ir.Connect:
			classifyWrite(d.Lhs, port, locals, callPorts, callSeen, &calls, writes)
		case ir.Invalidate:
			classifyWrite(d.Lhs, port, locals, callPorts, callSeen, &calls, writes)
		}
		//
		return true
	})
	//
	if walkErr != nil {
		return MethodInfo{}, walkErr
	}
	//
	log.WithFields(log.Fields{"module": moduleName, "method": methodName}).Debug("method region extracted")
	//
	return MethodInfo{
		Name:       methodName,
		IOPortName: port,
		Shape:      ir.ArgAndRet,
		Writes:     writes,
		Calls:      calls,
	}, nil
}

// stateNameSet indexes scanState's result by name, for the orphan-write
// check below: a top-level write to a module's own register or memory is
// expected (that is how state gets its next value) and never a warning.
func stateNameSet(body ir.Block) map[string]bool {
	names := make(map[string]bool)
	//
	for _, ref := range scanState(body) {
		names[ref.Name] = true
	}
	//
	return names
}

// warnIfOrphanWrite logs a Warn-level diagnostic for a top-level Connect or
// Invalidate whose target is neither local state nor (necessarily) anything
// else the pass understands: such a write sits outside every method region,
// so no method's Writes set will ever account for it (spec §9).
func warnIfOrphanWrite(moduleName string, s ir.Stmt, stateNames map[string]bool, cfg Config) {
	if !cfg.WarnOnOrphanWrites {
		return
	}
	//
	var lhs ir.Expr
	//
	switch d := s.(type) {
	case ir.Connect:
		lhs = d.Lhs
	case ir.Invalidate:
		lhs = d.Lhs
	default:
		return
	}
	//
	root, ok := ir.RootName(lhs)
	if !ok || stateNames[root] {
		return
	}
	//
	log.WithFields(log.Fields{"module": moduleName, "target": root}).Warn("connection outside method region")
}

// shapeOf derives a MethodShape from a method IO port's bundle type.
func shapeOf(t ir.Type) ir.MethodShape {
	_, hasArg := t.Fields["arg"]
	_, hasRet := t.Fields["ret"]
	//
	switch {
	case hasArg && hasRet:
		return ir.ArgAndRet
	case hasArg:
		return ir.ArgOnly
	case hasRet:
		return ir.RetOnly
	default:
		return ir.NoArgNoRet
	}
}

// classifyWrite classifies a single lvalue appearing in a Connect or
// Invalidate within a method region: either it is a call-enable write (lhs
// is ref(C).enabled for a known call port C), or its root name is recorded
// in writes unless it is local, the method's own IO port, or any known call
// port.
func classifyWrite(lhs ir.Expr, ioPort string, locals map[string]bool, callPorts map[string]callPortInfo,
	callSeen map[string]bool, calls *[]CallInfo, writes map[string]bool) {
	//
	if field, ok := lhs.(ir.Field); ok && field.Field == "enabled" {
		if ref, ok := field.Base.(ir.Ref); ok {
			if info, known := callPorts[ref.Name]; known {
				if !callSeen[ref.Name] {
					callSeen[ref.Name] = true
					*calls = append(*calls, CallInfo{
						CalleeParent:   info.calleeParent,
						CalleeMethod:   info.calleeMethod,
						CallerPortName: ref.Name,
					})
				}
				//
				return
			}
		}
	}
	//
	root, ok := ir.RootName(lhs)
	if !ok {
		return
	}
	//
	if locals[root] || root == ioPort {
		return
	}
	//
	if _, isCallPort := callPorts[root]; isCallPort {
		return
	}
	//
	writes[root] = true
}

// collectLocalNames gathers every name introduced by a node or wire
// declaration anywhere within a method region, including nested conditional
// arms.
func collectLocalNames(body ir.Block) map[string]bool {
	locals := make(map[string]bool)
	//
	body.Walk(func(s ir.Stmt) bool {
		switch d := s.(type) {
		case ir.NodeDecl:
			locals[d.Name] = true
		case ir.WireDecl:
			locals[d.Name] = true
		}
		//
		return true
	})
	//
	return locals
}

func forbiddenDeclError(kind, name, method, module string) error {
	return &Error{
		Kind: InvalidDeclInMethod,
		Message: fmt.Sprintf("cannot create a %s `%s` in method %s of %s",
			kind, name, method, module),
	}
}

// buildCallPortIndex indexes the MethodCall annotations belonging to a
// single caller module by caller port name.  When both an Arg and a Ret
// annotation exist for the same port (the common case), they agree on
// CalleeParent/CalleeMethod, so the first one encountered is representative.
func buildCallPortIndex(calls []annotation.MethodCall) map[string]callPortInfo {
	idx := make(map[string]callPortInfo)
	//
	for _, c := range calls {
		if _, ok := idx[c.CallerPort]; !ok {
			idx[c.CallerPort] = callPortInfo{calleeParent: c.CalleeParent, calleeMethod: c.CalleeMethod}
		}
	}
	//
	return idx
}
