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
package ir

// Module is a named collection of ports and a statement tree.  Modules are
// value types: the rewriter never mutates one in place, it constructs a new
// Module sharing the unchanged Ports slice and a freshly built Body.
type Module struct {
	Name  string
	Ports []Port
	Body  Block
}

// Port looks up a port of this module by name.
func (m Module) Port(name string) (Port, bool) {
	for _, p := range m.Ports {
		if p.Name == name {
			return p, true
		}
	}
	//
	return Port{}, false
}

// WithBody returns a copy of this module with its body replaced, leaving
// the name and port list untouched.
func (m Module) WithBody(body Block) Module {
	return Module{Name: m.Name, Ports: m.Ports, Body: body}
}

// Circuit is a named set of Modules together with the name of the
// designated entry module.
type Circuit struct {
	Main    string
	Modules []Module
}

// Module looks up a module of this circuit by name.
func (c Circuit) Module(name string) (Module, bool) {
	for _, m := range c.Modules {
		if m.Name == name {
			return m, true
		}
	}
	//
	return Module{}, false
}

// MainModule returns the designated main module.  Panics if the circuit is
// malformed and has no module matching Main, which should never happen for
// an input accepted by the Input Assembler.
func (c Circuit) MainModule() Module {
	m, ok := c.Module(c.Main)
	if !ok {
		panic("circuit has no main module: " + c.Main)
	}
	//
	return m
}

// WithModules returns a copy of this circuit with its module list replaced.
func (c Circuit) WithModules(modules []Module) Circuit {
	return Circuit{Main: c.Main, Modules: modules}
}

// InstanceDecls returns, in declaration order, every InstanceDecl appearing
// directly in this module's top-level body (submodule instances are never
// declared inside a conditional region by conforming front-ends or by the
// rewriter).
func (m Module) InstanceDecls() []InstanceDecl {
	var decls []InstanceDecl
	//
	for _, s := range m.Body {
		if d, ok := s.(InstanceDecl); ok {
			decls = append(decls, d)
		}
	}
	//
	return decls
}
