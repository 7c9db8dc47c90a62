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

// Package annotation provides the two annotation streams the front-end
// attaches to a circuit IR (method-IO bindings and method-call sites), plus
// a passthrough kind for any other annotation the front-end may emit.  The
// CollectCalls pass consumes (filters out) every MethodIO and MethodCall
// annotation; everything else survives into its output unchanged (spec
// §6, property P3).
package annotation

// Role identifies which half of a method call a caller-side port plays.
type Role uint8

const (
	// Arg identifies the argument half of a call port.
	Arg Role = iota
	// Ret identifies the return half of a call port.
	Ret
)

// Annotation is the common interface implemented by every annotation kind.
type Annotation interface {
	isAnnotation()
}

// MethodIO binds a port of Module to a method name.  Invariant (enforced by
// the front-end, assumed here): (Module, MethodName) is unique and Port
// exists on Module.
type MethodIO struct {
	Module     string
	Port       string
	MethodName string
}

func (MethodIO) isAnnotation() {}

// MethodCall binds a caller-side port to a specific callee method
// invocation.  CallSiteIndex distinguishes repeated call ports for the same
// callee method within the caller module.
type MethodCall struct {
	CallerModule  string
	CallerPort    string
	CalleeParent  string
	CalleeMethod  string
	CallSiteIndex uint
	Role          Role
}

func (MethodCall) isAnnotation() {}

// Passthrough wraps any other annotation kind the front-end may emit (e.g. a
// memory zero-init annotation).  The pass never inspects its contents; it
// only guarantees that every Passthrough in its input survives, unchanged
// and in order, into its output.
type Passthrough struct {
	Kind    string
	Payload any
}

func (Passthrough) isAnnotation() {}

// Split partitions a mixed annotation list into its MethodIO entries, its
// MethodCall entries, and everything else (in original relative order
// within each bucket).
func Split(all []Annotation) (io []MethodIO, calls []MethodCall, rest []Annotation) {
	for _, a := range all {
		switch v := a.(type) {
		case MethodIO:
			io = append(io, v)
		case MethodCall:
			calls = append(calls, v)
		default:
			rest = append(rest, a)
		}
	}
	//
	return io, calls, rest
}

// MethodIOFor returns the MethodIO map for a single module: port name ->
// method name.
func MethodIOFor(all []MethodIO, module string) map[string]string {
	m := make(map[string]string)
	//
	for _, a := range all {
		if a.Module == module {
			m[a.Port] = a.MethodName
		}
	}
	//
	return m
}

// MethodCallsFor returns every MethodCall annotation whose CallerModule
// matches module, in original relative order.
func MethodCallsFor(all []MethodCall, module string) []MethodCall {
	var out []MethodCall
	//
	for _, a := range all {
		if a.CallerModule == module {
			out = append(out, a)
		}
	}
	//
	return out
}
