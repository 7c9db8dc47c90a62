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

// Kind classifies the structural violations the pass can detect.  The pass
// is fail-fast: the first violation detected aborts it, so at most one Kind
// is ever surfaced per run.
type Kind uint8

const (
	// InvalidDeclInMethod identifies a register, memory or instance
	// declaration found inside a method body.
	InvalidDeclInMethod Kind = iota
	// StatefulCallNonDeterminism identifies more than one call, within a
	// single method, to any method of a stateful submodule.
	StatefulCallNonDeterminism
	// UnknownCallee identifies a call annotation naming a module which is
	// not a direct child of the caller.
	UnknownCallee
	// IntraModuleCall identifies a call annotation whose callee parent is
	// the caller module itself.
	IntraModuleCall
	// RecursiveCall identifies a cycle in the inter-method call graph.
	RecursiveCall
	// UnsupportedAbstraction identifies a non-empty "abstracted" request.
	UnsupportedAbstraction
)

// Error is the single typed error the pass raises for every structural
// violation; Message matches the literal strings required by spec §4.2/§4.3.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
