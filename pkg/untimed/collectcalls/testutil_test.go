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
	"github.com/consensys/go-untimed/pkg/untimed/annotation"
	"github.com/consensys/go-untimed/pkg/untimed/ir"
)

// methodPort builds the bundle port for a method IO port with the given
// shape and arg/ret widths.
func methodPort(name string, shape ir.MethodShape, argWidth, retWidth uint) ir.Port {
	return ir.Port{Name: name, Dir: ir.In, Type: ir.MethodBundle(shape, argWidth, retWidth)}
}

// callPort builds the bundle port for a caller-side call port, which has
// the same enabled/arg/ret shape as the callee method it targets.
func callPort(name string, shape ir.MethodShape, argWidth, retWidth uint) ir.Port {
	return methodPort(name, shape, argWidth, retWidth)
}

func enabledOf(port string) ir.Expr {
	return ir.Field{Base: ir.Ref{Name: port}, Field: "enabled"}
}

func argOf(port string) ir.Expr {
	return ir.Field{Base: ir.Ref{Name: port}, Field: "arg"}
}

func retOf(port string) ir.Expr {
	return ir.Field{Base: ir.Ref{Name: port}, Field: "ret"}
}

// methodRegion builds a Conditional method region gated on port.enabled.
func methodRegion(port string, then ir.Block) ir.Conditional {
	return ir.Conditional{Pred: enabledOf(port), Then: then}
}

func run(circuit ir.Circuit, anns []annotation.Annotation) (ir.Circuit, []annotation.Annotation, error) {
	return Run(circuit, anns, nil, DefaultConfig())
}

// findInstanceDecls returns every InstanceDecl in a module's top-level body.
func findInstanceDecls(m ir.Module) []ir.InstanceDecl {
	return m.InstanceDecls()
}

// indexOf returns the index of the first top-level statement in body for
// which pred holds, or -1 if there is none.
func indexOf(body ir.Block, pred func(ir.Stmt) bool) int {
	for i, s := range body {
		if pred(s) {
			return i
		}
	}
	//
	return -1
}
