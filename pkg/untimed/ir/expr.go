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

import "fmt"

// Expr is the closed sum of expression forms recognised by the core: a
// reference to a named port or signal, a sub-field access thereof, and
// bit-vector literals.  Front-ends may emit richer expressions (arithmetic,
// etc) but the CollectCalls pass only ever inspects the forms below; any
// other expression is treated as opaque and passed through unchanged.
type Expr interface {
	isExpr()
	// String renders this expression in a form suitable for error messages.
	String() string
}

// Ref is a reference to a signal by name: a port, wire, node, register or
// instance-exported signal.
type Ref struct {
	Name string
}

func (Ref) isExpr() {}

// String implements Expr.
func (r Ref) String() string {
	return r.Name
}

// Field is a sub-field access "base.field" (e.g. "ii.inc" or
// "callerPort.enabled").
type Field struct {
	Base  Expr
	Field string
}

func (Field) isExpr() {}

// String implements Expr.
func (f Field) String() string {
	return fmt.Sprintf("%s.%s", f.Base, f.Field)
}

// Literal is a constant bit-vector value of a fixed width.
type Literal struct {
	Width uint
	Value uint64
}

func (Literal) isExpr() {}

// String implements Expr.
func (l Literal) String() string {
	return fmt.Sprintf("%d'd%d", l.Width, l.Value)
}

// RootName returns the first segment of a (possibly nested) reference
// expression: RootName(Field{Field{Ref{"a"},"b"},"c")) == "a".  Returns
// false if the expression is not rooted in a Ref (e.g. a Literal).
func RootName(e Expr) (string, bool) {
	switch v := e.(type) {
	case Ref:
		return v.Name, true
	case Field:
		return RootName(v.Base)
	default:
		return "", false
	}
}

// AsFieldOf returns the field name and true if e is exactly "ref(name).field",
// i.e. a one-level field access rooted at a bare reference to name.
func AsFieldOf(e Expr, name string) (string, bool) {
	f, ok := e.(Field)
	if !ok {
		return "", false
	}
	//
	if r, ok := f.Base.(Ref); ok && r.Name == name {
		return f.Field, true
	}
	//
	return "", false
}
