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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consensys/go-untimed/pkg/untimed/annotation"
	"github.com/consensys/go-untimed/pkg/untimed/ir"
)

func TestPlanStatefulChildGetsSingleInstance(t *testing.T) {
	parent := ir.Module{
		Name:  "Counter4BitWithSubModule",
		Ports: []ir.Port{methodPort("io", ir.RetOnly, 0, 4)},
		Body: ir.Block{
			ir.InstanceDecl{Name: "ii", Module: "UntimedInc"},
			methodRegion("io", ir.Block{
				ir.Connect{Lhs: enabledOf("call0"), Rhs: ir.Literal{Width: 1, Value: 1}},
			}),
		},
	}
	//
	circuit := ir.Circuit{Main: parent.Name, Modules: []ir.Module{parent, statefulIncModule("UntimedInc")}}
	anns := []annotation.Annotation{
		annotation.MethodIO{Module: parent.Name, Port: "io", MethodName: "inc"},
		annotation.MethodIO{Module: "UntimedInc", Port: "io", MethodName: "inc"},
		annotation.MethodCall{CallerModule: parent.Name, CallerPort: "call0", CalleeParent: "UntimedInc",
			CalleeMethod: "inc"},
	}
	//
	out, _, err := run(circuit, anns)
	//
	assert.NoError(t, err)
	//
	rewritten, _ := out.Module(parent.Name)
	decls := rewritten.InstanceDecls()
	assert.Len(t, decls, 1)
	assert.Equal(t, "ii", decls[0].Name)
	assert.Equal(t, "UntimedInc", decls[0].Module)
}

func TestPlanStatelessChildDuplicatedPerCall(t *testing.T) {
	parent := ir.Module{
		Name:  "ParentWithTwoCalls",
		Ports: []ir.Port{methodPort("io", ir.RetOnly, 0, 32)},
		Body: ir.Block{
			ir.InstanceDecl{Name: "ii", Module: "UntimedIncNoState"},
			methodRegion("io", ir.Block{
				ir.Connect{Lhs: enabledOf("call0"), Rhs: ir.Literal{Width: 1, Value: 1}},
				ir.Connect{Lhs: enabledOf("call1"), Rhs: ir.Literal{Width: 1, Value: 1}},
			}),
		},
	}
	//
	circuit := ir.Circuit{Main: parent.Name, Modules: []ir.Module{parent, incModule("UntimedIncNoState")}}
	anns := []annotation.Annotation{
		annotation.MethodIO{Module: parent.Name, Port: "io", MethodName: "inc"},
		annotation.MethodIO{Module: "UntimedIncNoState", Port: "io", MethodName: "inc"},
		annotation.MethodCall{CallerModule: parent.Name, CallerPort: "call0", CalleeParent: "UntimedIncNoState",
			CalleeMethod: "inc", CallSiteIndex: 0},
		annotation.MethodCall{CallerModule: parent.Name, CallerPort: "call1", CalleeParent: "UntimedIncNoState",
			CalleeMethod: "inc", CallSiteIndex: 1},
	}
	//
	out, _, err := run(circuit, anns)
	//
	assert.NoError(t, err)
	//
	rewritten, _ := out.Module(parent.Name)
	decls := rewritten.InstanceDecls()
	assert.Len(t, decls, 2)
	assert.Equal(t, "ii", decls[0].Name)
	assert.NotEqual(t, decls[0].Name, decls[1].Name)
	assert.Equal(t, "UntimedIncNoState", decls[1].Module)
}

func TestPlanUnusedStatelessChildOmitted(t *testing.T) {
	parent := ir.Module{
		Name:  "ParentWithUnusedChild",
		Ports: []ir.Port{methodPort("io", ir.ArgAndRet, 1, 1)},
		Body: ir.Block{
			ir.InstanceDecl{Name: "ii", Module: "UntimedIncNoState"},
			methodRegion("io", ir.Block{
				ir.Connect{Lhs: retOf("io"), Rhs: argOf("io")},
			}),
		},
	}
	//
	circuit := ir.Circuit{Main: parent.Name, Modules: []ir.Module{parent, incModule("UntimedIncNoState")}}
	anns := []annotation.Annotation{
		annotation.MethodIO{Module: parent.Name, Port: "io", MethodName: "foo"},
		annotation.MethodIO{Module: "UntimedIncNoState", Port: "io", MethodName: "inc"},
	}
	//
	out, _, err := run(circuit, anns)
	//
	assert.NoError(t, err)
	//
	rewritten, _ := out.Module(parent.Name)
	assert.Empty(t, rewritten.InstanceDecls())
}
