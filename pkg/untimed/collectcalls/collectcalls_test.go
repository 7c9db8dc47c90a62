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

// TestRunPureMethodNoStateNoCalls covers scenario 1: a leaf module with a
// single pure method and no local state is summarised and rewritten with no
// instances and no error.
func TestRunPureMethodNoStateNoCalls(t *testing.T) {
	module := incModule("UntimedInc")
	circuit := ir.Circuit{Main: "UntimedInc", Modules: []ir.Module{module}}
	anns := []annotation.Annotation{
		annotation.MethodIO{Module: "UntimedInc", Port: "io", MethodName: "inc"},
	}
	//
	out, rest, err := run(circuit, anns)
	//
	assert.NoError(t, err)
	assert.Empty(t, rest)
	//
	rewritten, ok := out.Module("UntimedInc")
	assert.True(t, ok)
	assert.Empty(t, rewritten.InstanceDecls())
}

// TestRunLocalStateMarksHasState covers scenario 2: a module with a local
// register has state, even with no submodules.
func TestRunLocalStateMarksHasState(t *testing.T) {
	module := statefulIncModule("Counter4Bit")
	circuit := ir.Circuit{Main: "Counter4Bit", Modules: []ir.Module{module}}
	anns := []annotation.Annotation{
		annotation.MethodIO{Module: "Counter4Bit", Port: "io", MethodName: "inc"},
	}
	//
	extracted, _, err := extractAll(circuit, []annotation.MethodIO{{Module: "Counter4Bit", Port: "io",
		MethodName: "inc"}}, nil, DefaultConfig())
	assert.NoError(t, err)
	//
	infos, err := buildAllModuleInfo(circuit, extracted)
	assert.NoError(t, err)
	assert.True(t, infos["Counter4Bit"].HasState())
	//
	_, _, err = run(circuit, anns)
	assert.NoError(t, err)
}

// TestRunStatefulSubmoduleSingleCall covers scenario 3: a parent with a
// stateful submodule called once ends up with exactly one instance wired in,
// the instance declared before the connections that reference it (P1) and
// the enabled/arg defaults preceding any other connection to that port (P2).
func TestRunStatefulSubmoduleSingleCall(t *testing.T) {
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
	circuit := ir.Circuit{Main: parent.Name, Modules: []ir.Module{parent, statefulIncModule("UntimedInc")}}
	anns := []annotation.Annotation{
		annotation.MethodIO{Module: parent.Name, Port: "io", MethodName: "inc"},
		annotation.MethodIO{Module: "UntimedInc", Port: "io", MethodName: "inc"},
		annotation.MethodCall{CallerModule: parent.Name, CallerPort: "call0", CalleeParent: "UntimedInc",
			CalleeMethod: "inc"},
	}
	//
	out, _, err := run(circuit, anns)
	assert.NoError(t, err)
	//
	rewritten, _ := out.Module(parent.Name)
	body := rewritten.Body
	//
	instanceIdx := indexOf(body, func(s ir.Stmt) bool {
		d, ok := s.(ir.InstanceDecl)
		return ok && d.Name == "ii"
	})
	assert.GreaterOrEqual(t, instanceIdx, 0)
	//
	defaultIdx := indexOf(body, func(s ir.Stmt) bool {
		c, ok := s.(ir.Connect)
		return ok && c.Lhs == enabledOf("call0")
	})
	assert.Greater(t, defaultIdx, instanceIdx)
	//
	// the method region (which drives call0.enabled high) must come after
	// the default wiring for call0.
	methodIdx := indexOf(body, func(s ir.Stmt) bool {
		_, ok := s.(ir.Conditional)
		return ok
	})
	assert.Greater(t, methodIdx, defaultIdx)
}

// TestRunPassthroughAnnotationsSurvive covers scenario 9 (property P3): any
// non-MethodIO, non-MethodCall annotation in the input survives unchanged
// and in order into the output, even though the pass never inspects it.
func TestRunPassthroughAnnotationsSurvive(t *testing.T) {
	module := incModule("UntimedInc")
	circuit := ir.Circuit{Main: "UntimedInc", Modules: []ir.Module{module}}
	passthrough := annotation.Passthrough{Kind: "memory-zero-init", Payload: "mem"}
	anns := []annotation.Annotation{
		annotation.MethodIO{Module: "UntimedInc", Port: "io", MethodName: "inc"},
		passthrough,
	}
	//
	_, rest, err := run(circuit, anns)
	assert.NoError(t, err)
	assert.Equal(t, []annotation.Annotation{passthrough}, rest)
}

// TestRunUnsupportedAbstractionRejected covers the contract in spec §6: a
// non-empty abstracted set is rejected outright.
func TestRunUnsupportedAbstractionRejected(t *testing.T) {
	module := incModule("UntimedInc")
	circuit := ir.Circuit{Main: "UntimedInc", Modules: []ir.Module{module}}
	anns := []annotation.Annotation{
		annotation.MethodIO{Module: "UntimedInc", Port: "io", MethodName: "inc"},
	}
	//
	_, _, err := Run(circuit, anns, map[string]bool{"UntimedInc": true}, DefaultConfig())
	assert.Error(t, err)
	//
	cerr, ok := err.(*Error)
	assert.True(t, ok)
	assert.Equal(t, UnsupportedAbstraction, cerr.Kind)
}
