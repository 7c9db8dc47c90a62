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

	"github.com/consensys/go-untimed/pkg/untimed/ir"
)

func TestScanStateEmpty(t *testing.T) {
	refs := scanState(ir.Block{
		ir.WireDecl{Name: "w", Type: ir.BitVector(1)},
	})
	//
	assert.Empty(t, refs)
}

func TestScanStateRegister(t *testing.T) {
	refs := scanState(ir.Block{
		ir.RegisterDecl{Name: "value", Type: ir.BitVector(4), Reset: ir.Literal{Width: 4, Value: 0}},
	})
	//
	assert.Len(t, refs, 1)
	assert.Equal(t, "value", refs[0].Name)
	assert.Equal(t, uint(1), refs[0].Depth)
}

func TestScanStateMemory(t *testing.T) {
	refs := scanState(ir.Block{
		ir.MemoryDecl{Name: "mem", Elem: ir.BitVector(5), Depth: 12},
	})
	//
	assert.Len(t, refs, 1)
	assert.Equal(t, "mem", refs[0].Name)
	assert.Equal(t, uint(12), refs[0].Depth)
}

func TestScanStateNestedInConditional(t *testing.T) {
	refs := scanState(ir.Block{
		ir.Conditional{
			Pred: enabledOf("io"),
			Then: ir.Block{
				ir.RegisterDecl{Name: "inner", Type: ir.BitVector(1)},
			},
		},
	})
	//
	assert.Len(t, refs, 1)
	assert.Equal(t, "inner", refs[0].Name)
}

func TestScanStateIgnoresInstances(t *testing.T) {
	refs := scanState(ir.Block{
		ir.InstanceDecl{Name: "ii", Module: "UntimedInc"},
	})
	//
	assert.Empty(t, refs)
}

func TestScanStateTextualOrder(t *testing.T) {
	refs := scanState(ir.Block{
		ir.RegisterDecl{Name: "a", Type: ir.BitVector(1)},
		ir.Conditional{
			Pred: enabledOf("io"),
			Then: ir.Block{ir.RegisterDecl{Name: "b", Type: ir.BitVector(1)}},
		},
		ir.RegisterDecl{Name: "c", Type: ir.BitVector(1)},
	})
	//
	names := []string{refs[0].Name, refs[1].Name, refs[2].Name}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}
