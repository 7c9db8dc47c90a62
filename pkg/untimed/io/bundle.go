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

// Package io provides gob-based serialisation for the inputs and outputs of
// the CollectCalls pass, so that the driver command (pkg/cmd/untimed) can
// load a circuit bundle from disk, run the pass, and write the result back
// out.  This is deliberately the only place in the repository that touches
// encoding/gob directly, following the same "encode at the boundary" shape
// as pkg/schema/module.go's GobEncode/GobDecode pair.
package io

import (
	"bytes"
	"encoding/gob"

	"github.com/consensys/go-untimed/pkg/untimed/annotation"
	"github.com/consensys/go-untimed/pkg/untimed/ir"
)

func init() {
	gob.Register(ir.RegisterDecl{})
	gob.Register(ir.MemoryDecl{})
	gob.Register(ir.WireDecl{})
	gob.Register(ir.NodeDecl{})
	gob.Register(ir.InstanceDecl{})
	gob.Register(ir.Connect{})
	gob.Register(ir.Invalidate{})
	gob.Register(ir.Conditional{})
	gob.Register(ir.Ref{})
	gob.Register(ir.Field{})
	gob.Register(ir.Literal{})
	gob.Register(annotation.MethodIO{})
	gob.Register(annotation.MethodCall{})
	gob.Register(annotation.Passthrough{})
}

// Bundle is the unit exchanged with the front-end and the downstream
// compiler: a circuit IR together with the annotation streams that
// accompany it.
type Bundle struct {
	Circuit     ir.Circuit
	Annotations []annotation.Annotation
}

// Encode marshals this bundle into its binary gob form.
func (b Bundle) Encode() ([]byte, error) {
	var buf bytes.Buffer
	//
	if err := gob.NewEncoder(&buf).Encode(b); err != nil {
		return nil, err
	}
	//
	return buf.Bytes(), nil
}

// Decode unmarshals a Bundle previously produced by Encode.
func Decode(data []byte) (Bundle, error) {
	var b Bundle
	//
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&b); err != nil {
		return Bundle{}, err
	}
	//
	return b, nil
}
