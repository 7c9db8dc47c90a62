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

// Package untimed wires the CollectCalls pass (pkg/untimed/collectcalls)
// behind a cobra command, the way pkg/cmd/corset wires the corset compiler
// passes.
package untimed

import (
	"fmt"
	"os"

	"github.com/consensys/go-untimed/pkg/untimed/collectcalls"
	untimedio "github.com/consensys/go-untimed/pkg/untimed/io"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CollectCallsCmd elaborates an untimed-module circuit bundle: it loads a
// gob-encoded untimedio.Bundle, runs the CollectCalls pass, and writes the
// rewritten bundle back out.
var CollectCallsCmd = &cobra.Command{
	Use:   "collect-calls [flags] bundle_file",
	Short: "elaborate untimed-module method calls into concrete instances and wiring.",
	Long: `Runs the CollectCalls pass over a circuit bundle (circuit IR plus
method-IO / method-call annotations) produced by an untimed-module
front-end, emitting the rewritten bundle with submodule instances
materialised and call sites wired.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		warnOrphans := getFlag(cmd, "warn-orphan-writes")
		output := getString(cmd, "output")
		//
		bundle := readBundle(args[0])
		//
		circuit, annotations, err := collectcalls.Run(bundle.Circuit, bundle.Annotations, nil,
			collectcalls.Config{WarnOnOrphanWrites: warnOrphans})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		writeBundle(output, untimedio.Bundle{Circuit: circuit, Annotations: annotations})
	},
}

// getFlag gets an expected boolean flag, or exits if an error arises.  A
// local copy of the teacher's pkg/cmd.GetFlag: importing pkg/cmd directly
// here would cycle back through pkg/cmd/untimed_collect.go's init().
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// getString gets an expected string flag, or exits if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}
	//
	return r
}

func readBundle(filename string) untimedio.Bundle {
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	bundle, err := untimedio.Decode(data)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	return bundle
}

func writeBundle(filename string, bundle untimedio.Bundle) {
	data, err := bundle.Encode()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	if filename == "" {
		os.Stdout.Write(data)
		return
	}
	//
	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	CollectCallsCmd.Flags().BoolP("verbose", "v", false, "print more verbose information")
	CollectCallsCmd.Flags().Bool("warn-orphan-writes", false,
		"log a warning for every top-level connection outside of a method region that does not target a register or memory")
	CollectCallsCmd.Flags().StringP("output", "o", "", "output bundle file (defaults to stdout)")
}
