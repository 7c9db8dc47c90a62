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

// Config holds the small amount of configuration the pass accepts,
// threaded explicitly through Run rather than held as ambient state
// (mirroring corset.CompilationConfig).
type Config struct {
	// WarnOnOrphanWrites, when set, makes the Method Extractor log (via
	// logrus, at Warn level) any top-level connection or invalidate in a
	// module body whose target is not one of the module's own registers or
	// memories.  Statements nested inside conditionals that are not method
	// regions are not inspected.
	// Default behaviour (false) is to silently ignore such writes, matching
	// the front-end's own current behaviour (spec §9 open question).
	WarnOnOrphanWrites bool
}

// DefaultConfig returns the pass's default configuration.
func DefaultConfig() Config {
	return Config{}
}
