// Copyright 2026 a2c Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag centralizes the compiler's two stderr diagnostic
// categories: fatal errors (process exits 1, never caught) and warnings
// (printed and execution continues).
package diag

import (
	"fmt"
	"os"
)

// Exit is os.Exit by default; tests substitute it to observe fatal calls
// without killing the test binary.
var Exit = os.Exit

// Fatalf prints "fatal: <msg>" to stderr and terminates the process.
// Compilation never recovers from a fatal condition.
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal: "+format+"\n", args...)
	Exit(1)
}

// Warnf prints "warning: <msg>" to stderr and returns.
func Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// Require calls Fatalf with format/args when condition is false.
func Require(condition bool, format string, args ...any) {
	if !condition {
		Fatalf(format, args...)
	}
}
