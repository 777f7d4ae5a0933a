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
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/a2lang/a2c/internal/codegen"
	"github.com/a2lang/a2c/internal/lang"
)

var command = &cobra.Command{
	Use:  "a2c source [-o output]",
	Long: "a2c compiles A2 source into MERLIN-dialect 6502 assembly for the Apple II.\nPass - as the source to read from stdin.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.PersistentFlags().GetString("output")
		dumpASM, _ := cmd.PersistentFlags().GetBool("asm")
		dumpAST, _ := cmd.PersistentFlags().GetBool("ast")
		dumpSym, _ := cmd.PersistentFlags().GetBool("sym")

		src, err := readSource(args[0])
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		program, err := lang.Parse(src)
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if dumpAST {
			lang.DumpAST(os.Stderr, program)
		}

		compiler := codegen.Generate(program)
		if dumpSym {
			compiler.Table.DumpSymbols(os.Stderr)
		}
		if dumpASM {
			_, _ = fmt.Fprint(os.Stderr, compiler.Builder.String())
		}

		out := io.Writer(os.Stdout)
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				_, _ = fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			defer func() {
				if err := f.Close(); err != nil {
					_, _ = fmt.Fprintln(os.Stderr, err)
					os.Exit(1)
				}
			}()
			out = f
		}
		compiler.Builder.Emit(out)
	},
}

// readSource reads the whole program text from path, or from stdin when
// path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		src, err := io.ReadAll(os.Stdin)
		return string(src), err
	}
	src, err := os.ReadFile(path)
	return string(src), err
}

func main() {
	command.PersistentFlags().StringP("output", "o", "", "output file for the generated assembly (default stdout)")
	command.PersistentFlags().Bool("asm", false, "echo the generated assembly to stderr")
	command.PersistentFlags().Bool("ast", false, "dump the parsed abstract syntax tree to stderr")
	command.PersistentFlags().Bool("sym", false, "dump the symbol table to stderr")
	if err := command.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
