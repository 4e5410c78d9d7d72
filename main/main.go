// Package main is the entry point for the Tourmaline interpreter.
//
// Invocation (spec.md §6): a single positional argument naming a
// source file (suffix .trm required, other suffixes rejected with a
// non-zero exit), or zero arguments for an interactive prompt. A
// missing file yields a non-zero exit with a diagnostic. A parse or
// execution error during file mode yields a non-zero exit with the
// error text; an unexpected host error additionally emits a backtrace.
package main

import (
	"os"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
	"github.com/mochacinno-dev/tourmaline/builtins"
	"github.com/mochacinno-dev/tourmaline/interp"
	"github.com/mochacinno-dev/tourmaline/repl"
)

var VERSION = "v1.0.0"
var AUTHOR = "mochacinno-dev"
var PROMPT = "tourmaline >>> "

var BANNER = `
 _______                                _ _
|__   __|                              | (_)
   | | ___  _   _ _ __ _ __ ___   __ _| |_ _ __   ___
   | |/ _ \| | | | '__| '_   _ \ / _  | | | '_ \ / _ \
   | | (_) | |_| | |  | | | | | | (_| | | | | | |  __/
   |_|\___/ \__,_|_|  |_| |_| |_|\__,_|_|_|_| |_|\___|
`

var LINE = "----------------------------------------------------------------"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 {
		arg := os.Args[1]

		if arg == "--help" || arg == "-h" {
			showHelp()
			os.Exit(0)
		}
		if arg == "--version" || arg == "-v" {
			showVersion()
			os.Exit(0)
		}

		runFile(arg)
		return
	}

	repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, PROMPT)
	repler.Start(os.Stdin, os.Stdout)
}

func showHelp() {
	cyanColor.Println("Tourmaline - A Small Dynamically-Typed Scripting Language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  tourmaline                    Start interactive prompt")
	yellowColor.Println("  tourmaline <path-to-file.trm>  Execute a Tourmaline file")
	yellowColor.Println("  tourmaline --help             Display this help message")
	yellowColor.Println("  tourmaline --version          Display version information")
	cyanColor.Println("")
	cyanColor.Println("INTERACTIVE MODE:")
	yellowColor.Println("  exit                          Exit the prompt (case-insensitive)")
}

func showVersion() {
	cyanColor.Println("Tourmaline - A Small Dynamically-Typed Scripting Language")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("Author : %s\n", AUTHOR)
}

// runFile reads, enforces the required .trm suffix on, and executes a
// source file, exiting non-zero on any failure per spec.md §6.
func runFile(fileName string) {
	if !strings.HasSuffix(fileName, ".trm") {
		redColor.Fprintf(os.Stderr, "[USAGE ERROR] source file must have a '.trm' suffix, got '%s'\n", fileName)
		os.Exit(1)
	}

	fileContent, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file '%s': %v\n", fileName, err)
		os.Exit(1)
	}

	executeFileWithRecovery(string(fileContent))
}

// executeFileWithRecovery runs source against a fresh Interpreter.
// A returned error (parse or execution failure, spec.md §4.8's error
// kinds) prints just the error text before exiting non-zero; a panic —
// an unexpected host error, not one of Tourmaline's own error kinds —
// additionally prints a backtrace.
func executeFileWithRecovery(source string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n%s\n", recovered, debug.Stack())
			os.Exit(1)
		}
	}()

	rt := builtins.NewRuntime(os.Stdout, os.Stdin)
	in := interp.New(rt)

	if err := in.Run(source); err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
