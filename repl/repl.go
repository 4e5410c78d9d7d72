// Package repl implements Tourmaline's interactive prompt (spec.md §6):
// a line-at-a-time loop that feeds every line to one shared Interpreter,
// so state — variables, functions, imports — persists across the
// session exactly as it would across lines of the same file.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mochacinno-dev/tourmaline/builtins"
	"github.com/mochacinno-dev/tourmaline/interp"
)

// Color definitions for REPL output, carried over from the interpreter
// this one was adapted from: blue for chrome, yellow informational,
// red for errors, green for the banner, cyan for instructions.
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic pieces of an interactive session — banner,
// version, prompt — so main can configure them without repl knowing
// about command-line flags.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	Prompt  string
}

// NewRepl creates and initializes a new REPL instance.
func NewRepl(banner, version, author, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type a line of Tourmaline and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Type 'exit' to quit.")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop: one Interpreter is built here and
// shared across every line read, so `let`, `function`, and `import`
// effects from earlier lines are visible to later ones (spec.md §6:
// input equal to "exit", case-insensitive, terminates; errors are
// printed and the loop continues).
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	rt := builtins.NewRuntime(writer, reader)
	in := interp.New(rt)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)
		r.executeWithRecovery(writer, line, in)
	}
}

// executeWithRecovery runs one line against the shared Interpreter with
// panic recovery, the same boundary the teacher draws between a single
// bad statement and a crash of the whole session.
func (r *Repl) executeWithRecovery(writer io.Writer, line string, in *interp.Interpreter) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	if err := in.Run(line); err != nil {
		redColor.Fprintf(writer, "%s\n", err)
	}
}
