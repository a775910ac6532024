// Command lispcc is the driver: it loads an optional script file, binds
// any trailing arguments to argv, and either exits or drops into an
// interactive read-eval-print loop, mirroring the teacher's Load and
// ReadEvalPrintLoop but built on peterh/liner for editing and history and
// on log/slog for diagnostics instead of bare fmt.Println.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/tailcall/cpslisp/ast"
	"github.com/tailcall/cpslisp/eval"
	"github.com/tailcall/cpslisp/printer"
	"github.com/tailcall/cpslisp/reader"
)

// logContsFlag implements flag.Value and flag.Value's optional-argument
// convention (IsBoolFlag) so --log-conts works bare and --log-conts=N
// sets the trace depth explicitly.
type logContsFlag struct {
	set   bool
	depth int
}

func (f *logContsFlag) String() string {
	if !f.set {
		return ""
	}
	return strconv.Itoa(f.depth)
}

func (f *logContsFlag) Set(s string) error {
	f.set = true
	if s == "" || s == "true" {
		f.depth = eval.TraceDepth
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("--log-conts: %v", err)
	}
	f.depth = n
	return nil
}

func (f *logContsFlag) IsBoolFlag() bool { return true }

func main() {
	interactive := flag.Bool("i", false, "drop into the REPL after loading a script file")
	logTests := flag.Bool("log-tests", false, "raise the log level so error built-ins and top-level results are logged, not just printed")
	var logConts logContsFlag
	flag.Var(&logConts, "log-conts", "log each trampoline step at Debug level, optionally bounding the rendered form to DEPTH characters")
	flag.Parse()

	level := slog.LevelWarn
	if *logTests {
		level = slog.LevelInfo
	}
	if logConts.set {
		level = slog.LevelDebug
		eval.TraceContinuations = true
		if logConts.depth > 0 {
			eval.TraceDepth = logConts.depth
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	global := ast.NewEnvironment(nil)
	args := flag.Args()

	if len(args) >= 1 {
		global.Define("argv", argvList(args[1:]))
		if err := loadFile(args[0], global, *logTests); err != nil {
			slog.Error("load failed", "file", args[0], "err", err)
			os.Exit(1)
		}
		if !*interactive {
			return
		}
	}

	repl(global, *logTests)
}

func argvList(rest []string) ast.Value {
	vs := make([]ast.Value, len(rest))
	for i, s := range rest {
		vs[i] = ast.Str(s)
	}
	return ast.List(vs...)
}

func loadFile(name string, env *ast.Environment, logTests bool) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	sc := reader.NewScanner(string(data))
	for !sc.AtEnd() {
		form, err := reader.Read(sc)
		if err != nil {
			return err
		}
		result, err := eval.EvalTop(form, env)
		if err != nil {
			return err
		}
		if logTests {
			slog.Info("evaluated", "form", printer.Print(form), "result", printer.Print(result))
		}
	}
	return nil
}

// repl reads forms interactively with line editing and history, echoing
// each result the way the teacher's ReadEvalPrintLoop does, until EOF.
func repl(global *ast.Environment, logTests bool) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	var pending strings.Builder
	for {
		prompt := "> "
		if pending.Len() > 0 {
			prompt = "| "
		}
		text, err := line.Prompt(prompt)
		if err != nil {
			fmt.Println("Bye. Have a nice day :)")
			return
		}
		line.AppendHistory(text)
		pending.WriteString(text)
		pending.WriteByte('\n')

		if parenBalance(pending.String()) > 0 {
			continue // still inside an open list; keep prompting with "| "
		}

		sc := reader.NewScanner(pending.String())
		pending.Reset()
		for !sc.AtEnd() {
			form, err := reader.Read(sc)
			if err != nil {
				fmt.Println(err)
				break
			}
			result, err := eval.EvalTop(form, global)
			if err != nil {
				fmt.Println(err)
				if logTests {
					slog.Info("error", "form", printer.Print(form), "err", err)
				}
				continue
			}
			fmt.Println(printer.Print(result))
			if logTests {
				slog.Info("evaluated", "form", printer.Print(form), "result", printer.Print(result))
			}
		}
	}
}

// parenBalance counts unclosed '(' in s, skipping over string literals and
// line comments so parens mentioned inside either do not confuse the
// REPL's multi-line continuation prompt.
func parenBalance(s string) int {
	depth := 0
	inString := false
	inComment := false
	for _, c := range s {
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == ';':
			inComment = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		}
	}
	return depth
}
