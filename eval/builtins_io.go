package eval

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tailcall/cpslisp/ast"
	"github.com/tailcall/cpslisp/printer"
	"github.com/tailcall/cpslisp/reader"
)

// Stdout is where print/puts write. Tests and embedders can redirect it;
// the REPL driver leaves it at the default.
var Stdout io.Writer = os.Stdout

func fopenFlag(mode string) (int, error) {
	switch mode {
	case "r":
		return os.O_RDONLY, nil
	case "w":
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC, nil
	case "a":
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND, nil
	case "r+":
		return os.O_RDWR, nil
	case "w+":
		return os.O_RDWR | os.O_CREATE | os.O_TRUNC, nil
	case "a+":
		return os.O_RDWR | os.O_CREATE | os.O_APPEND, nil
	default:
		return 0, fmt.Errorf("file_open: unknown mode %q", mode)
	}
}

func builtinFileOpen(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("file_open", evaled, 2); err != nil {
		return nil, err
	}
	path, ok := evaled[0].(ast.Str)
	if !ok {
		return nil, fmt.Errorf("file_open: path must be a string")
	}
	mode, ok := evaled[1].(ast.Str)
	if !ok {
		return nil, fmt.Errorf("file_open: mode must be a string")
	}
	flag, err := fopenFlag(string(mode))
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(string(path), flag, 0644)
	if err != nil {
		return nil, fmt.Errorf("file_open: %v", err)
	}
	return &ast.Resource{Name: string(path), Handle: f, Reader: f, Writer: f}, nil
}

func requireResource(op string, v ast.Value) (*ast.Resource, error) {
	r, ok := v.(*ast.Resource)
	if !ok {
		return nil, fmt.Errorf("%s: expected a resource", op)
	}
	return r, nil
}

func builtinFileClose(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("file_close", evaled, 1); err != nil {
		return nil, err
	}
	r, err := requireResource("file_close", evaled[0])
	if err != nil {
		return nil, err
	}
	if !r.Closed {
		if err := r.Handle.Close(); err != nil {
			return nil, fmt.Errorf("file_close: %v", err)
		}
		r.Closed = true
	}
	return ast.Nil, nil
}

func builtinFileWrite(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("file_write", evaled, 2); err != nil {
		return nil, err
	}
	r, err := requireResource("file_write", evaled[0])
	if err != nil {
		return nil, err
	}
	text, ok := evaled[1].(ast.Str)
	if !ok {
		return nil, fmt.Errorf("file_write: expected a string")
	}
	if r.Closed || r.Writer == nil {
		return nil, fmt.Errorf("file_write: resource is not open for writing")
	}
	n, err := r.Writer.Write([]byte(string(text)))
	if err != nil {
		return nil, fmt.Errorf("file_write: %v", err)
	}
	return ast.Int(int64(n)), nil
}

func builtinFileRead(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("file_read", evaled, 1); err != nil {
		return nil, err
	}
	r, err := requireResource("file_read", evaled[0])
	if err != nil {
		return nil, err
	}
	if r.Closed || r.Reader == nil {
		return nil, fmt.Errorf("file_read: resource is not open for reading")
	}
	data, err := io.ReadAll(r.Reader)
	if err != nil {
		return nil, fmt.Errorf("file_read: %v", err)
	}
	return ast.Str(string(data)), nil
}

// builtinLoad reads and evaluates every top-level form in a file, in the
// calling environment, so its defines land in the caller's scope. A
// trailing log symbol argument turns on a per-form slog.Debug trace.
func builtinLoad(evaled []ast.Value, env *ast.Environment) (ast.Value, error) {
	if len(evaled) == 0 {
		return nil, fmt.Errorf("load: missing filename")
	}
	name, ok := evaled[0].(ast.Str)
	if !ok {
		return nil, fmt.Errorf("load: filename must be a string")
	}
	logEnabled := false
	for _, flag := range evaled[1:] {
		if sym, ok := flag.(ast.Sym); ok && sym == "log" {
			logEnabled = true
		}
	}
	data, err := os.ReadFile(string(name))
	if err != nil {
		return nil, fmt.Errorf("load: %v", err)
	}
	sc := reader.NewScanner(string(data))
	var result ast.Value = ast.Nil
	for !sc.AtEnd() {
		form, err := reader.Read(sc)
		if err != nil {
			return nil, fmt.Errorf("load: %v", err)
		}
		if logEnabled {
			slog.Debug("load: evaluating form", "file", string(name), "form", printer.Print(form))
		}
		result, err = EvalTop(form, env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
