package starlark

import (
	"fmt"
	"log/slog"

	"github.com/neurodesk/yartl/pkg/yartl"
	"go.starlark.net/starlark"
)

// Evaluator runs Starlark scripts whose top-level globals describe a template
// context.
type Evaluator struct {
	thread   *starlark.Thread
	builtins starlark.StringDict
	globals  starlark.StringDict
}

// NewEvaluator creates a new Starlark evaluator
func NewEvaluator() *Evaluator {
	thread := &starlark.Thread{
		Name: "yartl-context",
		Print: func(_ *starlark.Thread, msg string) {
			slog.Info(msg, "source", "starlark")
		},
	}

	return &Evaluator{
		thread:   thread,
		builtins: CreateBuiltins(),
		globals:  make(starlark.StringDict),
	}
}

// SetGlobal sets a global variable in the Starlark environment
func (e *Evaluator) SetGlobal(name string, value yartl.Value) {
	e.globals[name] = ConvertToStarlark(value)
}

func (e *Evaluator) predeclared() starlark.StringDict {
	predeclared := make(starlark.StringDict, len(e.builtins)+len(e.globals))
	for k, v := range e.builtins {
		predeclared[k] = v
	}
	for k, v := range e.globals {
		predeclared[k] = v
	}
	return predeclared
}

// Eval evaluates a Starlark expression and returns the result as a template Value
func (e *Evaluator) Eval(expr string) (yartl.Value, error) {
	val, err := starlark.Eval(e.thread, "<eval>", expr, e.predeclared())
	if err != nil {
		return nil, fmt.Errorf("starlark evaluation error: %w", err)
	}
	out, ok := ConvertFromStarlark(val)
	if !ok {
		return nil, fmt.Errorf("starlark value of type %s has no template form", val.Type())
	}
	return out, nil
}

// ExecFile executes a Starlark file and returns the globals it defined.
func (e *Evaluator) ExecFile(filename string, src any) (starlark.StringDict, error) {
	globals, err := starlark.ExecFile(e.thread, filename, src, e.predeclared())
	if err != nil {
		return nil, fmt.Errorf("starlark execution error: %w", err)
	}

	for k, v := range globals {
		e.globals[k] = v
	}

	return globals, nil
}

// ExecString executes a Starlark script from a string
func (e *Evaluator) ExecString(script string) (starlark.StringDict, error) {
	return e.ExecFile("<script>", script)
}

// LoadContext copies the fields of a context object into the Starlark globals.
func (e *Evaluator) LoadContext(ctx yartl.ObjectValue) {
	for key, value := range ctx {
		e.SetGlobal(key, value)
	}
}

// Context exports the current globals as a context object. Builtins, names
// starting with an underscore, and values without a data form (functions,
// modules) are left out.
func (e *Evaluator) Context() yartl.ObjectValue {
	ctx := make(yartl.ObjectValue, len(e.globals))
	for key, value := range e.globals {
		if !isExportableKey(key) {
			continue
		}
		v, ok := ConvertFromStarlark(value)
		if !ok {
			slog.Debug("skipping starlark global", "name", key, "type", value.Type())
			continue
		}
		ctx[key] = v
	}
	return ctx
}

func isExportableKey(key string) bool {
	switch key {
	case "env":
		return false
	}
	return key != "" && key[0] != '_'
}

// LoadContext runs a Starlark script and returns its exported globals.
func LoadContext(filename string, src []byte) (yartl.Value, error) {
	e := NewEvaluator()
	if _, err := e.ExecFile(filename, src); err != nil {
		return nil, err
	}
	return e.Context(), nil
}
