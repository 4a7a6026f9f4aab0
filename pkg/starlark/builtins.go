package starlark

import (
	"os"

	"go.starlark.net/starlark"
)

// CreateBuiltins returns the functions predeclared for context scripts.
func CreateBuiltins() starlark.StringDict {
	return starlark.StringDict{
		"env": starlark.NewBuiltin("env", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			var def starlark.Value = starlark.None
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "default?", &def); err != nil {
				return starlark.None, err
			}
			if v, ok := os.LookupEnv(name); ok {
				return starlark.String(v), nil
			}
			return def, nil
		}),
	}
}
