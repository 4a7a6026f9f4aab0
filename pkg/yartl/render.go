// Package yartl implements a small template language: literal text with
// {{ expr }}, {{ for x in path }}...{{ end }} and
// {{ if cond }}...{{ else }}...{{ end }} directives, rendered against a
// JSON-like context.
//
// Rendering is a pure function of the template and context. A compiled
// Template holds no mutable state and may be executed concurrently.
package yartl

// Template is a parsed template ready to execute.
type Template struct {
	Name string
	prog *Program
}

// Compile tokenizes and parses src.
func Compile(name, src string) (*Template, error) {
	prog, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	return &Template{Name: name, prog: prog}, nil
}

// Program returns the parsed tree.
func (t *Template) Program() *Program { return t.prog }

// Execute renders the template against ctx.
func (t *Template) Execute(ctx Value) (string, error) {
	return Execute(t.prog, ctx)
}

// Render renders template against a JSON context document. A malformed
// document fails with *ContextError before the template is looked at.
func Render(template, contextJSON string) (string, error) {
	ctx, err := ParseContext([]byte(contextJSON))
	if err != nil {
		return "", err
	}
	return RenderValue(template, ctx)
}

// RenderValue renders template against an already decoded context.
func RenderValue(template string, ctx Value) (string, error) {
	prog, err := ParseString(template)
	if err != nil {
		return "", err
	}
	return Execute(prog, ctx)
}
