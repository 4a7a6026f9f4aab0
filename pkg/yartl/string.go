package yartl

import (
	"fmt"
)

// TemplateString is template source embedded in a config or catalog file.
type TemplateString string

func (t TemplateString) Validate() error {
	if _, err := ParseString(string(t)); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	return nil
}

func (t TemplateString) Render(ctx Value) (string, error) {
	prog, err := ParseString(string(t))
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	return Execute(prog, ctx)
}
