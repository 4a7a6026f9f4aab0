package yartl

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRenderProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: text without directives renders unchanged
	properties.Property("text round-trip", prop.ForAll(
		func(s string) bool {
			out, err := RenderValue(s, ObjectValue{})
			return err == nil && out == s
		},
		gen.AnyString().SuchThat(func(s string) bool { return !strings.Contains(s, "{{") }),
	))

	// Property: a loop over an array emits its elements in order
	properties.Property("for concatenates elements", prop.ForAll(
		func(items []string) bool {
			arr := make(ArrayValue, len(items))
			for i, it := range items {
				arr[i] = StringValue(it)
			}
			out, err := RenderValue("{{ for i in items }}{{ i }}{{ end }}", ObjectValue{"items": arr})
			return err == nil && out == strings.Join(items, "")
		},
		gen.SliceOf(gen.AlphaString()),
	))

	// Property: rendering the same input twice gives identical output
	properties.Property("idempotent", prop.ForAll(
		func(items []string, flag bool) bool {
			ctx := FromGo(map[string]any{"items": items, "flag": flag})
			tpl := "{{ for i in items }}[{{ i }}]{{ if flag }}+{{ else }}-{{ end }}{{ end }}"
			a, errA := RenderValue(tpl, ctx)
			b, errB := RenderValue(tpl, ctx)
			return errA == nil && errB == nil && a == b
		},
		gen.SliceOf(gen.AlphaString()),
		gen.Bool(),
	))

	// Property: numbers render in a form that parses back to the same value
	properties.Property("number formatting round-trips", prop.ForAll(
		func(f float64) bool {
			ctx, err := ParseContext([]byte(`{"n":` + FormatNumber(f) + `}`))
			if err != nil {
				return false
			}
			n, ok := ctx.(ObjectValue)["n"].(NumberValue)
			return ok && float64(n) == f
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.TestingRun(t)
}
