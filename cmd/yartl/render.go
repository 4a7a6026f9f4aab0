package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/neurodesk/yartl/pkg/netcache"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	renderStdout bool
	renderOutput string
)

var renderCmd = cobra.Command{
	Use:   "render TEMPLATE CONTEXT",
	Short: "Render a template against a context file",
	Long: `Render TEMPLATE against CONTEXT and write the result next to the
template as <stem>_yartle_out.<ext>.

TEMPLATE and CONTEXT may be local paths or http(s) URLs; CONTEXT may be "-"
to read JSON from stdin. The context format follows the file extension:
.json, .yaml/.yml or .star (Starlark globals).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, err := renderOnce(cmd, args[0], args[1])
		if err != nil {
			return err
		}
		if dest != "" {
			slog.Info("rendered", "template", args[0], "output", dest)
		}
		return nil
	},
}

// renderOnce renders template against context and returns the file written,
// or "" when the output went to stdout.
func renderOnce(cmd *cobra.Command, template, context string) (string, error) {
	start := time.Now()
	tpl, err := compileSource(cmd, template)
	if err != nil {
		return "", fmt.Errorf("%s: %w", template, err)
	}
	ctx, err := loadContext(cmd, context)
	if err != nil {
		return "", fmt.Errorf("%s: %w", context, err)
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", template, err)
	}
	slog.Debug("render finished", "template", template, "bytes", len(out), "elapsed", time.Since(start))

	dest := destination(template)
	if dest == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), out)
		return "", err
	}
	return dest, writeOutput(dest, out)
}

func destination(template string) string {
	switch {
	case renderOutput == "-":
		return ""
	case renderOutput != "":
		return renderOutput
	case renderStdout || cfg.Output.Stdout:
		return ""
	case netcache.IsURL(template):
		// Remote templates render into the working directory.
		return cfg.OutputPath(netcache.Name(template))
	default:
		return cfg.OutputPath(template)
	}
}

func addOutputFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&renderStdout, "stdout", false, "Write the result to stdout instead of a file")
	fs.StringVarP(&renderOutput, "output", "o", "", "Write the result to this path (\"-\" for stdout)")
}

func init() {
	addOutputFlags(renderCmd.Flags())
	addOutputFlags(watchCmd.Flags())
}
