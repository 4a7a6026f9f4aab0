package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/neurodesk/yartl/pkg/catalog"
	"github.com/neurodesk/yartl/pkg/yartl"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var catalogCmd = cobra.Command{
	Use:   "catalog",
	Short: "Work with the built-in template catalog",
}

var catalogListCmd = cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := catalog.List()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range names {
			e, err := catalog.Get(name)
			if err != nil {
				fmt.Fprintf(tw, "%s\t(invalid: %v)\n", name, err)
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\n", name, e.Description)
		}
		return tw.Flush()
	},
}

var catalogShowCmd = cobra.Command{
	Use:   "show NAME",
	Short: "Print a catalog entry as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := catalog.Get(args[0])
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(e); err != nil {
			return err
		}
		return enc.Close()
	},
}

var catalogRenderCmd = cobra.Command{
	Use:   "render NAME [CONTEXT]",
	Short: "Render a catalog entry with its own context or with CONTEXT",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := catalog.Get(args[0])
		if err != nil {
			return err
		}
		ctx := e.ContextValue()
		if len(args) == 2 {
			if ctx, err = loadContext(cmd, args[1]); err != nil {
				return err
			}
		}
		tpl, err := yartl.CompileFrom(catalog.Loader(), args[0])
		if err != nil {
			return err
		}
		out, err := tpl.Execute(ctx)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", e.Name, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var catalogTestCmd = cobra.Command{
	Use:   "test [NAME...]",
	Short: "Render catalog entries and compare them with their expected output",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if len(names) == 0 {
			var err error
			if names, err = catalog.List(); err != nil {
				return err
			}
		}
		var failed int
		for _, name := range names {
			e, err := catalog.Get(name)
			if err == nil {
				err = e.Check()
			}
			switch {
			case errors.Is(err, catalog.ErrNoExpectation):
				fmt.Fprintf(cmd.OutOrStdout(), "SKIP %s\n", name)
			case err != nil:
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", name, err)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "PASS %s\n", name)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d catalog entries failed", failed)
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(&catalogListCmd)
	catalogCmd.AddCommand(&catalogShowCmd)
	catalogCmd.AddCommand(&catalogRenderCmd)
	catalogCmd.AddCommand(&catalogTestCmd)
}
