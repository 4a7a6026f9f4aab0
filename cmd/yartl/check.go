package main

import (
	"fmt"
	"strings"

	"github.com/neurodesk/yartl/pkg/validator"
	"github.com/neurodesk/yartl/pkg/yartl"
	"github.com/spf13/cobra"
)

var checkCmd = cobra.Command{
	Use:   "check TEMPLATE...",
	Short: "Tokenize and parse templates without rendering them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validator.NoDuplicates(args, "templates"); err != nil {
			return err
		}
		failed := 0
		for _, src := range args {
			tpl, err := compileSource(cmd, src)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", src, err)
				continue
			}
			names := yartl.Names(tpl.Program())
			if len(names) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", src)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (uses %s)\n", src, strings.Join(names, ", "))
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d templates failed", failed, len(args))
		}
		return nil
	},
}

var astCmd = cobra.Command{
	Use:   "ast TEMPLATE",
	Short: "Print the parsed syntax tree of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tpl, err := compileSource(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), yartl.Pretty(tpl.Program()))
		return nil
	},
}

var tokensCmd = cobra.Command{
	Use:   "tokens TEMPLATE",
	Short: "Print the token stream of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, data, err := readSource(cmd.Context(), cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		toks, err := yartl.Tokenize(data)
		if err != nil {
			return err
		}
		for _, tok := range toks {
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", tok.Pos, tok)
		}
		return nil
	},
}
