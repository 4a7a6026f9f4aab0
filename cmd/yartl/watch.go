package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/neurodesk/yartl/pkg/netcache"
	"github.com/neurodesk/yartl/pkg/watch"
	"github.com/spf13/cobra"
)

var watchCmd = cobra.Command{
	Use:   "watch TEMPLATE CONTEXT",
	Short: "Render a template and render it again whenever it or its context changes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range args {
			if netcache.IsURL(p) || p == "-" {
				return fmt.Errorf("watch needs local files, got %s", p)
			}
		}

		w, err := watch.New(cfg.Watch.Debounce)
		if err != nil {
			return err
		}
		defer w.Close()
		if err := w.Add(args...); err != nil {
			return err
		}

		rerender := func() {
			dest, err := renderOnce(cmd, args[0], args[1])
			switch {
			case err != nil:
				// Keep watching; the next save may fix it.
				slog.Error("render failed", "error", err)
			case dest != "":
				slog.Info("rendered", "output", dest)
			}
		}
		rerender()

		slog.Info("watching for changes", "template", args[0], "context", args[1])
		err = w.Run(cmd.Context(), func(events []watch.Event) error {
			for _, ev := range events {
				slog.Debug("change", "path", ev.Path, "type", ev.Type)
			}
			rerender()
			return nil
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
