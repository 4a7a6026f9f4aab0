package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/neurodesk/yartl/pkg/catalog"
	"github.com/neurodesk/yartl/pkg/config"
	"github.com/neurodesk/yartl/pkg/contextfile"
	"github.com/neurodesk/yartl/pkg/netcache"
	"github.com/neurodesk/yartl/pkg/yartl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string

	v   = viper.New()
	cfg *config.Config
)

var rootCmd = cobra.Command{
	Use:           "yartl",
	Short:         "Render text templates against JSON, YAML or Starlark contexts",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.ErrOrStderr())
	},
}

// initConfig loads configuration and installs the logger. It runs before
// every subcommand.
func initConfig(logOut io.Writer) error {
	config.Defaults(v)
	if err := config.Setup(v, cfgFile); err != nil {
		return err
	}
	if logLevel != "" {
		v.Set("log.level", logLevel)
	}
	c, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = c

	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	var h slog.Handler = slog.NewTextHandler(logOut, opts)
	if cfg.Log.Format == "json" {
		h = slog.NewJSONHandler(logOut, opts)
	}
	slog.SetDefault(slog.New(h))

	catalog.SetTemplateDir(cfg.TemplateDir)
	return nil
}

func cache() *netcache.Cache {
	return netcache.New(cfg.CacheDir)
}

// readSource reads a local file, a URL through the cache, or stdin for "-".
// The returned name keeps the source's extension for format detection.
func readSource(ctx context.Context, in io.Reader, src string) (string, []byte, error) {
	switch {
	case src == "-":
		data, err := io.ReadAll(in)
		return "stdin.json", data, err
	case netcache.IsURL(src):
		data, err := cache().Fetch(ctx, src)
		if err != nil {
			return "", nil, fmt.Errorf("fetching %s: %w", src, err)
		}
		return netcache.Name(src), data, nil
	default:
		data, err := os.ReadFile(src)
		return src, data, err
	}
}

func compileSource(cmd *cobra.Command, src string) (*yartl.Template, error) {
	name, data, err := readSource(cmd.Context(), cmd.InOrStdin(), src)
	if err != nil {
		return nil, err
	}
	return yartl.Compile(name, string(data))
}

func loadContext(cmd *cobra.Command, src string) (yartl.Value, error) {
	name, data, err := readSource(cmd.Context(), cmd.InOrStdin(), src)
	if err != nil {
		return nil, err
	}
	return contextfile.Load(name, data)
}

// writeOutput writes out to path, creating parent directories.
func writeOutput(path, out string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(out), 0o644)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default ./yartl.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("template-dir", "", "Directory of catalog entries that override the built-in ones")
	rootCmd.PersistentFlags().String("cache-dir", "", "Directory for downloaded templates and contexts")
	_ = v.BindPFlag("template_dir", rootCmd.PersistentFlags().Lookup("template-dir"))
	_ = v.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))

	rootCmd.AddCommand(&renderCmd)
	rootCmd.AddCommand(&checkCmd)
	rootCmd.AddCommand(&astCmd)
	rootCmd.AddCommand(&tokensCmd)
	rootCmd.AddCommand(&watchCmd)
	rootCmd.AddCommand(&catalogCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
