package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"pagecrawler/config"
	"pagecrawler/internal/app/crawler"
	"pagecrawler/internal/app/handlers"
	"pagecrawler/internal/app/requester"
	"pagecrawler/internal/app/storage"
	"pagecrawler/internal/usecase"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	errMissingURL = errors.New("url is required")
	errBadInteger = errors.New("invalid integer argument")
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagecrawler [storageFolder] [maxLinksPerPage] [url] [depth]",
		Short: "Fetch a page and the pages it links to, down to a given depth",
		Long: `pagecrawler fetches url, writes the body to storageFolder and follows up to
maxLinksPerPage http(s) links of every fetched page until depth is used up.

Defaults: storageFolder ".", maxLinksPerPage 5, depth 2. url has no default.
Values may also come from a TOML or YAML config file; positional
arguments win over the file.`,
		Args:          cobra.MaximumNArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRootCmd,
	}

	cmd.Flags().StringP("config", "c", "", "path to config file (.toml, .yaml); default "+config.DefaultPath())
	cmd.Flags().BoolP("verbose", "v", false, "enable debug logging")

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRootCmd(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := buildConfig(configPath, args)
	if err != nil {
		if errors.Is(err, errMissingURL) || errors.Is(err, errBadInteger) {
			_ = cmd.Usage()
		}
		return err
	}

	logger, err := setupLogger(cfg.LogLevel, verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, cfg, logger)
}

// buildConfig merges defaults, the config file and positional arguments, in
// that order.
func buildConfig(configPath string, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.LoadFile(path, cfg); err != nil {
		if configPath != "" || !errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := applyArgs(cfg, args); err != nil {
		return nil, err
	}
	if cfg.URL == "" {
		return nil, errMissingURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyArgs(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		cfg.StorageFolder = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: maxLinksPerPage %q", errBadInteger, args[1])
		}
		cfg.MaxLinksPerPage = n
	}
	if len(args) > 2 {
		cfg.URL = args[2]
	}
	if len(args) > 3 {
		n, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("%w: depth %q", errBadInteger, args[3])
		}
		cfg.Depth = n
	}
	return nil
}

func setupLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	var f usecase.Fetcher = requester.NewRequester(cfg.RequestTimeout(), logger, nil).WithUserAgent(cfg.UserAgent)
	var cr usecase.Crawler = crawler.NewCrawler(
		f,
		storage.NewFileStorage(logger),
		handlers.NewResultLogger(logger),
		logger,
		crawler.Options{StorageFolder: cfg.StorageFolder, MaxLinksPerPage: cfg.MaxLinksPerPage},
	)

	logger.Info("crawling started",
		zap.String("url", cfg.URL),
		zap.String("storage_folder", cfg.StorageFolder),
		zap.Int("max_links_per_page", cfg.MaxLinksPerPage),
		zap.Int("depth", cfg.Depth))

	if err := cr.Crawl(ctx, cfg.URL, cfg.Depth); err != nil {
		return err
	}
	logger.Info("crawling completed")
	return nil
}
