package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/codeabiswas/quotescape/internal/cli/colours"
	"github.com/codeabiswas/quotescape/internal/config"
	"github.com/codeabiswas/quotescape/internal/platform"
	"github.com/codeabiswas/quotescape/internal/quote"
	"github.com/codeabiswas/quotescape/internal/quote/custom"
	"github.com/codeabiswas/quotescape/internal/quote/kindle"
	"github.com/codeabiswas/quotescape/internal/quote/random"
	"github.com/codeabiswas/quotescape/internal/wallpaper"
)

const version = "1.0.0"

type flags struct {
	source       string
	browser      string
	loginTimeout int
	forceRefresh bool
	verbose      bool
}

func main() {
	config.SetDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n" + colours.Warning.Sprint("Cancelled, cleaning up..."))
		cancel()
	}()

	var f flags

	rootCmd := &cobra.Command{
		Use:     "quotescape",
		Short:   "🖼️  Generate quote wallpapers for your desktop",
		Long:    "Quotescape picks a quote from a configurable source (a random quotes API,\nyour Kindle highlights, or your own quotebook), renders it onto a wallpaper\nand sets it as your desktop background.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(ctx, f)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&f.source, "source", "",
		"override quote source from config (random, kindle, custom)")
	rootCmd.Flags().StringVar(&f.browser, "browser", "",
		"force a specific browser for Kindle scraping (chrome, edge, chromium, brave)")
	rootCmd.Flags().IntVar(&f.loginTimeout, "login-timeout", 300,
		"seconds to wait for login completion")
	rootCmd.Flags().BoolVar(&f.forceRefresh, "force-refresh", false,
		"refresh the Kindle highlight cache regardless of age")
	rootCmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false,
		"enable verbose logging")

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	if f.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if f.source != "" {
		logrus.WithFields(logrus.Fields{
			"config": cfg.Source,
			"flag":   f.source,
		}).Info("overriding quote source from command line")
		cfg.Source = f.source
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"source":     cfg.Source,
		"resolution": fmt.Sprintf("%dx%d", cfg.Dimension.Width, cfg.Dimension.Height),
		"dark_mode":  cfg.DarkMode,
	}).Info("configuration loaded")

	src, err := newSource(cfg, f)
	if err != nil {
		return err
	}

	available, msg := src.Available()
	if !available {
		return fmt.Errorf("%s source is not available: %s", src.Name(), msg)
	}
	if msg != "" {
		logrus.Info(msg)
	}
	if src.RequiresInternet() {
		logrus.Info("this source requires an internet connection")
	}

	q, err := src.Get(ctx)
	if err != nil {
		return err
	}

	colours.Quote.Printf("\n“%s”\n", q.Text)
	if q.Author != "" {
		colours.Author.Printf("- %s\n", q.Author)
	}
	if q.BookTitle != "" {
		colours.Title.Printf("%s\n\n", q.BookTitle)
	}

	gen := wallpaper.New(cfg)
	path, err := gen.Generate(ctx, q)
	if err != nil {
		return err
	}

	setter, err := platform.New()
	if err != nil {
		colours.Warning.Printf("⚠️  %v\n", err)
		colours.Info.Printf("📍 Wallpaper saved to: %s\n", path)
		fmt.Println("Please set the wallpaper manually using your system settings.")
		return nil
	}

	if err := setter.Set(path); err != nil {
		logrus.WithError(err).Warn("automatic wallpaper setting failed")
		colours.Warning.Printf("⚠️  Could not set wallpaper on %s: %v\n", setter.Name(), err)
		colours.Info.Printf("📍 Wallpaper saved to: %s\n", path)
		fmt.Println("Please set the wallpaper manually using your system settings.")
		return nil
	}

	colours.Success.Printf("✅ Wallpaper set on %s\n", setter.Name())
	colours.Info.Printf("📍 Wallpaper location: %s\n", path)
	return nil
}

// newSource maps the configured source name to its implementation.
func newSource(cfg *config.Config, f flags) (quote.Source, error) {
	switch cfg.Source {
	case "random":
		return random.New(), nil
	case "custom":
		return custom.New(cfg.Custom.QuotebookPath), nil
	case "kindle":
		return kindle.New(cfg, kindle.Options{
			Browser:      f.browser,
			LoginTimeout: time.Duration(f.loginTimeout) * time.Second,
			ForceRefresh: f.forceRefresh,
		}), nil
	default:
		return nil, fmt.Errorf("unknown quote source: %s", cfg.Source)
	}
}
