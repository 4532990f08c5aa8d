// Command menuctl drives the menu CMS API from the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Lixing-Zhang/menu-cms/internal/client"
	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/reorder"
	"github.com/Lixing-Zhang/menu-cms/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Config holds the parsed command line
type Config struct {
	APIURL   string
	Password string
	LogLevel string
	Args     []string
}

var errUsage = errors.New("usage")

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, Format: "text"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, log); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usageText)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

const usageText = `Menu CMS command line client

Usage:
  menuctl [--api URL] [--password P] categories
  menuctl [--api URL] [--password P] swap <dragID> <targetID>
  menuctl [--api URL] qr <file.png>

Options:
  --api URL        API base URL (MENU_API_URL, default http://localhost:8000).
  --password P     Admin password (ADMIN_PASSWORD).
  --log-level L    debug, info, warn or error.`

func parseFlags(args []string, stderr io.Writer) (Config, error) {
	fs := flag.NewFlagSet("menuctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprintln(stderr, usageText) }

	cfg := Config{}
	fs.StringVar(&cfg.APIURL, "api", envOr("MENU_API_URL", "http://localhost:8000"), "API base URL")
	fs.StringVar(&cfg.Password, "password", os.Getenv("ADMIN_PASSWORD"), "Admin password")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "Log level")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Args = fs.Args()
	return cfg, nil
}

func run(ctx context.Context, cfg Config, out io.Writer, log *slog.Logger) error {
	if len(cfg.Args) == 0 {
		return errUsage
	}

	api := client.New(cfg.APIURL)

	switch cfg.Args[0] {
	case "categories":
		categories, err := api.ListCategories(ctx)
		if err != nil {
			return err
		}
		printCategories(out, categories)
		return nil

	case "swap":
		if len(cfg.Args) != 3 {
			return errUsage
		}
		dragID, err1 := strconv.ParseInt(cfg.Args[1], 10, 64)
		targetID, err2 := strconv.ParseInt(cfg.Args[2], 10, 64)
		if err1 != nil || err2 != nil {
			return fmt.Errorf("category ids must be integers")
		}
		return swap(ctx, api, cfg.Password, dragID, targetID, out, log)

	case "qr":
		if len(cfg.Args) != 2 {
			return errUsage
		}
		png, menuURL, err := api.GetQRCode(ctx)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Args[1], png, 0o644); err != nil {
			return fmt.Errorf("write qr code: %w", err)
		}
		fmt.Fprintf(out, "wrote %s (%s)\n", cfg.Args[1], menuURL)
		return nil

	default:
		return errUsage
	}
}

// swap logs in and loads the categories concurrently, then performs one drag
// and drop through the reorder controller.
func swap(ctx context.Context, api *client.Client, password string, dragID, targetID int64, out io.Writer, log *slog.Logger) error {
	notify := reorder.LogNotifier{Logger: log}
	store := reorder.NewStore(api, notify)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := api.Login(gctx, password)
		return err
	})
	g.Go(func() error {
		return store.Load(gctx)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	ctrl := reorder.NewController(store, api, notify)
	if !ctrl.ToggleMoveMode() {
		return fmt.Errorf("at least two categories are needed to reorder")
	}
	ctrl.DragStart(dragID)

	outcome := ctrl.Drop(ctx, targetID)
	log.Debug("drop finished", "outcome", outcome.String())

	switch outcome {
	case reorder.OutcomeStale:
		return fmt.Errorf("category %d or %d does not exist", dragID, targetID)
	case reorder.OutcomeReverted:
		printCategories(out, store.Categories())
		return fmt.Errorf("server rejected the new order")
	}

	printCategories(out, store.Categories())
	return nil
}

func printCategories(out io.Writer, categories []models.Category) {
	for i, c := range categories {
		fmt.Fprintf(out, "%2d. [%d] %s\n", i+1, c.ID, c.Name)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
