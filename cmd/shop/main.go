// Command shop is a terminal storefront: it browses the catalog and walks
// the cart and checkout flow against a running API. State persists between
// invocations in a local file, or in redis when -redis is set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sethvargo/go-envconfig"

	redisstore "github.com/parfumerie/storefront/internal/infrastructure/db/redis"
	"github.com/parfumerie/storefront/pkg/logger"
	"github.com/parfumerie/storefront/pkg/storefront"
)

type options struct {
	APIURL    string `env:"SHOP_API_URL, default=http://localhost:5000"`
	StateFile string `env:"SHOP_STATE_FILE"`
	RedisAddr string `env:"SHOP_REDIS_ADDR"`
	SessionID string `env:"SHOP_SESSION"`
	LogLevel  string `env:"LOG_LEVEL, default=warn"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], envconfig.OsLookuper(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "shop:", err)
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, env envconfig.Lookuper, out io.Writer) error {
	var opts options
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &opts, Lookuper: env}); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	fs := flag.NewFlagSet("shop", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&opts.APIURL, "api", opts.APIURL, "storefront API base URL")
	fs.StringVar(&opts.StateFile, "state", opts.StateFile, "file holding the cart and checkout state")
	fs.StringVar(&opts.RedisAddr, "redis", opts.RedisAddr, "keep state in redis at this address instead of a file")
	fs.StringVar(&opts.SessionID, "session", opts.SessionID, "redis session id to resume")
	fs.Usage = func() {
		fmt.Fprintln(out, "usage: shop [flags] <command> [args]")
		fmt.Fprintln(out)
		fmt.Fprintln(out, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	log := logger.Init(logger.Options{Level: opts.LogLevel, Pretty: true, Output: os.Stderr, Service: "shop"})

	store, closeStore, err := openStorage(ctx, opts, out)
	if err != nil {
		return err
	}
	defer closeStore()

	client := storefront.NewClient(opts.APIURL)
	session := storefront.NewSession(client, store, log.With().Str("component", "session").Logger())
	if err := session.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	sh := &shell{
		api:     client,
		session: session,
		out:     out,
	}
	return sh.exec(ctx, fs.Arg(0), fs.Args()[1:])
}

func openStorage(ctx context.Context, opts options, out io.Writer) (storefront.Storage, func(), error) {
	if opts.RedisAddr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: opts.RedisAddr})
		if err != nil {
			return nil, nil, err
		}
		store := storefront.NewRedisStorage(rdb, opts.SessionID, 0)
		if opts.SessionID == "" {
			fmt.Fprintf(out, "session: %s\n", store.SessionID())
		}
		return store, func() { _ = rdb.Close() }, nil
	}

	path := opts.StateFile
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, nil, fmt.Errorf("locate state file: %w", err)
		}
		path = filepath.Join(dir, "parfumerie", "shop.json")
	}
	return storefront.NewFileStorage(path), func() {}, nil
}
