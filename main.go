package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/talkincode/pharmadmin/config"
	"github.com/talkincode/pharmadmin/internal/adminapi"
	"github.com/talkincode/pharmadmin/internal/app"
	"github.com/talkincode/pharmadmin/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	h        = flag.Bool("h", false, "display help")
	x        = flag.Bool("x", false, "enable debug")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
	conffile = flag.String("c", "/etc/pharmadmin.yml", "config file")
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Usage: pharmadmin [-h] [-x] [-initdb] [-c config_file]")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if *h {
		printHelp()
		return
	}

	cfg, err := config.LoadConfig(*conffile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *x {
		cfg.System.Debug = true
		cfg.Database.Debug = true
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database schema recreated")
		return
	}

	webserver.Init(application)
	adminapi.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return webserver.Listen()
	})
	g.Go(func() error {
		<-ctx.Done()
		return webserver.Shutdown()
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("server stopped", zap.Error(err))
	}
}
