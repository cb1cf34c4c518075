package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/friendgraph/internal/buildinfo"
	"github.com/dmitrijs2005/friendgraph/internal/logging"
	"github.com/dmitrijs2005/friendgraph/internal/server"
	"github.com/dmitrijs2005/friendgraph/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	logger := logging.NewJSONLogger(os.Stdout, level)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
