package main

import (
	"context"
	"log"
	"os"

	"github.com/mpetrovs/prodhub/internal/buildinfo"
	"github.com/mpetrovs/prodhub/internal/client/cli"
	"github.com/mpetrovs/prodhub/internal/client/config"
	"github.com/mpetrovs/prodhub/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg, logging.NewDefault())

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
