package main

import (
	"context"
	"log"

	"github.com/dspetrov/docvault/internal/cli"
	"github.com/dspetrov/docvault/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
