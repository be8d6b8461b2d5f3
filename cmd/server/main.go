package main

import (
	"context"
	"log"

	"github.com/avoronov/meetpoint/internal/server"
	"github.com/avoronov/meetpoint/internal/server/config"
)

func main() {

	ctx := context.Background()

	c := config.LoadConfig()

	app, err := server.NewApp(c)
	if err != nil {
		log.Fatal(err)
	}

	app.Run(ctx)
}
