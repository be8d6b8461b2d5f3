package main

import (
	"context"
	"fmt"
	"os"

	"github.com/avoronov/meetpoint/internal/client/cli"
	"github.com/avoronov/meetpoint/internal/client/config"
)

func main() {

	c, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := cli.NewApp(c, os.Stdout)

	if err := app.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
