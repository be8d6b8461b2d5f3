// Package config holds configuration for the meetpoint command line client.
package config

import (
	"flag"
	"fmt"
)

// Config is the client configuration assembled from command line flags.
type Config struct {
	// ServerAddr is the base URL of the meetpoint server.
	ServerAddr string
	// APIToken is the access token sent with each request. When empty the
	// client prompts for it interactively.
	APIToken string
	// Command is the subcommand to execute.
	Command string
}

// LoadConfig parses flags and the subcommand from args (without the program
// name).
func LoadConfig(args []string) (*Config, error) {

	c := &Config{}

	fs := flag.NewFlagSet("meetpoint-cli", flag.ContinueOnError)
	fs.StringVar(&c.ServerAddr, "s", "http://127.0.0.1:9001", "server base URL")
	fs.StringVar(&c.APIToken, "t", "", "API access token")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	c.Command = fs.Arg(0)

	return c, nil
}
