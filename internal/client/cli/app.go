// Package cli implements the meetpoint command line client. It talks to the
// server's HTTP API and prints results to stdout.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/avoronov/meetpoint/internal/client/config"
	"github.com/avoronov/meetpoint/internal/common"
)

// App is the command line client.
type App struct {
	config *config.Config
	client *http.Client
	out    io.Writer
}

func NewApp(c *config.Config, out io.Writer) *App {
	return &App{
		config: c,
		client: &http.Client{Timeout: 10 * time.Second},
		out:    out,
	}
}

// Run dispatches the configured subcommand.
func (a *App) Run(ctx context.Context) error {

	if a.config.APIToken == "" {
		token, err := promptToken(os.Stderr)
		if err != nil {
			return err
		}
		a.config.APIToken = token
	}

	switch a.config.Command {
	case "users-count":
		return a.printPath(ctx, "/users/count")
	case "user-names":
		return a.printPath(ctx, "/users/names")
	case "handshakes-count":
		return a.printPath(ctx, "/handshakes/count")
	case "":
		return fmt.Errorf("%w: no command given, expected one of: users-count, user-names, handshakes-count", common.ErrInvalidInput)
	default:
		return fmt.Errorf("%w: unknown command %q", common.ErrInvalidInput, a.config.Command)
	}
}

// printPath performs a GET against the server and writes the response body to
// the configured output.
func (a *App) printPath(ctx context.Context, path string) error {

	u, err := url.Parse(a.config.ServerAddr)
	if err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + path

	if a.config.APIToken != "" {
		q := u.Query()
		q.Set(common.APITokenQueryParam, a.config.APIToken)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, strings.TrimSpace(string(body)))
	default:
		return fmt.Errorf("server returned %s", resp.Status)
	}

	fmt.Fprintln(a.out, strings.TrimSpace(string(body)))

	return nil
}
