// Package importer seeds the registry from a legacy export: a plain-text
// file with one display name per line, each representing a past handshake.
package importer

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/avoronov/meetpoint/internal/logging"
	"github.com/avoronov/meetpoint/internal/server/handshakes"
)

// HandshakeRecorder is the subset of the handshake service the importer
// needs; *handshakes.Service satisfies it.
type HandshakeRecorder interface {
	Record(ctx context.Context, externalID *string, displayName string, location *string) (*handshakes.Handshake, error)
}

type Importer struct {
	recorder HandshakeRecorder
	logger   logging.Logger
}

func New(recorder HandshakeRecorder, logger logging.Logger) *Importer {
	return &Importer{
		recorder: recorder,
		logger:   logger.With("module", "importer"),
	}
}

// Run imports every non-empty line as a handshake with an absent external
// id and no location. Individual failures are logged and skipped so one bad
// line does not abort the whole import.
func (i *Importer) Run(ctx context.Context, path string) error {

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening import file: %w", err)
	}
	defer file.Close()

	imported := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}

		if _, err := i.recorder.Record(ctx, nil, name, nil); err != nil {
			i.logger.Error(ctx, "Unable to import legacy user", "name", name, "error", err.Error())
			continue
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading import file: %w", err)
	}

	i.logger.Info(ctx, "Legacy import finished", "imported", imported)
	return nil
}
