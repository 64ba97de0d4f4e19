package spool

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/eencloud/goeen/log"
)

// commandTimeout bounds each OS-level print utility invocation. A stuck
// queue daemon must not hang the request.
const commandTimeout = 10 * time.Second

// Spooler hands rendered plain text to the operating system's print
// path. Two mechanisms are tried, in one fixed order on every path:
// first a raw job that bypasses driver-side page formatting (thermal
// receipt printers commonly reject driver-formatted jobs), then the
// platform's standard queue submission command.
type Spooler struct {
	logger *log.Logger
	queue  string // configured queue/printer name, empty for the default
}

func New(logger *log.Logger, queue string) *Spooler {
	return &Spooler{logger: logger, queue: queue}
}

// Submit writes content to a request-unique scratch file, tries the raw
// bypass and then the queue command, and removes the scratch file on
// every exit path.
func (s *Spooler) Submit(ctx context.Context, content []byte) error {
	path, cleanup, err := writeScratch(content)
	if err != nil {
		return fmt.Errorf("scratch file: %w", err)
	}
	defer cleanup()

	rawErr := s.submitRaw(ctx, path)
	if rawErr == nil {
		s.logger.Infof("Spooled %d bytes as raw job", len(content))
		return nil
	}
	s.logger.Infof("Raw spool failed, trying queue command: %v", rawErr)

	queueErr := s.submitQueue(ctx, path)
	if queueErr == nil {
		s.logger.Infof("Spooled %d bytes via queue command", len(content))
		return nil
	}
	return fmt.Errorf("system printer unavailable: raw: %v; queue: %w", rawErr, queueErr)
}

func (s *Spooler) run(ctx context.Context, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %v (%s)", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
