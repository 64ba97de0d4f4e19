//go:build !windows

package spool

import "context"

// submitRaw sends the file as an opaque byte stream through CUPS.
func (s *Spooler) submitRaw(ctx context.Context, path string) error {
	args := []string{"-o", "raw"}
	if s.queue != "" {
		args = append(args, "-d", s.queue)
	}
	args = append(args, path)
	return s.run(ctx, "lp", args...)
}

// submitQueue is the plain queue submission, letting the driver decide.
func (s *Spooler) submitQueue(ctx context.Context, path string) error {
	var args []string
	if s.queue != "" {
		args = append(args, "-P", s.queue)
	}
	args = append(args, path)
	return s.run(ctx, "lpr", args...)
}
