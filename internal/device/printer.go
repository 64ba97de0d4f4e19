package device

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/eencloud/goeen/log"
	"go.bug.st/serial"
)

// ErrNotDetected is returned by Commit when startup detection found no
// usable serial device.
var ErrNotDetected = errors.New("no printer device detected")

// commitTimeout bounds a single command-stream flush. A device that has
// not accepted the job by then is treated the same as one that rejected
// it, so the fallback machine can move on.
const commitTimeout = 5 * time.Second

// ExecError wraps a failed or timed-out commit, keeping the underlying
// cause for the logs while letting the delivery pipeline distinguish
// transport trouble from rendering trouble.
type ExecError struct {
	Cause error
}

func (e *ExecError) Error() string { return "printer commit failed: " + e.Cause.Error() }

func (e *ExecError) Unwrap() error { return e.Cause }

// Printer owns the process-wide handle on the physical device. Detection
// runs once at startup (idempotent if re-run) and caches the port name;
// commits serialize on the mutex so at most one command stream is in
// flight against the mechanism at a time.
type Printer struct {
	mu       sync.Mutex
	logger   *log.Logger
	portName string
	baud     int
	ready    bool
}

func NewPrinter(logger *log.Logger, portOverride string, baud int) *Printer {
	if baud <= 0 {
		baud = 9600
	}
	return &Printer{logger: logger, portName: portOverride, baud: baud}
}

// Detect enumerates serial ports and caches the chosen name. Re-running
// it and finding the same port is harmless.
func (p *Printer) Detect() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.portName != "" {
		// Operator pinned a port in the config; trust it.
		p.ready = true
		p.logger.Infof("Using configured printer port %s", p.portName)
		return true
	}

	ports, err := serial.GetPortsList()
	if err != nil {
		p.logger.Errorf("Serial port enumeration failed: %v", err)
		p.ready = false
		return false
	}
	p.portName = pickPort(ports)
	p.ready = p.portName != ""
	if p.ready {
		p.logger.Infof("Detected printer port %s", p.portName)
	} else {
		p.logger.Errorf("No serial printer port found (%d ports inspected)", len(ports))
	}
	return p.ready
}

// pickPort prefers names that look like USB or Bluetooth serial links,
// which is where receipt printers show up on every supported OS.
func pickPort(ports []string) string {
	for _, name := range ports {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "usb") || strings.Contains(lower, "rfcomm") ||
			strings.Contains(lower, "com") {
			return name
		}
	}
	if len(ports) > 0 {
		return ports[0]
	}
	return ""
}

func (p *Printer) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

func (p *Printer) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.portName
}

// Commit flushes an assembled command buffer to the device in a single
// write. The write is bounded by commitTimeout; both a timeout and a
// transport rejection come back as *ExecError.
func (p *Printer) Commit(ctx context.Context, buf *Buffer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || p.portName == "" {
		return &ExecError{Cause: ErrNotDetected}
	}

	ctx, cancel := context.WithTimeout(ctx, commitTimeout)
	defer cancel()

	port, err := serial.Open(p.portName, &serial.Mode{BaudRate: p.baud})
	if err != nil {
		return &ExecError{Cause: err}
	}

	// One write keeps the command stream contiguous on slow Bluetooth
	// links; chunking introduces inter-command delays on some firmwares.
	done := make(chan error, 1)
	go func() {
		_, werr := port.Write(buf.Bytes())
		done <- werr
	}()

	select {
	case err := <-done:
		_ = port.Close()
		if err != nil {
			return &ExecError{Cause: err}
		}
		return nil
	case <-ctx.Done():
		// Closing the port unblocks a stalled write, so the handle is
		// released before the next commit opens the device.
		_ = port.Close()
		return &ExecError{Cause: ctx.Err()}
	}
}
