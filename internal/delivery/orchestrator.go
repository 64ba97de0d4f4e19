package delivery

import (
	"context"

	"github.com/eencloud/goeen/log"

	"github.com/jamshidbazarbaev5/thermal-printer/internal/device"
	"github.com/jamshidbazarbaev5/thermal-printer/internal/receipt"
)

// Method identifies which delivery channel completed a job. The value is
// surfaced verbatim in the API response.
type Method string

const (
	MethodDevice        Method = "device"
	MethodSystemPrinter Method = "system_printer"
	MethodBufferOnly    Method = "buffer_only"
)

// state of the fallback machine. Transitions run strictly forward; no
// state is ever revisited and the first success terminates.
type state int

const (
	stateTryDevice state = iota
	stateTrySystemPrinter
	stateBufferOnly
	stateDone
)

// Job is one rendering-and-delivery request. Render must be callable
// against any Target; the orchestrator invokes it once per channel that
// actually runs (command stream for the device, plain text for the OS
// print path).
type Job struct {
	Name   string
	Render func(receipt.Target)
}

// Attempt records one channel outcome, for diagnostics in the response.
type Attempt struct {
	Method Method `json:"method"`
	Error  string `json:"error,omitempty"`
}

// Result is the terminal outcome. BufferSize reports how large the
// rendered command stream was, which is the caller's only confirmation
// of a successful rendering when delivery fell through to buffer_only.
type Result struct {
	Method     Method    `json:"method"`
	BufferSize int       `json:"buffer_size"`
	Attempts   []Attempt `json:"attempts,omitempty"`
}

// Committer is the primary device path (see device.Printer).
type Committer interface {
	Commit(ctx context.Context, buf *device.Buffer) error
}

// Submitter is the OS print path (see spool.Spooler).
type Submitter interface {
	Submit(ctx context.Context, content []byte) error
}

// Orchestrator drives TryDevice -> TrySystemPrinter -> BufferOnly.
// It is best-effort and non-transactional: a printer may have fed or cut
// paper before a later failure is observed, and nothing is rolled back.
type Orchestrator struct {
	logger  *log.Logger
	device  Committer
	spooler Submitter
}

func NewOrchestrator(logger *log.Logger, dev Committer, spooler Submitter) *Orchestrator {
	return &Orchestrator{logger: logger, device: dev, spooler: spooler}
}

// Deliver runs the machine to completion. It never fails outright: by
// the time BufferOnly reports, rendering has already succeeded, so the
// caller always receives a terminal method.
func (o *Orchestrator) Deliver(ctx context.Context, job Job) Result {
	buf := device.NewBuffer()
	job.Render(buf)

	res := Result{BufferSize: buf.Len()}

	for st := stateTryDevice; st != stateDone; {
		switch st {
		case stateTryDevice:
			if err := o.device.Commit(ctx, buf); err != nil {
				o.logger.Errorf("Job %s: device commit failed: %v", job.Name, err)
				res.Attempts = append(res.Attempts, Attempt{Method: MethodDevice, Error: err.Error()})
				st = stateTrySystemPrinter
				continue
			}
			o.logger.Infof("Job %s: printed on device", job.Name)
			res.Method = MethodDevice
			res.Attempts = append(res.Attempts, Attempt{Method: MethodDevice})
			st = stateDone

		case stateTrySystemPrinter:
			txt := receipt.NewTextTarget()
			job.Render(txt)
			if err := o.spooler.Submit(ctx, txt.Bytes()); err != nil {
				o.logger.Errorf("Job %s: system printer failed: %v", job.Name, err)
				res.Attempts = append(res.Attempts, Attempt{Method: MethodSystemPrinter, Error: err.Error()})
				st = stateBufferOnly
				continue
			}
			o.logger.Infof("Job %s: printed via system printer", job.Name)
			res.Method = MethodSystemPrinter
			res.Attempts = append(res.Attempts, Attempt{Method: MethodSystemPrinter})
			st = stateDone

		case stateBufferOnly:
			o.logger.Infof("Job %s: delivery exhausted, %d-byte buffer retained for the caller",
				job.Name, buf.Len())
			res.Method = MethodBufferOnly
			res.Attempts = append(res.Attempts, Attempt{Method: MethodBufferOnly})
			st = stateDone
		}
	}
	return res
}
