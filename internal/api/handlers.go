package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jamshidbazarbaev5/thermal-printer/internal/delivery"
	"github.com/jamshidbazarbaev5/thermal-printer/internal/receipt"
)

type errorResponse struct {
	Error string `json:"error"`
}

type printResponse struct {
	Status     string             `json:"status"`
	Method     delivery.Method    `json:"method"`
	BufferSize int                `json:"buffer_size,omitempty"`
	Attempts   []delivery.Attempt `json:"attempts,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"printer_ready": s.Printer.Ready(),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// requirePrintable rejects requests up front when startup detection
// found no device. Delivery is never attempted in that case.
func (s *Server) requirePrintable(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)
		return false
	}
	if !s.Printer.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "printer device not ready"})
		return false
	}
	return true
}

// deliver runs a job through the fallback machine and shapes the
// response. buffer_only still reports success-of-rendering ("prepared");
// the physical act of printing is best-effort.
func (s *Server) deliver(w http.ResponseWriter, job delivery.Job, documentID string) {
	// Detached from the request context on purpose: once accepted, the
	// pipeline runs to completion even if the caller disconnects.
	res := s.Orchestrator.Deliver(context.Background(), job)

	if s.Audit != nil {
		if err := s.Audit.Log(job.Name, documentID, string(res.Method)); err != nil {
			s.Logger.Errorf("Audit write failed: %v", err)
		}
	}

	status := "printed"
	if res.Method == delivery.MethodBufferOnly {
		status = "prepared"
	}
	writeJSON(w, http.StatusOK, printResponse{
		Status:     status,
		Method:     res.Method,
		BufferSize: res.BufferSize,
		Attempts:   res.Attempts,
	})
}

// testPrintHandler acknowledges immediately and prints in the
// background: the diagnostic button in the register UI should never
// block on paper.
func (s *Server) testPrintHandler(w http.ResponseWriter, r *http.Request) {
	if !s.requirePrintable(w, r) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "initiated"})

	go func() {
		job := delivery.Job{
			Name:   "test",
			Render: func(t receipt.Target) { receipt.RenderTest(time.Now(), t) },
		}
		res := s.Orchestrator.Deliver(context.Background(), job)
		if s.Audit != nil {
			_ = s.Audit.Log("test", "-", string(res.Method))
		}
	}()
}

func (s *Server) shiftHandler(w http.ResponseWriter, r *http.Request) {
	if !s.requirePrintable(w, r) {
		return
	}

	var shift receipt.Shift
	if err := json.NewDecoder(r.Body).Decode(&shift); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if shift.ID == "" || shift.Store == "" || shift.Payments == nil {
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Error: "shift requires id, store and payments"})
		return
	}

	s.deliver(w, delivery.Job{
		Name:   "shift",
		Render: func(t receipt.Target) { receipt.RenderShift(&shift, t) },
	}, shift.ID)
}

// shiftSampleHandler prints whatever shift-shaped record the caller
// sends, without validation, so integrators can reproduce layouts.
func (s *Server) shiftSampleHandler(w http.ResponseWriter, r *http.Request) {
	if !s.requirePrintable(w, r) {
		return
	}

	var shift receipt.Shift
	if err := json.NewDecoder(r.Body).Decode(&shift); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	s.deliver(w, delivery.Job{
		Name:   "shift_sample",
		Render: func(t receipt.Target) { receipt.RenderShift(&shift, t) },
	}, shift.ID)
}

type receiptRequest struct {
	Sale     receipt.Sale     `json:"sale"`
	Template receipt.Template `json:"template"`
}

func (s *Server) receiptHandler(w http.ResponseWriter, r *http.Request) {
	if !s.requirePrintable(w, r) {
		return
	}

	var req receiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Sale.ID == "" || req.Sale.Store == "" || req.Sale.Items == nil {
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Error: "sale requires id, store and items"})
		return
	}
	if len(req.Template.Components) == 0 {
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Error: "template requires a component list"})
		return
	}

	s.deliver(w, delivery.Job{
		Name:   "receipt",
		Render: func(t receipt.Target) { s.Renderer.Render(&req.Template, &req.Sale, t) },
	}, req.Sale.ID)
}
