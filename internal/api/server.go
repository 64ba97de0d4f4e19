package api

import (
	"context"
	"net/http"
	"time"

	"github.com/eencloud/goeen/log"

	"github.com/jamshidbazarbaev5/thermal-printer/internal/core"
	"github.com/jamshidbazarbaev5/thermal-printer/internal/delivery"
	"github.com/jamshidbazarbaev5/thermal-printer/internal/receipt"
)

// Device is the readiness view of the physical printer the handlers
// need: whether startup detection found a device, and its cached name.
type Device interface {
	Ready() bool
	Name() string
}

// Server handles HTTP communication from the point-of-sale front end.
type Server struct {
	*http.Server
	Logger       *log.Logger
	Printer      Device
	Orchestrator *delivery.Orchestrator
	Renderer     *receipt.Renderer
	Audit        *core.AuditLogger
}

// NewServer creates and configures a new server for the POS front end.
func NewServer(addr string, logger *log.Logger, printer Device,
	orch *delivery.Orchestrator, renderer *receipt.Renderer, audit *core.AuditLogger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: &http.Server{
			Addr:    addr,
			Handler: mux,
			// A full fallback chain (device commit plus two spool
			// attempts) can legitimately take tens of seconds.
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   60 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		Logger:       logger,
		Printer:      printer,
		Orchestrator: orch,
		Renderer:     renderer,
		Audit:        audit,
	}

	mux.HandleFunc("/health", cors(s.healthHandler))
	mux.HandleFunc("/print/test", cors(s.testPrintHandler))
	mux.HandleFunc("/print/shift", cors(s.shiftHandler))
	mux.HandleFunc("/print/shift/sample", cors(s.shiftSampleHandler))
	mux.HandleFunc("/print/receipt", cors(s.receiptHandler))

	return s
}

// cors lets the browser-hosted register UI call the agent on localhost.
func cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.Logger.Infof("Starting API Server on %s", s.Addr)
	return s.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.Logger.Info("Shutting down API Server...")
	return s.Shutdown(ctx)
}
