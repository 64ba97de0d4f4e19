package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	goeen_log "github.com/eencloud/goeen/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamshidbazarbaev5/thermal-printer/internal/delivery"
	"github.com/jamshidbazarbaev5/thermal-printer/internal/device"
	"github.com/jamshidbazarbaev5/thermal-printer/internal/receipt"
)

type fakePrinter struct {
	ready bool
}

func (f *fakePrinter) Ready() bool { return f.ready }
func (f *fakePrinter) Name() string {
	if f.ready {
		return "/dev/ttyUSB0"
	}
	return ""
}

type fakeCommitter struct{ err error }

func (f *fakeCommitter) Commit(ctx context.Context, buf *device.Buffer) error { return f.err }

type fakeSubmitter struct{ err error }

func (f *fakeSubmitter) Submit(ctx context.Context, content []byte) error { return f.err }

func testServer(ready bool, commitErr, submitErr error) *Server {
	logger := goeen_log.NewContext(os.Stderr, "", goeen_log.LevelError).GetLogger("api-test", goeen_log.LevelError)
	orch := delivery.NewOrchestrator(logger, &fakeCommitter{err: commitErr}, &fakeSubmitter{err: submitErr})
	return NewServer(":0", logger, &fakePrinter{ready: ready}, orch, receipt.NewRenderer(logger), nil)
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

const validReceipt = `{
	"sale": {
		"id": "sale-1",
		"store": "Do'kon 1",
		"number": "000123",
		"total_amount": 25000,
		"items": [{"name": "Non", "quantity": 2, "subtotal": 20000}],
		"payments": [{"method": "Naqd", "amount": 30000}]
	},
	"template": {
		"name": "default",
		"components": [
			{"id": "items", "type": "itemList", "enabled": true, "order": 1},
			{"id": "totals", "type": "totals", "enabled": true, "order": 2}
		]
	}
}`

const validShift = `{
	"id": "shift-1",
	"store": "Do'kon 1",
	"payments": [{"method": "Naqd", "expected": 100, "actual": 100}],
	"totals": {"expected": 100, "actual": 100, "difference": 0}
}`

func TestHealth(t *testing.T) {
	rec := do(testServer(true, nil, nil), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["printer_ready"])
}

func TestHealth_ReportsNotReady(t *testing.T) {
	rec := do(testServer(false, nil, nil), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["printer_ready"])
}

func TestPrintEndpoints_RequirePOST(t *testing.T) {
	s := testServer(true, nil, nil)
	for _, path := range []string{"/print/test", "/print/shift", "/print/shift/sample", "/print/receipt"} {
		rec := do(s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
	}
}

func TestPrintEndpoints_RefuseWhenNotReady(t *testing.T) {
	s := testServer(false, nil, nil)
	rec := do(s, http.MethodPost, "/print/receipt", validReceipt)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "not ready")
}

func TestReceipt_DevicePrinted(t *testing.T) {
	rec := do(testServer(true, nil, nil), http.MethodPost, "/print/receipt", validReceipt)
	require.Equal(t, http.StatusOK, rec.Code)

	var body printResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "printed", body.Status)
	assert.Equal(t, delivery.MethodDevice, body.Method)
	assert.Greater(t, body.BufferSize, 0)
}

func TestReceipt_FallsThroughToPrepared(t *testing.T) {
	s := testServer(true, errors.New("port gone"), errors.New("no lp"))
	rec := do(s, http.MethodPost, "/print/receipt", validReceipt)
	require.Equal(t, http.StatusOK, rec.Code)

	var body printResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "prepared", body.Status)
	assert.Equal(t, delivery.MethodBufferOnly, body.Method)
	assert.Greater(t, body.BufferSize, 0)
	require.Len(t, body.Attempts, 3)
	assert.Equal(t, "port gone", body.Attempts[0].Error)
	assert.Equal(t, "no lp", body.Attempts[1].Error)
}

func TestReceipt_Validation(t *testing.T) {
	s := testServer(true, nil, nil)
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"sale": `},
		{"missing sale id", `{"sale": {"store": "S", "items": []}, "template": {"components": [{"id": "t", "type": "totals", "enabled": true}]}}`},
		{"missing items", `{"sale": {"id": "1", "store": "S"}, "template": {"components": [{"id": "t", "type": "totals", "enabled": true}]}}`},
		{"empty template", `{"sale": {"id": "1", "store": "S", "items": []}, "template": {"components": []}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, "/print/receipt", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestShift_Printed(t *testing.T) {
	rec := do(testServer(true, nil, nil), http.MethodPost, "/print/shift", validShift)
	require.Equal(t, http.StatusOK, rec.Code)

	var body printResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "printed", body.Status)
	assert.Equal(t, delivery.MethodDevice, body.Method)
}

func TestShift_Validation(t *testing.T) {
	s := testServer(true, nil, nil)
	for name, body := range map[string]string{
		"malformed json":   `{"id": `,
		"missing store":    `{"id": "shift-1", "payments": []}`,
		"missing payments": `{"id": "shift-1", "store": "S"}`,
	} {
		rec := do(s, http.MethodPost, "/print/shift", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestShiftSample_SkipsValidation(t *testing.T) {
	rec := do(testServer(true, nil, nil), http.MethodPost, "/print/shift/sample", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body printResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "printed", body.Status)
}

func TestTestPrint_Initiated(t *testing.T) {
	rec := do(testServer(true, nil, nil), http.MethodPost, "/print/test", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "initiated", body["status"])
}

func TestCORSPreflight(t *testing.T) {
	rec := do(testServer(true, nil, nil), http.MethodOptions, "/print/receipt", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
