//go:build windows

package spool

import (
	"context"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	winspool               = windows.NewLazySystemDLL("winspool.drv")
	procOpenPrinter        = winspool.NewProc("OpenPrinterW")
	procClosePrinter       = winspool.NewProc("ClosePrinter")
	procStartDocPrinter    = winspool.NewProc("StartDocPrinterW")
	procEndDocPrinter      = winspool.NewProc("EndDocPrinter")
	procStartPagePrinter   = winspool.NewProc("StartPagePrinter")
	procEndPagePrinter     = winspool.NewProc("EndPagePrinter")
	procWritePrinter       = winspool.NewProc("WritePrinter")
	procGetDefaultPrinterW = winspool.NewProc("GetDefaultPrinterW")
)

// docInfo1 mirrors DOC_INFO_1 from winspool.h.
type docInfo1 struct {
	DocName  *uint16
	Output   *uint16
	Datatype *uint16
}

// rawTimeout bounds the winspool call: a stuck Print Spooler service
// blocks inside OpenPrinterW/WritePrinter with no error, and the caller
// often arrives with an unbounded context. Variable so tests can
// shorten it.
var rawTimeout = commandTimeout

// rawWriter is swapped out by tests.
var rawWriter = writeRaw

func (s *Spooler) printerName() (string, error) {
	if s.queue != "" {
		return s.queue, nil
	}
	var n uint32 = 256
	buf := make([]uint16, n)
	r, _, callErr := procGetDefaultPrinterW.Call(
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&n)))
	if r == 0 {
		return "", fmt.Errorf("no default printer: %v", callErr)
	}
	return windows.UTF16ToString(buf), nil
}

// submitRaw hands the file to the spooler as a RAW datatype job, so the
// driver passes the bytes through without page-layout transformation.
func (s *Spooler) submitRaw(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, rawTimeout)
	defer cancel()

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	name, err := s.printerName()
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- rawWriter(name, data) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func writeRaw(printerName string, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	namePtr, err := windows.UTF16PtrFromString(printerName)
	if err != nil {
		return err
	}

	var h windows.Handle
	r, _, callErr := procOpenPrinter.Call(
		uintptr(unsafe.Pointer(namePtr)),
		uintptr(unsafe.Pointer(&h)),
		0)
	if r == 0 {
		return fmt.Errorf("OpenPrinter %s: %v", printerName, callErr)
	}
	defer procClosePrinter.Call(uintptr(h))

	docName, _ := windows.UTF16PtrFromString("thermal-printer job")
	datatype, _ := windows.UTF16PtrFromString("RAW")
	di := docInfo1{DocName: docName, Datatype: datatype}
	r, _, callErr = procStartDocPrinter.Call(uintptr(h), 1, uintptr(unsafe.Pointer(&di)))
	if r == 0 {
		return fmt.Errorf("StartDocPrinter: %v", callErr)
	}
	defer procEndDocPrinter.Call(uintptr(h))

	r, _, callErr = procStartPagePrinter.Call(uintptr(h))
	if r == 0 {
		return fmt.Errorf("StartPagePrinter: %v", callErr)
	}
	defer procEndPagePrinter.Call(uintptr(h))

	var written uint32
	r, _, callErr = procWritePrinter.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(&data[0])),
		uintptr(uint32(len(data))),
		uintptr(unsafe.Pointer(&written)))
	if r == 0 {
		return fmt.Errorf("WritePrinter: %v", callErr)
	}
	if int(written) != len(data) {
		return fmt.Errorf("WritePrinter: short write %d of %d", written, len(data))
	}
	return nil
}

// submitQueue uses the classic print utility against the named queue.
func (s *Spooler) submitQueue(ctx context.Context, path string) error {
	name, err := s.printerName()
	if err != nil {
		return err
	}
	return s.run(ctx, "print", "/D:"+name, path)
}
