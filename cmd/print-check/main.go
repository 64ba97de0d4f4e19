package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// print-check exercises a running agent end to end: health, a fixed-data
// shift sample and a templated receipt. It is the field tool for
// verifying a register installation without touching the POS front end.

func main() {
	base := "http://localhost:3519"
	if len(os.Args) > 1 {
		base = os.Args[1]
	}

	fmt.Println("=== Agent check:", base, "===")

	fmt.Println("\n1. Health...")
	checkHealth(base)

	fmt.Println("\n2. Shift sample print...")
	checkShiftSample(base)

	fmt.Println("\n3. Templated receipt print...")
	checkReceipt(base)

	fmt.Println("\n=== Done ===")
}

var client = &http.Client{Timeout: 90 * time.Second}

func checkHealth(base string) {
	resp, err := client.Get(base + "/health")
	if err != nil {
		fmt.Println("  FAILED:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("  %d %s", resp.StatusCode, body)
}

func checkShiftSample(base string) {
	sample := map[string]interface{}{
		"id":           "check-shift-1",
		"store":        "Do'kon 1",
		"register":     "KASSA-01",
		"cashier":      "Smoke Test",
		"opened_at":    "2026-08-23 08:00:00",
		"closed_at":    "2026-08-23 20:00:00",
		"opening_cash": 100000,
		"closing_cash": 254000,
		"payments": []map[string]interface{}{
			{"method": "Naqd", "expected": 154000, "actual": 154000},
			{"method": "Karta", "expected": 98000, "actual": 98000},
		},
		"totals": map[string]interface{}{
			"expected": 252000, "actual": 252000, "difference": 0,
		},
	}
	post(base+"/print/shift/sample", sample)
}

func checkReceipt(base string) {
	req := map[string]interface{}{
		"sale": map[string]interface{}{
			"id":           "check-sale-1",
			"store":        "Do'kon 1",
			"number":       "000123",
			"date":         "2026-08-23 12:30:00",
			"cashier":      "Smoke Test",
			"total_amount": 25000,
			"items": []map[string]interface{}{
				{"name": "Non", "quantity": 2, "unit": "dona", "subtotal": 20000},
				{"name": "Suv", "quantity": 1, "subtotal": 5000},
			},
			"payments": []map[string]interface{}{
				{"method": "Naqd", "amount": 30000},
			},
		},
		"template": map[string]interface{}{
			"name":    "check",
			"version": 1,
			"components": []map[string]interface{}{
				{"id": "h", "type": "text", "enabled": true, "order": 1,
					"styles": map[string]interface{}{"textAlign": "center", "fontWeight": "bold"},
					"data":   map[string]interface{}{"text": "{{store_name}}\nChek {{receipt_number}}"}},
				{"id": "d1", "type": "divider", "enabled": true, "order": 2,
					"styles": map[string]interface{}{"border": true}},
				{"id": "items", "type": "itemList", "enabled": true, "order": 3},
				{"id": "totals", "type": "totals", "enabled": true, "order": 4},
				{"id": "pay", "type": "paymentList", "enabled": true, "order": 5},
				{"id": "f", "type": "footer", "enabled": true, "order": 6,
					"styles": map[string]interface{}{"textAlign": "center"},
					"data":   map[string]interface{}{"text": "Qaytim: {{change}}"}},
			},
		},
	}
	post(base+"/print/receipt", req)
}

func post(url string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		fmt.Println("  FAILED:", err)
		return
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Println("  FAILED:", err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("  %d %s", resp.StatusCode, body)
}
