// verify-agent reads a delivery note photo with the configured model and prints
// the order it would propose against the seed catalog. Nothing is saved.
//
// Usage: go run ./cmd/verify-agent <photo.jpg>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"bar-inventory/internal/ai"
	"bar-inventory/internal/config"
	"bar-inventory/internal/core"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger("info", "text").Fatalf("config: %v", err)
	}
	log := config.NewLogger(cfg.LogLevel, "text")
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY not set")
	}
	if len(os.Args) < 2 {
		log.Fatal("Usage: verify-agent <photo>")
	}

	image, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("read photo: %v", err)
	}
	mimeType := http.DetectContentType(image)

	catalog := core.SeedCatalog()
	names := make([]string, len(catalog))
	for i, it := range catalog {
		names[i] = it.Name
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	agent := ai.NewAgent(cfg.OpenAIKey, cfg.OpenAIModel)
	fmt.Printf("READING: %s (%s, %d bytes)\n", os.Args[1], mimeType, len(image))
	captured, err := agent.CaptureOrder(ctx, image, mimeType, names)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("\n--- CAPTURED ---\n")
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(captured)

	match := core.MatchCapturedOrder(*captured, catalog, time.Now())
	fmt.Printf("\n--- MATCHED ---\n")
	fmt.Printf("Supplier: %s  Date: %s\n", match.Order.SupplierName, match.Order.OrderDate)
	byID := map[string]string{}
	for _, it := range catalog {
		byID[it.ID] = it.Name
	}
	for _, l := range match.Order.Lines {
		fmt.Printf("- %-36s %8s x %10s\n", byID[l.InventoryItemID], l.Quantity.String(), l.UnitPrice.StringFixed(4))
	}
	fmt.Printf("Computed total: %s  Printed total: %s\n", match.Order.TotalAmount.StringFixed(2), match.PrintedTotal.StringFixed(2))
	for _, name := range match.Unmatched {
		fmt.Printf("Unmatched: %s\n", name)
	}
}
