package main

// Helper: go run ./cmd/server -backfill-designations
// Old multi-line sales were written without the product name in each json
// item; this fills the missing designations from the product catalogue.

import (
	"encoding/json"
	"flag"
	"log"

	"github.com/sogepi/gestion/internal/db"
	"github.com/sogepi/gestion/internal/models"

	"gorm.io/datatypes"
)

var backfillFlag = flag.Bool("backfill-designations", false, "Backfill missing item designations from the product catalogue and exit")

func runBackfillDesignations() {
	conn, err := db.ConnectAndMigrate()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	var products []models.Product
	if err := conn.Find(&products).Error; err != nil {
		log.Fatalf("list products: %v", err)
	}
	nameByID := make(map[string]string, len(products))
	for _, p := range products {
		nameByID[p.ID] = p.Name
	}

	var sales []models.Sale
	if err := conn.Where("items IS NOT NULL").Find(&sales).Error; err != nil {
		log.Fatalf("list sales: %v", err)
	}
	type item struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Price    float64 `json:"price"`
	}
	updated := 0
	for _, s := range sales {
		var items []item
		if err := json.Unmarshal(s.Items, &items); err != nil || len(items) == 0 {
			continue
		}
		changed := false
		for i := range items {
			if items[i].Name == "" {
				if name, ok := nameByID[items[i].ID]; ok {
					items[i].Name = name
					changed = true
				}
			}
		}
		if !changed {
			continue
		}
		raw, err := json.Marshal(items)
		if err != nil {
			continue
		}
		if err := conn.Model(&models.Sale{}).Where("id = ?", s.ID).Update("items", datatypes.JSON(raw)).Error; err == nil {
			updated++
		}
	}
	log.Printf("Backfill done: %d sales updated", updated)
}
