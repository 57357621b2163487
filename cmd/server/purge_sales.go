package main

// Helper: go run ./cmd/server -purge-sales
// Deletes every sale. Kept behind an explicit flag; there is no undo.

import (
	"flag"
	"log"

	"github.com/sogepi/gestion/internal/db"
	"github.com/sogepi/gestion/internal/models"
)

var purgeSalesFlag = flag.Bool("purge-sales", false, "Delete ALL sales and exit")

func runPurgeSales() {
	conn, err := db.ConnectAndMigrate()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	res := conn.Where("1 = 1").Delete(&models.Sale{})
	if res.Error != nil {
		log.Fatalf("purge sales: %v", res.Error)
	}
	log.Printf("Purge done: %d sales deleted", res.RowsAffected)
}
