package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dealerlist/dealerlist-backend/config"
	"github.com/dealerlist/dealerlist-backend/internal/app/repository"
	"github.com/dealerlist/dealerlist-backend/internal/app/service"
	"github.com/dealerlist/dealerlist-backend/internal/db"
)

// Bulk-loads a dealer contact sheet (CSV or XLSX) straight into the
// database, using the same pipeline as the upload endpoint.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <csv_or_xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		log.Fatal("Failed to open file:", err)
	}
	defer file.Close()

	fmt.Printf("Importing dealers from: %s\n", filePath)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	dealerRepo := repository.NewDealerRepository(db.GetDB())
	importService := service.NewImportService(dealerRepo)

	summary, err := importService.ImportFile(filePath, file)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Println(summary.Message())
	fmt.Printf("Imported: %d, failed: %d, skipped: %d\n",
		summary.SuccessCount, summary.ErrorCount, summary.SkippedCount)
}
