package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/rukaiya14/data-weaver-dashboard/internal/config"
	"github.com/rukaiya14/data-weaver-dashboard/internal/repository"
	"github.com/rukaiya14/data-weaver-dashboard/internal/services"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/database"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/logging"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/metrics"
)

func main() {
	// Parse command-line flags
	csvPath := flag.String("csv", "./data/orders.csv", "Path to the order history CSV file")
	replace := flag.Bool("replace", true, "Replace the stored history instead of merging")
	sample := flag.Bool("sample", false, "Load generated sample data instead of a CSV file")
	sampleDays := flag.Int("sample-days", 30, "Number of days of sample data to generate")
	sampleSeed := flag.Int64("sample-seed", 1, "Seed for sample data generation")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := logging.NewStructuredLogger("data-weaver-ingester", "1.0.0", logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()
	logger.Info(ctx, "[INGESTER_START] Starting order data ingestion", logging.Fields{
		"version":  "1.0.0",
		"csv_path": *csvPath,
		"replace":  *replace,
		"sample":   *sample,
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("data_weaver_ingester")

	// Initialize database
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}

	db, err := database.NewPostgresDB(dbConfig, logger, metricsCollector)
	if err != nil {
		logger.Fatal(ctx, "[INGESTER_ERROR] Failed to connect to database", logging.Fields{}, err)
	}
	defer db.Close()

	// Initialize repository and services
	orderRepo := repository.NewOrderRepository(db, logger, metricsCollector)
	ingestionService := services.NewIngestionService(orderRepo, logger, metricsCollector)

	if *sample {
		records := services.GenerateSampleOrders(rand.New(rand.NewSource(*sampleSeed)), *sampleDays)
		if err := orderRepo.ReplaceOrders(ctx, records); err != nil {
			logger.Fatal(ctx, "[INGESTION_ERROR] Failed to load sample data", logging.Fields{}, err)
		}

		fmt.Printf("Loaded %d days of sample order data\n", len(records))
		return
	}

	result, err := ingestionService.IngestFile(ctx, *csvPath, *replace)
	if err != nil {
		logger.Fatal(ctx, "[INGESTION_ERROR] Ingestion failed", logging.Fields{
			"csv_path": *csvPath,
		}, err)
	}

	// Print results
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("INGESTION COMPLETE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Total Rows:    %d\n", result.TotalRows)
	fmt.Printf("Loaded Rows:   %d\n", result.LoadedRows)
	fmt.Printf("Coerced Rows:  %d\n", result.CoercedRows)
	fmt.Printf("Dropped Rows:  %d\n", result.DroppedRows)
	fmt.Printf("Duration:      %v\n", result.Duration)

	logger.Info(ctx, "[INGESTER_COMPLETE] Ingestion completed successfully", logging.Fields{
		"total_rows":       result.TotalRows,
		"loaded_rows":      result.LoadedRows,
		"coerced_rows":     result.CoercedRows,
		"dropped_rows":     result.DroppedRows,
		"duration_seconds": result.Duration.Seconds(),
	})
}
