package main

import (
	"log"

	"product-order-service/internal/config"
	"product-order-service/internal/db"
	"product-order-service/internal/handlers"
	"product-order-service/internal/seed"
)

func main() {
	cfg := config.Load()

	// Best effort: if the admin connection fails, Open below reports the
	// real problem.
	if err := db.EnsureDatabase(cfg.DatabaseURL); err != nil {
		log.Printf("⚠️ Could not ensure database exists: %v", err)
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to database")

	if err := db.AutoMigrate(database); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	if err := seed.Run(database, cfg.ProductsFile, cfg.OrdersFile); err != nil {
		log.Fatalf("Failed to seed initial data: %v", err)
	}

	router := handlers.NewRouter(db.NewProductRepository(database), db.NewOrderRepository(database))

	log.Printf("🚀 Product Order API starting on http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
