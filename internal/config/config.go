package config

import "os"

type Config struct {
	// DatabaseURL selects the storage backend by scheme (mysql://,
	// postgres://, sqlite://).
	DatabaseURL  string
	Port         string
	ProductsFile string
	OrdersFile   string
}

func Load() Config {
	return Config{
		DatabaseURL:  getenv("DATABASE_URL", "mysql://root:@127.0.0.1:3306/product_order_db"),
		Port:         getenv("PORT", "8000"),
		ProductsFile: getenv("PRODUCTS_FILE", "data/products.json"),
		OrdersFile:   getenv("ORDERS_FILE", "data/orders.json"),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
