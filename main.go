package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/veritaslabs/veritas/internal/cli"
	"github.com/veritaslabs/veritas/internal/logger"
)

func main() {
	// Best-effort: API keys may live in a local .env.
	_ = godotenv.Load()

	defer logger.Sync()
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
