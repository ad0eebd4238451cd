package main

import (
	"os"

	"github.com/joho/godotenv"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/cli/cmd"
)

func main() {
	// A .env next to the config file is a convenience, not a requirement.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
