package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/autoadvisor-dev/autoadvisor/internal/commands"
)

func main() {
	// Optional .env for OPENAI_API_KEY; absence is fine.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
