package main

import (
	"os"

	"github.com/joho/godotenv"

	"trackthething/internal/cli"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
