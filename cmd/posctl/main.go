package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/tokobajukeren/pos-api/cmd/app"
	"github.com/tokobajukeren/pos-api/internal/cli"
)

func main() {
	os.Exit(cli.Execute(app.ConfigPath()))
}
