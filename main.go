package main

import (
	_ "github.com/joho/godotenv/autoload"
	_ "golang.org/x/crypto/x509roots/fallback"

	"github.com/gede-cahya/portfolio/cmd"
)

// Set with -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
