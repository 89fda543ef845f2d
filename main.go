package main

import (
	"os"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/adapters/driving/cli"
)

func main() {
	os.Exit(cli.Execute())
}
