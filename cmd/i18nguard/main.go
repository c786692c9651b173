package main

import (
	"os"

	"i18nguard/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
