package main

import (
	"os"

	"github.com/empath-review/empath/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
