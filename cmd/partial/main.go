package main

import (
	"os"

	"github.com/go-partial/partial/cli"
)

func main() {
	os.Exit(cli.Run())
}
