package main

import (
	"github.com/riddlewars/riddlewars-cli/internal/cli"
)

func main() {
	cli.Execute()
}
