package main

import (
	"github.com/conclave-gg/conclave/internal/cli"
)

func main() {
	cli.Execute()
}
