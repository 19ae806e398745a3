package main

import (
	"github.com/beenthere-labs/beenthere/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
