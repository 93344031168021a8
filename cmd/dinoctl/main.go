package main

import (
	"github.com/dadportal/dinojump-go/internal/cli"
)

func main() {
	cli.Execute()
}
