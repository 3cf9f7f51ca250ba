package main

import (
	"fmt"
	"os"

	"github.com/madkins23/go-docstore/cmd/docstore/app"
	"github.com/madkins23/go-docstore/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %s\n", err)
		os.Exit(1)
	}

	if err := app.New(cfg, app.OpenClient).Execute(); err != nil {
		os.Exit(1)
	}
}
