package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

func main() {
	app := newApp(os.Stdout, afero.NewOsFs())
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "requests: %v\n", err)
		os.Exit(1)
	}
}
