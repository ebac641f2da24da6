package main

import (
	"fmt"
	"os"
)

func main() {
	app := newApp(&runner{})
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
