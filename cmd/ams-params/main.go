package main

import (
	"fmt"
	"os"

	"github.com/computerscienceiscool/ams-params/internal/cli"
	apperrors "github.com/computerscienceiscool/ams-params/internal/errors"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(apperrors.ExitCode(err))
	}
}
