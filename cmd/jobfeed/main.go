package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amishk599/jobfeed/internal/model"
)

// Exit codes.
const (
	exitOK     = 0
	exitFatal  = 1
	exitConfig = 2
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stderr))
}

// execute runs the root command with args and maps its error to an exit code.
func execute(args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(stderr, "jobfeed: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, model.ErrConfig):
		return exitConfig
	default:
		return exitFatal
	}
}
