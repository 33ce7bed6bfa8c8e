package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess       = 0 // Everything parsed and exported
	ExitPartialFailed = 1 // Some inputs failed, others were processed
	ExitError         = 2 // Configuration or runtime error
)

// PartialFailureError indicates the run completed but some inputs could not
// be processed.
type PartialFailureError struct {
	Message string
}

func (e *PartialFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var partialErr *PartialFailureError
		if errors.As(err, &partialErr) {
			os.Exit(ExitPartialFailed)
		}

		os.Exit(ExitError)
	}
}
