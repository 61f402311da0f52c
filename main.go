package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // loadouts generated or scenarios valid
	ExitInvalid = 1 // a scenario failed validation
	ExitError   = 2 // configuration or runtime error
)

// ValidationError reports scenarios that were read but rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var invalid *ValidationError
		if errors.As(err, &invalid) {
			os.Exit(ExitInvalid)
		}
		os.Exit(ExitError)
	}
}
