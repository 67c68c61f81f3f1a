package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/taigrr/dualraster/internal/log"
)

var logger = log.New("dualraster")

// setupLogging applies the global verbosity flags and opens the log file.
// Frontends that own the terminal pass quiet so output without a log file is
// dropped. The returned function closes the file.
func setupLogging(ctx *cli.Context, quiet bool) (func(), error) {
	verbosity := 0
	if ctx.GlobalBool("v") {
		verbosity = 1
	}
	if ctx.GlobalBool("vv") {
		verbosity = 2
	}

	if path := ctx.GlobalString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetSink(f)
		log.SetLevel(log.LevelFromVerbosity(verbosity))
		return func() { f.Close() }, nil
	}

	if quiet {
		log.SetSink(io.Discard)
	}
	log.SetLevel(log.LevelFromVerbosity(verbosity))
	return func() {}, nil
}
