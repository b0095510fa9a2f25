package cmd

import (
	"github.com/achilleasa/aabbtree/log"
	"github.com/urfave/cli"
)

var logger = log.New("aabbtree")

// Apply the verbosity selected by the global flags.
func setupLogging(ctx *cli.Context) {
	level := logLevel(ctx.GlobalBool("q"), ctx.GlobalBool("v"), ctx.GlobalBool("vv"))
	log.SetLevel(level)
	logger.Debugf("log level set to %d", level)
}

// Map the verbosity flags to a log level. The most verbose flag wins; with no
// flags the Notice level is used.
func logLevel(quiet, verbose, veryVerbose bool) log.Level {
	switch {
	case veryVerbose:
		return log.Debug
	case verbose:
		return log.Info
	case quiet:
		return log.Warning
	}
	return log.Notice
}
