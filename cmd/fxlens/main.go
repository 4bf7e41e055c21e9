package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"

	"FxLens/internal/logging"

	"github.com/google/subcommands"
)

func main() {
	logger := logging.New(logging.ParseLevel(os.Getenv("FXLENS_LOG_LEVEL")))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	commander.Register(&renderCmd{logger: logger}, "")
	commander.Register(&serveCmd{logger: logger}, "")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	status := commander.Execute(ctx)
	stop()
	logger.Sync()
	os.Exit(int(status))
}
