package main

import (
	"TaskBuckets/internal/cli/commands"
	"TaskBuckets/internal/config"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	os.Exit(run(os.Stdout))
}

// run разбирает конфиг и флаги, выполняет одну команду и возвращает код выхода.
func run(stdout io.Writer) int {
	cfg := config.NewConfig()
	if cfg.Version {
		printVersion(stdout)
		return commands.ExitOK
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.Out = stdout
	return commands.Dispatch(ctx, cfg, flag.Args())
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "tbcli (TaskBuckets client) %s, built %s\n", version, buildDate)
}
