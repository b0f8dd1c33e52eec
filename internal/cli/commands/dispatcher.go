package commands

import (
	"TaskBuckets/internal/config"
	"context"
	"errors"
	"fmt"
	"strings"
)

// Коды выхода процесса.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Dispatch — единая точка запуска команд CLI. Печатает справку и ошибки,
// возвращает код выхода процесса.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	name := strings.ToLower(args[0])
	if name == "help" || name == "-h" || name == "--help" {
		return help(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		unknown(name)
		return ExitUsage
	}
	// tbcli <command> --help
	for _, a := range args[1:] {
		if a == "-h" || a == "--help" {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return ExitOK
		}
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return ExitUsage
	default:
		fmt.Fprintf(Out, "%s error: %s\n", name, describe(err))
		return ExitError
	}
}

// help печатает общую справку или usage одной команды.
func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitOK
	}
	c, ok := Get(args[0])
	if !ok {
		unknown(args[0])
		return ExitUsage
	}
	fmt.Fprintf(Out, "Usage: %s\n%s\n", c.Usage(), c.Description())
	return ExitOK
}

func unknown(name string) {
	fmt.Fprintf(Out, "Unknown command: %s\n", name)
	if s := Suggest(name); len(s) > 0 {
		fmt.Fprintf(Out, "Did you mean: %s?\n", strings.Join(s, ", "))
		return
	}
	fmt.Fprint(Out, "\n", FormatGlobalUsage())
}
