package commands

import (
	"TaskBuckets/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage — аргументы команды неверны, нужно показать её usage.
var ErrUsage = errors.New("usage")

// Command — подкоманда CLI.
type Command interface {
	// Name — имя, которое вводит пользователь, например "task-add".
	Name() string
	// Description — короткое описание для справки.
	Description() string
	// Usage — строка использования, например "move <task-id> <bucket-id>".
	Usage() string
	// Run выполняет команду; args без имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

var registry = map[string]Command{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, в тестах переназначается.
var Out io.Writer = os.Stdout

// RegisterCmd добавляет команду в реестр; вызывается из init() файла команды.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get возвращает команду по имени (без учёта регистра).
func Get(name string) (Command, bool) {
	c, ok := registry[strings.ToLower(name)]
	return c, ok
}

// List возвращает все команды, отсортированные по имени.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Разделы справки в порядке вывода.
var sections = []string{"Account", "Board", "Buckets", "Tasks", "Other"}

func sectionOf(name string) string {
	switch {
	case strings.HasPrefix(name, "bucket"):
		return "Buckets"
	case strings.HasPrefix(name, "task"):
		return "Tasks"
	}
	switch name {
	case "register", "login", "logout", "status":
		return "Account"
	case "board", "move", "refresh":
		return "Board"
	}
	return "Other"
}

// Suggest возвращает команды, похожие на неизвестное имя: с общим
// префиксом до дефиса или содержащие его как подстроку.
func Suggest(name string) []string {
	name = strings.ToLower(name)
	if name == "" {
		return nil
	}
	stem, _, _ := strings.Cut(name, "-")
	var out []string
	for _, c := range List() {
		n := c.Name()
		if strings.HasPrefix(n, stem) || strings.Contains(n, name) {
			out = append(out, n)
		}
	}
	return out
}

// FormatGlobalUsage собирает справку по всем командам, сгруппированную по разделам.
func FormatGlobalUsage() string {
	var b strings.Builder
	b.WriteString("TaskBuckets CLI\n\n")
	b.WriteString("Usage:\n  tbcli [--base-url <host:port>] [--verbose] <command> [args]\n")

	grouped := map[string][]Command{}
	for _, c := range List() {
		s := sectionOf(c.Name())
		grouped[s] = append(grouped[s], c)
	}
	for _, s := range sections {
		cmds := grouped[s]
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s commands:\n", s)
		for _, c := range cmds {
			fmt.Fprintf(&b, "  %-56s %s\n", c.Usage(), c.Description())
		}
	}
	b.WriteString("\nRun 'tbcli help <command>' for the usage of one command.\n")
	return b.String()
}
