package view

import (
	"TaskBuckets/internal/model"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PriorityIcon — значок приоритета задачи.
func PriorityIcon(p model.Priority) string {
	switch p {
	case model.PriorityMedium:
		return "🟡"
	case model.PriorityHigh:
		return "🟠"
	case model.PriorityUrgent:
		return "🔴"
	default:
		return "🟢"
	}
}

var (
	dimStyle  = lipgloss.NewStyle().Faint(true)
	doneStyle = lipgloss.NewStyle().Strikethrough(true).Faint(true)
)

// TextColor подбирает чёрный или белый текст для фона цвета бакета.
func TextColor(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return "#ffffff"
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return "#ffffff"
	}
	// яркость по YIQ
	if (r*299+g*587+b*114)/1000 >= 128 {
		return "#000000"
	}
	return "#ffffff"
}

// BucketHeader — имя бакета на фоне его цвета.
func BucketHeader(b model.Bucket) string {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(lipgloss.Color(b.Color)).
		Foreground(lipgloss.Color(TextColor(b.Color))).
		Render(b.Name)
}

// TaskLine — одна строка задачи.
func TaskLine(t model.Task) string {
	check := "[ ]"
	title := t.Title
	if t.Completed {
		check = "[x]"
		title = doneStyle.Render(title)
	}
	line := fmt.Sprintf("%s %s #%d %s", check, PriorityIcon(t.Priority), t.ID, title)
	if t.Description != nil && *t.Description != "" {
		line += dimStyle.Render(": " + *t.Description)
	}
	return line
}

// RenderBoard печатает доску колонка за колонкой.
func RenderBoard(w io.Writer, board Board) {
	for i, col := range board.Columns {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s #%d  %d/%d done\n", BucketHeader(col.Bucket), col.Bucket.ID, col.Completed, col.Total)
		if len(col.Tasks) == 0 {
			fmt.Fprintln(w, "  "+dimStyle.Render(emptyText(col)))
			continue
		}
		for _, t := range col.Tasks {
			fmt.Fprintln(w, "  "+TaskLine(t))
		}
	}
}

func emptyText(col Column) string {
	if col.Bucket.IsInbox() {
		return "Empty inbox! Woohoo! 🎉"
	}
	return "Wow, such empty."
}

// RenderBuckets печатает список бакетов.
func RenderBuckets(w io.Writer, buckets []model.Bucket) {
	for _, b := range buckets {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render("■")
		fmt.Fprintf(w, "%s #%d %s %s\n", swatch, b.ID, b.Name, dimStyle.Render(b.Color))
	}
}

// RenderTasks печатает плоский список задач.
func RenderTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no tasks"))
		return
	}
	var sb strings.Builder
	for _, t := range tasks {
		sb.WriteString(TaskLine(t))
		sb.WriteString(fmt.Sprintf(" (bucket %d)\n", t.BucketID))
	}
	fmt.Fprint(w, sb.String())
}
