package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mlircomp ") + valueStyle.Render(data.Version) + "\n\n")

	b.WriteString(renderConfig(data))
	b.WriteString("\n")

	b.WriteString(renderOptimizer(data))
	b.WriteString("\n")

	b.WriteString(renderCache(data))

	return b.String()
}

func renderConfig(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Configuration:") + "\n")

	if data.ConfigPath != "" {
		b.WriteString("   " + keyStyle.Render("File: ") + subtleStyle.Render(data.ConfigPath) + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render("File: ") + subtleStyle.Render("none (built-in defaults)") + "\n")
	}

	b.WriteString("   " + keyStyle.Render("Commands: ") + valueStyle.Render(strings.Join(data.Commands, ", ")) + "\n")
	b.WriteString("   " + keyStyle.Render("Hidden options: ") + valueStyle.Render(onOff(data.IncludeHidden)) + "\n")

	if data.Highlighter != "" {
		b.WriteString("   " + keyStyle.Render("Highlighter: ") + valueStyle.Render(data.Highlighter) + "\n")
	}

	return b.String()
}

func renderOptimizer(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Optimizer:") + "\n")

	if data.BinaryPath != "" {
		b.WriteString("   " + keyStyle.Render(data.Command+": ") + successStyle.Render(data.BinaryPath) + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render(data.Command+": ") + errorStyle.Render("not found on PATH") + "\n")
	}

	return b.String()
}

func renderCache(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Cache:") + "\n")

	if !data.CacheEnabled {
		b.WriteString("   " + subtleStyle.Render("disabled") + "\n")
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("Path: ") + subtleStyle.Render(data.CachePath) + "\n")
	b.WriteString("   " + keyStyle.Render("Size: ") + valueStyle.Render(formatBytes(data.CacheFileSize)) + "\n")
	b.WriteString("   " + keyStyle.Render("Entries: ") + valueStyle.Render(fmt.Sprintf("%d", len(data.Entries))) + "\n")

	for _, entry := range data.Entries {
		b.WriteString(fmt.Sprintf("      %s %s\n",
			valueStyle.Render(entry.Binary),
			subtleStyle.Render(fmt.Sprintf("(%d options, %d pass options, used %s)",
				entry.Options, entry.PassOptions, entry.LastAccessed.Format("2006-01-02")))))
	}

	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
