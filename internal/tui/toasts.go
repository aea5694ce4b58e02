package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/gobarber/pkg/domain"
)

const maxToastWidth = 48

// renderToasts stacks the active toasts, oldest first, right-aligned to width.
func renderToasts(toasts []domain.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	boxWidth := maxToastWidth
	if width > 0 && width-4 < boxWidth {
		boxWidth = width - 4
	}
	if boxWidth < 12 {
		boxWidth = 12
	}

	boxes := make([]string, 0, len(toasts))
	for _, t := range toasts {
		boxes = append(boxes, renderToast(t, boxWidth))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, boxes...)
	if width > 0 {
		stack = lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
	}
	return strings.TrimRight(stack, "\n")
}

func renderToast(t domain.Toast, width int) string {
	color := toastColor(t.Type)
	// border and padding take four columns
	inner := width - 4

	title := lipgloss.NewStyle().Foreground(color).Bold(true).Render(truncStr(t.Title, inner))
	body := title
	if t.Description != "" {
		body += "\n" + toastDescStyle.Width(inner).Render(t.Description)
	}
	return toastBoxStyle.
		BorderForeground(color).
		Width(width - 2).
		Render(body)
}
