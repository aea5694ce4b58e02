package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/gobarber/pkg/domain"
)

// Shimmer animation for the GOBARBER logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "G O B A R B E R" as a wave of amber light
// moving from dark umber (#4a2a00) to the brand orange (#ff9000).
func renderShimmerLogo(frame int) string {
	const text = "GOBARBER"
	n := len(text)

	var out strings.Builder
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18
		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(74 + b*(255-74))
		g := clampByte(42 + b*(144-42))
		bl := clampByte(0)

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)
		out.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color)).
			Render(string(text[i])))

		if i < n-1 {
			out.WriteString("  ")
		}
	}

	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999591"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f4ede8")).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666360"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff9000"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f4ede8")).
			Bold(true).
			MarginBottom(1)

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999591"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666360"))

	// Form fields
	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ff9000"))

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666360"))

	fieldErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c53030"))

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff9000")).
			Italic(true)

	// Toasts
	toastBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	toastDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0bbb7"))
)

// toastColors follows the light backgrounds of the web client, shifted to
// read on a dark terminal.
var toastColors = map[domain.ToastType]lipgloss.Color{
	domain.ToastInfo:    lipgloss.Color("#63b3ed"),
	domain.ToastSuccess: lipgloss.Color("#4fd1c5"),
	domain.ToastError:   lipgloss.Color("#f56565"),
}

func toastColor(t domain.ToastType) lipgloss.Color {
	if c, ok := toastColors[t]; ok {
		return c
	}
	return toastColors[domain.ToastInfo]
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
