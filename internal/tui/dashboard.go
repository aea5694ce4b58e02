package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/gobarber/internal/auth"
	"github.com/naveenspark/gobarber/internal/browser"
	"github.com/naveenspark/gobarber/internal/toast"
	"github.com/naveenspark/gobarber/pkg/domain"
)

// Replaced in tests.
var (
	copyToClipboard = clipboard.WriteAll
	openURL         = browser.Open
)

type dashboardModel struct {
	session *auth.Manager
	toasts  *toast.Manager
	user    *domain.User
	width   int
}

func newDashboardModel(session *auth.Manager, toasts *toast.Manager) dashboardModel {
	return dashboardModel{session: session, toasts: toasts}
}

func (m dashboardModel) enter() (dashboardModel, tea.Cmd) {
	m.user = m.session.CurrentUser()
	return m, nil
}

func (m dashboardModel) leave() dashboardModel {
	return m
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Profile):
			return m, navigate(viewProfile)
		case key.Matches(msg, keys.SignOut):
			m.session.SignOut()
			return m, navigate(viewSignIn)
		case key.Matches(msg, keys.QuitDash):
			return m, tea.Quit
		case key.Matches(msg, keys.CopyEmail):
			if m.user == nil || m.user.Email == "" {
				return m, nil
			}
			if err := copyToClipboard(m.user.Email); err != nil {
				m.toasts.Add(toast.Message{Type: domain.ToastError, Title: "Não foi possível copiar", Description: err.Error()})
				return m, nil
			}
			m.toasts.Add(toast.Message{Type: domain.ToastInfo, Title: "E-mail copiado"})
		case key.Matches(msg, keys.OpenAvatar):
			if m.user == nil || !m.user.HasAvatar() {
				m.toasts.Add(toast.Message{Type: domain.ToastInfo, Title: "Sem avatar", Description: "Envie uma foto pela tela de perfil."})
				return m, nil
			}
			if err := openURL(m.user.AvatarURL); err != nil {
				m.toasts.Add(toast.Message{Type: domain.ToastError, Title: "Não foi possível abrir o avatar", Description: err.Error()})
			}
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.user == nil {
		return "  " + dimStyle.Render("Carregando...") + "\n"
	}
	var b strings.Builder
	name := m.user.Name
	if name == "" {
		name = m.user.Email
	}
	fmt.Fprintf(&b, "  %s\n", titleStyle.Render("Bem-vindo, "+firstName(name)))
	fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render("Nome  "), selectedStyle.Render(name))
	fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render("E-mail"), accentStyle.Render(m.user.Email))

	avatar := dimStyle.Render("nenhum")
	if m.user.HasAvatar() {
		maxLen := 60
		if m.width > 20 {
			maxLen = m.width - 12
		}
		avatar = dimStyle.Render(truncStr(m.user.AvatarURL, maxLen))
	}
	fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render("Avatar"), avatar)
	return b.String()
}

func (m dashboardModel) help() string {
	return helpBar(keys.Profile, keys.CopyEmail, keys.OpenAvatar, keys.SignOut, keys.QuitDash)
}
