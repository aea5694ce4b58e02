package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/gobarber/internal/auth"
	"github.com/naveenspark/gobarber/internal/form"
	"github.com/naveenspark/gobarber/internal/toast"
	"github.com/naveenspark/gobarber/pkg/domain"
)

type signInDoneMsg struct {
	seq int
	err error
}

type signInModel struct {
	session *auth.Manager
	toasts  *toast.Manager
	fields  fieldSet
	req     request
}

func newSignInModel(session *auth.Manager, toasts *toast.Manager) signInModel {
	return signInModel{
		session: session,
		toasts:  toasts,
		fields: newFieldSet(
			newField("email", "E-mail", "E-mail", false),
			newField("password", "Senha", "Senha", true),
		),
	}
}

// enter prepares the screen for display. Any password typed earlier is wiped.
func (m signInModel) enter() (signInModel, tea.Cmd) {
	m.fields.clear("password")
	m.fields.clearErrors()
	return m, m.fields.focusAt(0)
}

func (m signInModel) leave() signInModel {
	m.req.abandon()
	m.fields.blur()
	return m
}

func (m signInModel) Update(msg tea.Msg) (signInModel, tea.Cmd) {
	switch msg := msg.(type) {
	case signInDoneMsg:
		if !m.req.finish(msg.seq) {
			return m, nil
		}
		if msg.err != nil {
			m.toasts.Add(toast.Message{
				Type:        domain.ToastError,
				Title:       "Erro na autenticação",
				Description: "Ocorreu um erro ao fazer login, cheque as credenciais.",
			})
			return m, nil
		}
		m.fields.clear("password")
		return m, navigate(viewDashboard)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Submit):
			return m.submit()
		case key.Matches(msg, keys.SignUp):
			return m, navigate(viewSignUp)
		case key.Matches(msg, keys.Forgot):
			return m, navigate(viewForgot)
		}
	}

	var cmd tea.Cmd
	m.fields, cmd = m.fields.update(msg)
	return m, cmd
}

func (m signInModel) submit() (signInModel, tea.Cmd) {
	if m.req.pending() {
		return m, nil
	}
	f := form.SignIn{
		Email:    m.fields.value("email"),
		Password: m.fields.value("password"),
	}
	m.fields.clearErrors()
	if err := f.Validate(); err != nil {
		return m, m.fields.reject(err, m.toasts, "Erro na autenticação")
	}

	ctx, seq := m.req.start()
	session := m.session
	creds := auth.Credentials{Email: strings.TrimSpace(f.Email), Password: f.Password}
	return m, func() tea.Msg {
		return signInDoneMsg{seq: seq, err: session.SignIn(ctx, creds)}
	}
}

func (m signInModel) View() string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Faça seu logon") + "\n")
	b.WriteString(m.fields.view())
	if m.req.pending() {
		b.WriteString("  " + busyStyle.Render("Entrando...") + "\n")
	}
	return b.String()
}

func (m signInModel) help() string {
	return helpBar(keys.Submit, keys.Next, keys.SignUp, keys.Forgot, keys.Quit)
}
