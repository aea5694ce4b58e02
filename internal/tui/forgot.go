package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/gobarber/internal/form"
	"github.com/naveenspark/gobarber/internal/toast"
	"github.com/naveenspark/gobarber/pkg/domain"
)

type forgotDoneMsg struct {
	seq int
	err error
}

type forgotModel struct {
	api    API
	toasts *toast.Manager
	fields fieldSet
	req    request
}

func newForgotModel(api API, toasts *toast.Manager) forgotModel {
	return forgotModel{
		api:    api,
		toasts: toasts,
		fields: newFieldSet(newField("email", "E-mail", "E-mail", false)),
	}
}

func (m forgotModel) enter() (forgotModel, tea.Cmd) {
	m.fields.clearErrors()
	return m, m.fields.focusAt(0)
}

func (m forgotModel) leave() forgotModel {
	m.req.abandon()
	m.fields.blur()
	return m
}

func (m forgotModel) Update(msg tea.Msg) (forgotModel, tea.Cmd) {
	switch msg := msg.(type) {
	case forgotDoneMsg:
		if !m.req.finish(msg.seq) {
			return m, nil
		}
		if msg.err != nil {
			m.toasts.Add(toast.Message{
				Type:        domain.ToastError,
				Title:       "Erro na recuperação de senha",
				Description: "Ocorreu um erro ao tentar realizar a recuperação de senha, tente novamente.",
			})
			return m, nil
		}
		m.toasts.Add(toast.Message{
			Type:        domain.ToastSuccess,
			Title:       "E-mail de recuperação enviado",
			Description: "Enviamos um e-mail para confirmar a recuperação de senha, cheque sua caixa de entrada.",
		})
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Submit):
			return m.submit()
		case key.Matches(msg, keys.Back):
			return m, navigate(viewSignIn)
		}
	}

	var cmd tea.Cmd
	m.fields, cmd = m.fields.update(msg)
	return m, cmd
}

func (m forgotModel) submit() (forgotModel, tea.Cmd) {
	if m.req.pending() {
		return m, nil
	}
	f := form.ForgotPassword{Email: m.fields.value("email")}
	m.fields.clearErrors()
	if err := f.Validate(); err != nil {
		return m, m.fields.reject(err, m.toasts, "Erro na recuperação de senha")
	}

	ctx, seq := m.req.start()
	api := m.api
	email := strings.TrimSpace(f.Email)
	return m, func() tea.Msg {
		return forgotDoneMsg{seq: seq, err: api.ForgotPassword(ctx, email)}
	}
}

func (m forgotModel) View() string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Recuperar senha") + "\n")
	b.WriteString(m.fields.view())
	if m.req.pending() {
		b.WriteString("  " + busyStyle.Render("Enviando...") + "\n")
	}
	return b.String()
}

func (m forgotModel) help() string {
	return helpBar(keys.Submit, keys.Back, keys.Quit)
}
