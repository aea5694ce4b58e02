package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/gobarber/internal/form"
	"github.com/naveenspark/gobarber/internal/toast"
	"github.com/naveenspark/gobarber/pkg/client"
	"github.com/naveenspark/gobarber/pkg/domain"
)

type signUpDoneMsg struct {
	seq int
	err error
}

type signUpModel struct {
	api    API
	toasts *toast.Manager
	fields fieldSet
	req    request
}

func newSignUpModel(api API, toasts *toast.Manager) signUpModel {
	return signUpModel{
		api:    api,
		toasts: toasts,
		fields: newFieldSet(
			newField("name", "Nome", "Nome", false),
			newField("email", "E-mail", "E-mail", false),
			newField("password", "Senha", "Senha", true),
		),
	}
}

func (m signUpModel) enter() (signUpModel, tea.Cmd) {
	m.fields.clearErrors()
	return m, m.fields.focusAt(0)
}

func (m signUpModel) leave() signUpModel {
	m.req.abandon()
	m.fields.blur()
	return m
}

func (m signUpModel) Update(msg tea.Msg) (signUpModel, tea.Cmd) {
	switch msg := msg.(type) {
	case signUpDoneMsg:
		if !m.req.finish(msg.seq) {
			return m, nil
		}
		if msg.err != nil {
			m.toasts.Add(toast.Message{
				Type:        domain.ToastError,
				Title:       "Erro no cadastro",
				Description: "Ocorreu um erro ao fazer cadastro, tente novamente.",
			})
			return m, nil
		}
		m.fields.clear("name", "email", "password")
		m.toasts.Add(toast.Message{
			Type:        domain.ToastSuccess,
			Title:       "Cadastro realizado!",
			Description: "Você já pode fazer seu logon no GoBarber!",
		})
		return m, navigate(viewSignIn)

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

func (m signUpModel) submit() (signUpModel, tea.Cmd) {
	if m.req.pending() {
		return m, nil
	}
	f := form.SignUp{
		Name:     m.fields.value("name"),
		Email:    m.fields.value("email"),
		Password: m.fields.value("password"),
	}
	m.fields.clearErrors()
	if err := f.Validate(); err != nil {
		return m, m.fields.reject(err, m.toasts, "Erro no cadastro")
	}

	ctx, seq := m.req.start()
	api := m.api
	req := client.CreateUserRequest{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
	return m, func() tea.Msg {
		return signUpDoneMsg{seq: seq, err: api.CreateUser(ctx, req)}
	}
}

func (m signUpModel) View() string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Faça seu cadastro") + "\n")
	b.WriteString(m.fields.view())
	if m.req.pending() {
		b.WriteString("  " + busyStyle.Render("Cadastrando...") + "\n")
	}
	return b.String()
}

func (m signUpModel) help() string {
	return helpBar(keys.Submit, keys.Next, keys.Back, keys.Quit)
}

