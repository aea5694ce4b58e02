package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/gobarber/internal/auth"
	"github.com/naveenspark/gobarber/internal/form"
	"github.com/naveenspark/gobarber/internal/toast"
	"github.com/naveenspark/gobarber/pkg/client"
	"github.com/naveenspark/gobarber/pkg/domain"
)

type profileSavedMsg struct {
	seq  int
	user *domain.User
	err  error
}

// avatarUploadedMsg reports an upload. openErr is set when the local file
// could not be read and the API was never called.
type avatarUploadedMsg struct {
	seq     int
	user    *domain.User
	err     error
	openErr error
}

type profileModel struct {
	api     API
	session *auth.Manager
	toasts  *toast.Manager
	log     *zap.Logger
	fields  fieldSet
	req     request

	// avatar mode swaps the profile form for a file path prompt
	avatarMode bool
	avatar     fieldSet
	upload     request
}

func newProfileModel(api API, session *auth.Manager, toasts *toast.Manager, log *zap.Logger) profileModel {
	return profileModel{
		api:     api,
		session: session,
		toasts:  toasts,
		log:     log,
		fields: newFieldSet(
			newField("name", "Nome", "Nome", false),
			newField("email", "E-mail", "E-mail", false),
			newField("old_password", "Senha atual", "Senha atual", true),
			newField("password", "Nova senha", "Nova senha", true),
			newField("password_confirmation", "Confirmar senha", "Confirmar senha", true),
		),
		avatar: newFieldSet(newField("avatar", "Arquivo do avatar", "/caminho/para/foto.png", false)),
	}
}

// enter fills the form from the signed-in user and clears the password fields.
func (m profileModel) enter() (profileModel, tea.Cmd) {
	if u := m.session.CurrentUser(); u != nil {
		m.fields.setValue("name", u.Name)
		m.fields.setValue("email", u.Email)
	}
	m.fields.clear("old_password", "password", "password_confirmation")
	m.fields.clearErrors()
	m.avatarMode = false
	m.avatar.clear("avatar")
	m.avatar.blur()
	return m, m.fields.focusAt(0)
}

func (m profileModel) leave() profileModel {
	m.req.abandon()
	m.upload.abandon()
	m.fields.blur()
	m.avatar.blur()
	m.avatarMode = false
	return m
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		if !m.req.finish(msg.seq) {
			return m, nil
		}
		if msg.err != nil {
			m.toasts.Add(toast.Message{
				Type:        domain.ToastError,
				Title:       "Erro na atualização",
				Description: "Ocorreu um erro ao atualizar perfil, tente novamente.",
			})
			return m, nil
		}
		m.session.UpdateUser(*msg.user)
		m.toasts.Add(toast.Message{
			Type:        domain.ToastSuccess,
			Title:       "Perfil atualizado!",
			Description: "Suas informações do perfil foram atualizadas com sucesso!",
		})
		return m, navigate(viewDashboard)

	case avatarUploadedMsg:
		if !m.upload.finish(msg.seq) {
			return m, nil
		}
		if msg.openErr != nil {
			m.toasts.Add(toast.Message{
				Type:        domain.ToastError,
				Title:       "Erro ao atualizar avatar",
				Description: msg.openErr.Error(),
			})
			return m, nil
		}
		if msg.err != nil {
			m.log.Warn("avatar upload failed", zap.Error(msg.err))
			m.toasts.Add(toast.Message{
				Type:        domain.ToastError,
				Title:       "Erro ao atualizar avatar",
				Description: "Ocorreu um erro ao atualizar o avatar, tente novamente.",
			})
			return m, nil
		}
		m.session.UpdateUser(*msg.user)
		m.toasts.Add(toast.Message{Type: domain.ToastSuccess, Title: "Avatar atualizado!"})
		m.avatarMode = false
		m.avatar.clear("avatar")
		m.avatar.blur()
		return m, m.fields.focusAt(m.fields.focus)

	case tea.KeyMsg:
		if m.avatarMode {
			return m.updateAvatar(msg)
		}
		switch {
		case key.Matches(msg, keys.Submit):
			return m.submit()
		case key.Matches(msg, keys.Back):
			return m, navigate(viewDashboard)
		case key.Matches(msg, keys.Avatar):
			m.avatarMode = true
			m.fields.blur()
			m.avatar.clearErrors()
			return m, m.avatar.focusAt(0)
		}
	}

	var cmd tea.Cmd
	if m.avatarMode {
		m.avatar, cmd = m.avatar.update(msg)
	} else {
		m.fields, cmd = m.fields.update(msg)
	}
	return m, cmd
}

func (m profileModel) updateAvatar(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.avatarMode = false
		m.avatar.blur()
		return m, m.fields.focusAt(m.fields.focus)
	case key.Matches(msg, keys.Submit):
		return m.uploadAvatar()
	}
	var cmd tea.Cmd
	m.avatar, cmd = m.avatar.update(msg)
	return m, cmd
}

func (m profileModel) uploadAvatar() (profileModel, tea.Cmd) {
	if m.upload.pending() {
		return m, nil
	}
	path := strings.TrimSpace(m.avatar.value("avatar"))
	if path == "" {
		return m, m.avatar.setErrors(map[string]string{"avatar": form.MsgFieldRequired})
	}
	m.avatar.clearErrors()

	ctx, seq := m.upload.start()
	api := m.api
	return m, func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return avatarUploadedMsg{seq: seq, openErr: fmt.Errorf("abrir %s: %w", filepath.Base(path), err)}
		}
		defer f.Close() //nolint:errcheck // read-only
		u, err := api.UpdateAvatar(ctx, filepath.Base(path), f)
		return avatarUploadedMsg{seq: seq, user: u, err: err}
	}
}

func (m profileModel) submit() (profileModel, tea.Cmd) {
	if m.req.pending() {
		return m, nil
	}
	f := form.Profile{
		Name:                 m.fields.value("name"),
		Email:                m.fields.value("email"),
		OldPassword:          m.fields.value("old_password"),
		Password:             m.fields.value("password"),
		PasswordConfirmation: m.fields.value("password_confirmation"),
	}
	m.fields.clearErrors()
	if err := f.Validate(); err != nil {
		return m, m.fields.reject(err, m.toasts, "Erro na atualização")
	}

	req := client.UpdateProfileRequest{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
	}
	if f.ChangesPassword() {
		req.OldPassword = f.OldPassword
		req.Password = f.Password
		req.PasswordConfirmation = f.PasswordConfirmation
	}

	ctx, seq := m.req.start()
	api := m.api
	return m, func() tea.Msg {
		u, err := api.UpdateProfile(ctx, req)
		return profileSavedMsg{seq: seq, user: u, err: err}
	}
}

func (m profileModel) View() string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Meu perfil") + "\n")
	if m.avatarMode {
		b.WriteString(m.avatar.view())
		if m.upload.pending() {
			b.WriteString("  " + busyStyle.Render("Enviando avatar...") + "\n")
		}
		return b.String()
	}
	b.WriteString(m.fields.view())
	if m.req.pending() {
		b.WriteString("  " + busyStyle.Render("Salvando...") + "\n")
	}
	return b.String()
}

func (m profileModel) help() string {
	if m.avatarMode {
		return helpBar(keys.Submit, keys.Back, keys.Quit)
	}
	return helpBar(keys.Submit, keys.Next, keys.Avatar, keys.Back, keys.Quit)
}
