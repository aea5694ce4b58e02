package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	Next         key.Binding
	Prev         key.Binding
	Submit       key.Binding
	Back         key.Binding
	DismissToast key.Binding

	// Sign-in links
	SignUp key.Binding
	Forgot key.Binding

	// Profile
	Avatar key.Binding

	// Dashboard
	Profile    key.Binding
	SignOut    key.Binding
	CopyEmail  key.Binding
	OpenAvatar key.Binding
	QuitDash   key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "sair"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "próximo"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "anterior"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "enviar"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "voltar"),
	),
	DismissToast: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "fechar aviso"),
	),
	SignUp: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "criar conta"),
	),
	Forgot: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("ctrl+f", "esqueci minha senha"),
	),
	Avatar: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("ctrl+a", "trocar avatar"),
	),
	Profile: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "perfil"),
	),
	SignOut: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sair da conta"),
	),
	CopyEmail: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copiar e-mail"),
	),
	OpenAvatar: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "abrir avatar"),
	),
	QuitDash: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "sair"),
	),
}

// helpBar renders the help entries of the given bindings on one line.
func helpBar(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += helpEntry(h.Key, h.Desc)
	}
	return " " + out
}
