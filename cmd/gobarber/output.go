package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/gobarber/pkg/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff9000")).
			Bold(true)

	cmdStyle  = lipgloss.NewStyle().Bold(true)
	descStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func printHelp(out io.Writer) {
	commands := []struct{ cmd, desc string }{
		{"gobarber", "Abrir o cliente (TUI)"},
		{"gobarber whoami", "Mostrar o usuário conectado"},
		{"gobarber logout", "Encerrar a sessão salva"},
		{"gobarber --version", "Mostrar a versão"},
		{"gobarber help", "Esta ajuda"},
	}

	fmt.Fprintf(out, "\n  %s\n\n  Comandos:\n", titleStyle.Render("G O B A R B E R"))
	for _, c := range commands {
		fmt.Fprintf(out, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}

	envs := []struct{ name, desc string }{
		{"GOBARBER_API_URL", "endereço da API (padrão http://localhost:3333)"},
		{"GOBARBER_DATA_DIR", "diretório de dados (padrão ~/.gobarber)"},
		{"GOBARBER_STORE", "file, memory ou redis"},
	}
	fmt.Fprintf(out, "\n  Ambiente:\n")
	for _, e := range envs {
		fmt.Fprintf(out, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", e.name)), descStyle.Render(e.desc))
	}
	fmt.Fprintln(out)
}

func printUser(out io.Writer, u *domain.User) {
	fmt.Fprintf(out, "%s %s\n", titleStyle.Render(u.Name), descStyle.Render("<"+u.Email+">"))
	if u.HasAvatar() {
		fmt.Fprintf(out, "%s\n", descStyle.Render(u.AvatarURL))
	}
}

func printSignedOut(out io.Writer) {
	hint := descStyle.Render("Para entrar: gobarber")
	fmt.Fprintf(out, "\n%s\n\n%s\n\n", titleStyle.Render("GOBARBER"), hint)
}
