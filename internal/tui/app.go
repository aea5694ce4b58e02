package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/gobarber/internal/auth"
	"github.com/naveenspark/gobarber/internal/toast"
	"github.com/naveenspark/gobarber/pkg/client"
	"github.com/naveenspark/gobarber/pkg/domain"
)

type view int

const (
	viewSignIn view = iota
	viewSignUp
	viewForgot
	viewDashboard
	viewProfile
)

func (v view) String() string {
	switch v {
	case viewSignIn:
		return "sign-in"
	case viewSignUp:
		return "sign-up"
	case viewForgot:
		return "forgot-password"
	case viewDashboard:
		return "dashboard"
	case viewProfile:
		return "profile"
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// private views require a signed-in user.
func (v view) private() bool {
	return v == viewDashboard || v == viewProfile
}

// API is the part of the GoBarber client the screens call directly. Sign-in
// goes through the session manager instead.
type API interface {
	CreateUser(ctx context.Context, req client.CreateUserRequest) error
	ForgotPassword(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, req client.UpdateProfileRequest) (*domain.User, error)
	UpdateAvatar(ctx context.Context, filename string, r io.Reader) (*domain.User, error)
}

// navigateMsg asks the app to switch screens.
type navigateMsg struct {
	to view
}

func navigate(to view) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// sessionChangedMsg carries a session snapshot published by the manager.
type sessionChangedMsg auth.Snapshot

// toastsChangedMsg carries the current toast list.
type toastsChangedMsg []domain.Toast

func waitForSession(ch <-chan auth.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return sessionChangedMsg(snap)
	}
}

func waitForToasts(ch <-chan []domain.Toast) tea.Cmd {
	return func() tea.Msg {
		list, ok := <-ch
		if !ok {
			return nil
		}
		return toastsChangedMsg(list)
	}
}

// Options holds the services the app is built on.
type Options struct {
	API      API
	Sessions *auth.Manager
	Toasts   *toast.Manager
	Logger   *zap.Logger
}

// App is the root Bubbletea model.
type App struct {
	sessions *auth.Manager
	toasts   *toast.Manager
	log      *zap.Logger

	sessionCh   <-chan auth.Snapshot
	toastCh     <-chan []domain.Toast
	unsubscribe []func()

	view      view
	signIn    signInModel
	signUp    signUpModel
	forgot    forgotModel
	dashboard dashboardModel
	profile   profileModel

	user      *domain.User
	toastList []domain.Toast
	width     int
	height    int
	frame     int // logo shimmer animation frame
}

// NewApp creates the TUI application. It subscribes to the session and toast
// managers right away; call Close once the program has exited.
func NewApp(opts Options) App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	sessionCh, unsubSession := opts.Sessions.Subscribe()
	toastCh, unsubToasts := opts.Toasts.Subscribe()

	a := App{
		sessions:    opts.Sessions,
		toasts:      opts.Toasts,
		log:         log,
		sessionCh:   sessionCh,
		toastCh:     toastCh,
		unsubscribe: []func(){unsubSession, unsubToasts},
		signIn:      newSignInModel(opts.Sessions, opts.Toasts),
		signUp:      newSignUpModel(opts.API, opts.Toasts),
		forgot:      newForgotModel(opts.API, opts.Toasts),
		dashboard:   newDashboardModel(opts.Sessions, opts.Toasts),
		profile:     newProfileModel(opts.API, opts.Sessions, opts.Toasts, log.Named("profile")),
		user:        opts.Sessions.CurrentUser(),
		toastList:   opts.Toasts.Toasts(),
	}

	start := viewSignIn
	if a.user != nil {
		start = viewDashboard
	}
	a, _ = a.switchTo(start)
	return a
}

// Close releases the app's subscriptions.
func (a App) Close() {
	for _, fn := range a.unsubscribe {
		fn()
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		shimmerTickCmd(),
		waitForSession(a.sessionCh),
		waitForToasts(a.toastCh),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard, _ = a.dashboard.Update(msg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionChangedMsg:
		return a.sessionChanged(auth.Snapshot(msg))

	case toastsChangedMsg:
		a.toastList = []domain.Toast(msg)
		return a, waitForToasts(a.toastCh)

	case navigateMsg:
		if msg.to.private() && a.sessions.CurrentUser() == nil {
			msg.to = viewSignIn
		}
		return a.switchTo(msg.to)

	case signInDoneMsg:
		var cmd tea.Cmd
		a.signIn, cmd = a.signIn.Update(msg)
		return a, cmd
	case signUpDoneMsg:
		var cmd tea.Cmd
		a.signUp, cmd = a.signUp.Update(msg)
		return a, cmd
	case forgotDoneMsg:
		var cmd tea.Cmd
		a.forgot, cmd = a.forgot.Update(msg)
		return a, cmd
	case profileSavedMsg, avatarUploadedMsg:
		var cmd tea.Cmd
		a.profile, cmd = a.profile.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.DismissToast):
			if n := len(a.toastList); n > 0 {
				a.toasts.Remove(a.toastList[n-1].ID)
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewSignIn:
		a.signIn, cmd = a.signIn.Update(msg)
	case viewSignUp:
		a.signUp, cmd = a.signUp.Update(msg)
	case viewForgot:
		a.forgot, cmd = a.forgot.Update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	}
	return a, cmd
}

// sessionChanged keeps the current screen consistent with the session: a
// sign-out anywhere drops back to sign-in and a sign-in lands on the dashboard.
func (a App) sessionChanged(snap auth.Snapshot) (tea.Model, tea.Cmd) {
	a.user = snap.User
	a.dashboard.user = snap.User
	wait := waitForSession(a.sessionCh)

	switch {
	case !snap.Authenticated() && a.view.private():
		a.log.Info("session ended, returning to sign-in", zap.Stringer("from", a.view))
		next, cmd := a.switchTo(viewSignIn)
		return next, tea.Batch(cmd, wait)
	case snap.Authenticated() && !a.view.private():
		next, cmd := a.switchTo(viewDashboard)
		return next, tea.Batch(cmd, wait)
	}
	return a, wait
}

// switchTo leaves the current screen, abandoning its in-flight request, and
// enters the next one.
func (a App) switchTo(to view) (App, tea.Cmd) {
	switch a.view {
	case viewSignIn:
		a.signIn = a.signIn.leave()
	case viewSignUp:
		a.signUp = a.signUp.leave()
	case viewForgot:
		a.forgot = a.forgot.leave()
	case viewDashboard:
		a.dashboard = a.dashboard.leave()
	case viewProfile:
		a.profile = a.profile.leave()
	}

	a.log.Debug("navigate", zap.Stringer("from", a.view), zap.Stringer("to", to))
	a.view = to

	var cmd tea.Cmd
	switch to {
	case viewSignIn:
		a.signIn, cmd = a.signIn.enter()
	case viewSignUp:
		a.signUp, cmd = a.signUp.enter()
	case viewForgot:
		a.forgot, cmd = a.forgot.enter()
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.enter()
	case viewProfile:
		a.profile, cmd = a.profile.enter()
	}
	return a, cmd
}

func (a App) View() string {
	header := centerLine(renderShimmerLogo(a.frame), a.width)
	if a.user != nil {
		header += "\n" + centerLine(metaStyle.Render(a.user.Email), a.width)
	} else {
		header += "\n"
	}

	var body, help string
	switch a.view {
	case viewSignIn:
		body, help = a.signIn.View(), a.signIn.help()
	case viewSignUp:
		body, help = a.signUp.View(), a.signUp.help()
	case viewForgot:
		body, help = a.forgot.View(), a.forgot.help()
	case viewDashboard:
		body, help = a.dashboard.View(), a.dashboard.help()
	case viewProfile:
		body, help = a.profile.View(), a.profile.help()
	}
	if len(a.toastList) > 0 {
		help += "  " + helpEntry(keys.DismissToast.Help().Key, keys.DismissToast.Help().Desc)
	}

	toasts := renderToasts(a.toastList, a.width)

	// Chrome: header(2) + blank(1) + help(1), plus the toast stack
	chrome := 4 + lineCount(toasts)
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	out := header + "\n\n" + body + "\n"
	if toasts != "" {
		out += toasts + "\n"
	}
	return out + help
}
