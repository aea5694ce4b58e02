package browser

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsUnsafeURLs(t *testing.T) {
	called := false
	orig := command
	command = func(string, ...string) error {
		called = true
		return nil
	}
	t.Cleanup(func() { command = orig })

	for _, raw := range []string{
		"file:///etc/passwd",
		"javascript:alert(1)",
		"/files/avatar.png",
		"http://",
		"://bad",
	} {
		assert.Error(t, Open(raw), raw)
	}
	assert.False(t, called)
}

func TestOpenRunsPlatformCommand(t *testing.T) {
	switch runtime.GOOS {
	case "darwin", "linux", "freebsd", "openbsd", "windows":
	default:
		t.Skip("no browser command on " + runtime.GOOS)
	}

	var args []string
	orig := command
	command = func(name string, a ...string) error {
		args = append([]string{name}, a...)
		return nil
	}
	t.Cleanup(func() { command = orig })

	require.NoError(t, Open("http://localhost:3333/files/avatar.png"))
	require.NotEmpty(t, args)
	assert.Equal(t, "http://localhost:3333/files/avatar.png", args[len(args)-1])
}
