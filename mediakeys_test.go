package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spezifisch/mediakeys/mediakeys"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "mediakeys.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	path := writeConfig(t, `
[gsd]
enabled = true

[terminal.keys]
playpause = "k"
`)

	require.NoError(t, readConfig(&path))
	assert.True(t, viper.GetBool("gsd.enabled"))
	assert.True(t, viper.GetBool("mpris.enabled"), "default applies")
	assert.Equal(t, "mediakeys", viper.GetString("app.name"))

	bindings, err := terminalBindings()
	require.NoError(t, err)
	assert.Equal(t, map[rune]mediakeys.KeyEvent{
		'k': mediakeys.PlayPause,
		'n': mediakeys.Next,
		'b': mediakeys.Prev,
	}, bindings)
}

func TestReadConfigErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		t.Cleanup(viper.Reset)
		path := filepath.Join(t.TempDir(), "nope.toml")
		assert.Error(t, readConfig(&path))
	})

	t.Run("bad binding", func(t *testing.T) {
		t.Cleanup(viper.Reset)
		path := writeConfig(t, `
[terminal.keys]
stop = "s"
`)
		assert.Error(t, readConfig(&path))
	})
}

func TestTerminalBindingsDefault(t *testing.T) {
	t.Cleanup(viper.Reset)
	bindings, err := terminalBindings()
	require.NoError(t, err)
	assert.Nil(t, bindings)
}

func TestMainHeadless(t *testing.T) {
	t.Cleanup(viper.Reset)

	// Mock osExit to prevent actual exit during test
	exitCalled := false
	osExit = func(code int) {
		exitCalled = true

		if code != 0 {
			// Capture and print the stack trace
			stackBuf := make([]byte, 1024)
			stackSize := runtime.Stack(stackBuf, false)
			stackTrace := string(stackBuf[:stackSize])

			t.Fatalf("Unexpected exit with code: %d\nStack trace:\n%s\n", code, stackTrace)
		}
	}
	headlessMode = true

	args := os.Args
	defer func() {
		osExit = os.Exit
		headlessMode = false
		os.Args = args
	}()

	// no session bus in the test environment
	os.Args = []string{"cmd", "--config=mediakeys-example.toml", "--mpris=false"}

	main()

	if !exitCalled {
		t.Fatalf("osExit was not called")
	}
}

func TestKeySourcesEnabled(t *testing.T) {
	testCases := []struct {
		name     string
		gsd      bool
		terminal bool
		enabled  bool
	}{
		{name: "defaults", enabled: false},
		{name: "gsd", gsd: true, enabled: true},
		{name: "terminal", terminal: true, enabled: true},
		{name: "both", gsd: true, terminal: true, enabled: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)
			setConfigDefaults()
			if tc.gsd {
				viper.Set("gsd.enabled", true)
			}
			if tc.terminal {
				viper.Set("terminal.enabled", true)
			}
			assert.Equal(t, tc.enabled, keySourcesEnabled())
		})
	}
}
