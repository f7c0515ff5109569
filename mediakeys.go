// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spezifisch/mediakeys/logger"
	"github.com/spezifisch/mediakeys/mediakeys"
	"github.com/spezifisch/mediakeys/remote"
	"github.com/spezifisch/mediakeys/session"
	"github.com/spf13/viper"
)

var osExit = os.Exit  // A variable to allow mocking os.Exit in tests
var headlessMode bool // This can be set to true during tests

const DEVELOPMENT = "development"

// Version is the program version; usually set from BuildInfo
var Version string = DEVELOPMENT

func setConfigDefaults() {
	viper.SetDefault("app.name", "mediakeys")
	viper.SetDefault("mpris.enabled", true)
	viper.SetDefault("gsd.enabled", false)
	viper.SetDefault("terminal.enabled", false)
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.max-size-mb", 5)
	viper.SetDefault("log.max-backups", 3)
	viper.SetDefault("log.max-age-days", 28)
}

func readConfig(configFile *string) error {
	setConfigDefaults()

	explicit := configFile != nil && *configFile != ""
	if explicit {
		// use custom config file
		viper.SetConfigFile(*configFile)
	} else {
		// lookup default dirs
		viper.SetConfigName("mediakeys")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/mediakeys")
		viper.AddConfigPath(".")
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && (explicit || !errors.As(err, &notFound)) {
		return fmt.Errorf("config file error: %w", err)
	}

	if _, err := terminalBindings(); err != nil {
		return fmt.Errorf("config property terminal.keys: %w", err)
	}
	return nil
}

// terminalBindings returns the configured terminal keys, or nil for the defaults.
func terminalBindings() (map[rune]mediakeys.KeyEvent, error) {
	table := viper.GetStringMapString("terminal.keys")
	if len(table) == 0 {
		return nil, nil
	}
	return remote.ParseBindings(table)
}

// keySourcesEnabled reports whether anything will deliver key presses.
func keySourcesEnabled() bool {
	return viper.GetBool("gsd.enabled") || viper.GetBool("terminal.enabled")
}

const noKeySourceWarning = "Warning: no key source enabled (see -gsd and -terminal); media keys will not be handled"

func initLogger() *logger.Logger {
	path := viper.GetString("log.file")
	if path == "" {
		return logger.Init()
	}
	return logger.InitFile(logger.FileConfig{
		Path:       path,
		MaxSizeMB:  viper.GetInt("log.max-size-mb"),
		MaxBackups: viper.GetInt("log.max-backups"),
		MaxAgeDays: viper.GetInt("log.max-age-days"),
	})
}

// applyFlags lets explicitly given flags override the config file.
func applyFlags(flags map[string]string) {
	flag.Visit(func(f *flag.Flag) {
		if key, ok := flags[f.Name]; ok {
			viper.Set(key, f.Value.(flag.Getter).Get())
		}
	})
}

// runTerminal blocks until the user quits the terminal key source.
func runTerminal(source *mediakeys.EventSource, logger *logger.Logger) error {
	bindings, err := terminalBindings()
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err = screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	remote.NewTerminalKeySource(screen, source, bindings, logger).Run()
	return nil
}

// return codes:
// 0 - OK
// 1 - generic errors
// 2 - config errors
func main() {
	help := flag.Bool("help", false, "Print usage")
	flag.Bool("mpris", true, "Control MPRIS2 players on the session bus")
	flag.Bool("gsd", false, "Grab media keys from gnome-settings-daemon")
	flag.Bool("terminal", false, "Read media keys from the terminal")
	configFile := flag.String("config", "", "use config `file`")
	version := flag.Bool("version", false, "print the mediakeys version and exit")

	flag.Parse()
	if *help {
		fmt.Printf("USAGE: %s <args>\n", os.Args[0])
		flag.Usage()
		osExit(0)
		return
	}
	if Version == DEVELOPMENT {
		if bi, ok := debug.ReadBuildInfo(); ok {
			Version = bi.Main.Version
		}
	}
	if *version {
		fmt.Printf("mediakeys %s\n", Version)
		osExit(0)
		return
	}

	if err := readConfig(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read configuration: %v\n", err)
		osExit(2)
		return
	}
	applyFlags(map[string]string{
		"mpris":    "mpris.enabled",
		"gsd":      "gsd.enabled",
		"terminal": "terminal.enabled",
	})

	logger := initLogger()
	defer logger.Close()
	if !keySourcesEnabled() {
		fmt.Fprintln(os.Stderr, noKeySourceWarning)
		logger.Print(noKeySourceWarning)
	}

	registry := session.NewRegistry(logger)
	source := mediakeys.NewEventSource(logger)
	source.AddListener(mediakeys.NewKeyHandler(registry, logger))
	defer source.Close()

	if viper.GetBool("mpris.enabled") {
		watcher := remote.NewMprisWatcher(registry, logger)
		if err := watcher.Start(); err != nil {
			fmt.Printf("Unable to watch MPRIS players: %s\n", err)
			fmt.Println("Try running without MPRIS")
			osExit(1)
			return
		}
		defer watcher.Close()
	}

	if viper.GetBool("gsd.enabled") {
		gsd := remote.NewGsdKeySource(viper.GetString("app.name"), source, logger)
		if err := gsd.Start(); err != nil {
			fmt.Printf("Unable to grab media keys: %s\n", err)
			osExit(1)
			return
		}
		defer gsd.Close()
	}

	if headlessMode {
		fmt.Println("Running in headless mode for testing.")
		osExit(0)
		return
	}

	if viper.GetBool("terminal.enabled") {
		if err := runTerminal(source, logger); err != nil {
			fmt.Printf("Unable to read keys from the terminal: %s\n", err)
			osExit(1)
		}
		return
	}

	// no screen to draw on, so log to stderr until interrupted
	go func() {
		for msg := range logger.Prints {
			fmt.Fprintln(os.Stderr, msg)
		}
	}()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs
}
