package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	cssh "github.com/charmbracelet/ssh"

	"github.com/DarthTigerson/pico-writer/internal/app"
	"github.com/DarthTigerson/pico-writer/internal/config"
	"github.com/DarthTigerson/pico-writer/internal/ssh"
)

func main() {
	cfg := config.Default()
	configExisted, err := config.LoadFile(&cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	// First run: ask where the books should live and persist the answer.
	if !configExisted {
		res, err := config.RunSetup()
		if err != nil {
			fmt.Fprintln(os.Stderr, "setup failed:", err)
			os.Exit(1)
		}
		if res.Cancelled {
			os.Exit(0)
		}
		cfg.LibraryPath = res.LibraryPath
	}

	// Normalize the library path so recents, sessions and the index all
	// resolve against the same root.
	cfg.LibraryPath = config.ExpandHome(cfg.LibraryPath)
	if abs, err := filepath.Abs(cfg.LibraryPath); err == nil {
		cfg.LibraryPath = abs
	}

	if err := os.MkdirAll(cfg.LibraryPath, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "error creating library dir:", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Join(cfg.LibraryPath, ".pico-writer"), 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "error creating data dir:", err)
		os.Exit(1)
	}

	if cfg.Serve {
		runServe(cfg)
		return
	}
	runLocal(cfg)
}

func runLocal(cfg config.Config) {
	// Make lipgloss render the theme's hex colors instead of approximating
	// them to the 256-color palette.
	if err := os.Setenv("COLORTERM", "truecolor"); err != nil {
		fmt.Fprintln(os.Stderr, "error setting COLORTERM:", err)
		os.Exit(1)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	p := tea.NewProgram(a, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func runServe(cfg config.Config) {
	s, err := ssh.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		if err := s.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing server: %v\n", err)
		}
	}()

	log.Printf("listening on %s", cfg.Listen)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, cssh.ErrServerClosed) {
		log.Fatal(err)
	}
}
