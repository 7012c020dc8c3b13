package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/pflag"

	"github.com/rebeliceyang/lazygrid/internal/app"
	"github.com/rebeliceyang/lazygrid/internal/config"
	"github.com/rebeliceyang/lazygrid/internal/util/logx"
)

func main() {
	fs := pflag.NewFlagSet("lazygrid", pflag.ExitOnError)
	config.RegisterFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lazygrid [flags] [file]\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	// A bare argument is the file to open
	if fs.NArg() > 0 && !fs.Changed("path") {
		_ = fs.Set("path", fs.Arg(0))
	}

	cfg, err := config.Load(fs)
	if err != nil {
		log.Printf("Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.GetDefaults()
	}

	logx.SetLevel(logx.ParseLevel(cfg.Log.Level))
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "lazygrid")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
	} else {
		logx.SetForward(false)
	}

	zone.NewGlobal()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(app.New(cfg), opts...)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
