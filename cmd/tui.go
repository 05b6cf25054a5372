package main

import (
	"context"
	"fmt"

	"github.com/ac1714/chirp/internal/server"
	"github.com/ac1714/chirp/internal/shared"
	"github.com/ac1714/chirp/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive search and playback interface.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		return fmt.Errorf("%w: set spotify.client_id in config.toml", shared.ErrMissingCredentials)
	}
	if r.pipeline == nil {
		return fmt.Errorf("%w: search pipeline not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/chirp-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	db, history, cache, err := r.openHistory()
	if err != nil {
		fileLogger.Warn("history unavailable", "error", err)
	} else {
		defer db.Close()
	}

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)

	model := ui.NewModel(ctx, ui.Deps{
		Pipeline:   r.pipeline,
		Controller: r.controller,
		History:    history,
		Cache:      cache,
		Logger:     fileLogger,
		MinQuery:   r.config.Search.MinQueryLength,
		LoginFlow: func(ctx context.Context) error {
			_, err := server.RunLoginFlow(ctx, addr, r.manager, fileLogger)
			return err
		},
	})
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
