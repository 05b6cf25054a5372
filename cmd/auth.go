package main

import (
	"context"
	"fmt"

	"github.com/ac1714/chirp/internal/server"
	"github.com/ac1714/chirp/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the browser authorization flow and stores the token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		return fmt.Errorf("%w: set spotify.client_id in config.toml", shared.ErrMissingCredentials)
	}

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	r.writePlain("→ Waiting for authorization (%v timeout)...\n", server.LoginTimeout)

	token, err := server.RunLoginFlow(ctx, addr, r.manager, r.logger)
	if err != nil {
		return err
	}

	r.logger.Info("authentication successful", "token_type", token.TokenType)

	r.writePlain("✓ Authentication successful\n")
	if token.ExpiresIn > 0 {
		r.writePlain("Token expires in %d seconds\n", token.ExpiresIn)
	}
	return nil
}

// AuthStatus reports whether a stored token exists.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		r.writePlain("✗ Not configured (set spotify.client_id in config.toml)\n")
		return nil
	}

	if r.manager.Authenticated() {
		return r.writePlain("✓ Authenticated\n")
	}

	return r.writePlain("✗ Not authenticated (run 'chirp auth login')\n")
}

// AuthLogout deletes the stored token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		return fmt.Errorf("%w: set spotify.client_id in config.toml", shared.ErrMissingCredentials)
	}

	if err := r.manager.Invalidate(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	r.logger.Info("token cleared")
	return r.writePlain("✓ Logged out\n")
}
