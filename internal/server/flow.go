package server

import (
	"context"
	"fmt"
	"time"

	"github.com/ac1714/chirp/internal/auth"
	"github.com/ac1714/chirp/internal/shared"
	"github.com/charmbracelet/log"
)

// LoginTimeout bounds how long the flow waits for the user to authorize.
const LoginTimeout = 2 * time.Minute

// RunLoginFlow executes the implicit-grant authorization flow with a
// local HTTP server. It opens the user's browser at the provider's
// authorize URL, serves the callback on addr until the token arrives or
// the timeout elapses, and returns the persisted token.
func RunLoginFlow(ctx context.Context, addr string, manager *auth.Manager, logger *log.Logger) (*auth.Token, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	state := shared.GenerateID()
	authURL := manager.AuthURL(state)

	handler := NewCallbackHandler(manager, state)
	router := NewBasicRouter()
	router.Handler(handler)

	flowCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	serverErrors := make(chan error, 1)
	go func() {
		logger.Infof("starting authorization server at %v", addr)
		if err := Listen(flowCtx, addr, router); err != nil {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	if err := shared.OpenBrowser(authURL); err != nil {
		logger.Warnf("failed to open browser automatically %v", err)
		logger.Infof("open this URL in your browser: %s", authURL)
	}

	timeout := time.NewTimer(LoginTimeout)
	defer timeout.Stop()

	var result CallbackResult

	select {
	case result = <-handler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after %v", shared.ErrTimeout, LoginTimeout)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}
