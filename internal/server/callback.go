package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/ac1714/chirp/internal/auth"
)

// CallbackResult contains the outcome of an implicit-grant callback.
type CallbackResult struct {
	Token *auth.Token
	err   error
}

func (r *CallbackResult) Error() error {
	return r.err
}

// CallbackHandler handles the implicit-grant redirect. The provider
// returns the token in the URL fragment, which never reaches the server
// on the wire, so /callback serves a small capture page whose script
// forwards the fragment to /callback/complete and strips it from the
// visible URL. The completion endpoint validates state, persists the
// token via [auth.Manager], and delivers the result through a channel.
type CallbackHandler struct {
	manager     *auth.Manager
	state       string
	resultChan  chan CallbackResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewCallbackHandler creates a callback handler bound to manager. The
// state token should be cryptographically random for CSRF protection.
func NewCallbackHandler(manager *auth.Manager, state string) *CallbackHandler {
	return &CallbackHandler{
		manager:    manager,
		state:      state,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback", "/callback/complete"}
}

// ServeHTTP dispatches between the capture page and the completion endpoint.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/callback":
		h.serveCapturePage(w, r)
	case "/callback/complete":
		h.complete(w, r)
	default:
		http.NotFound(w, r)
	}
}

// serveCapturePage renders the fragment-forwarding page. A redirect with
// an error query parameter (user denied, misconfigured client) is
// reported immediately since no fragment will follow.
func (h *CallbackHandler) serveCapturePage(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		err := fmt.Errorf("authorization failed: %s", errParam)
		h.Send(CallbackResult{err: err})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, capturePage)
}

// complete consumes the forwarded fragment. Only the first callback is
// processed to prevent replay.
func (h *CallbackHandler) complete(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	fragment := r.URL.Query().Get("fragment")

	token, err := h.manager.Consume(fragment)
	if err != nil {
		h.Send(CallbackResult{err: err})
		http.Error(w, "Malformed callback", http.StatusBadRequest)
		return
	}

	if state := token.Raw["state"]; state != h.state {
		err := fmt.Errorf("invalid state parameter")
		// The token was persisted before the state check failed; drop it.
		if invErr := h.manager.Invalidate(); invErr != nil {
			err = fmt.Errorf("%w (and failed to clear token: %v)", err, invErr)
		}
		h.Send(CallbackResult{err: err})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	h.Send(CallbackResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// Send delivers the callback result through the channel (only once).
func (h *CallbackHandler) Send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

const capturePage = `
<!DOCTYPE html>
<html>
<head>
    <title>Completing Sign In</title>
</head>
<body>
    <p>Completing sign in&hellip;</p>
    <script>
        var fragment = window.location.hash.replace(/^#/, '');
        history.replaceState(null, '', window.location.pathname);
        window.location = '/callback/complete?fragment=' + encodeURIComponent(fragment);
    </script>
</body>
</html>
`

const successPage = `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Authorization Successful</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`
