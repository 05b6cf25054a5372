// Package server provides HTTP routing, middleware, and the implicit-grant callback flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Callback Handler
//
// [CallbackHandler] implements the implicit-grant redirect flow. The provider returns the
// access token in the URL fragment, which browsers never send to the server, so /callback
// serves a small capture page whose script forwards the fragment to /callback/complete and
// strips it from the visible URL. The completion endpoint validates the state parameter
// (CSRF protection), persists the token, and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Login Flow
//
// [RunLoginFlow] ties the pieces together: it starts a temporary HTTP server on the
// configured address, opens the user's browser at the authorize URL, waits for the
// callback with a timeout, and shuts the server down after receiving the token.
// Both the auth command and the TUI's re-authentication path use it.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
