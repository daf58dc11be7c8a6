// Package server hosts the short-lived HTTP pieces behind the login
// command: a small router with middleware support and the OAuth2
// callback handler.
//
// # Router
//
// [BasicRouter] wraps [http.ServeMux] and registers handlers per
// method. [Middleware] wraps handlers in reverse registration order,
// so the first middleware added is the outermost.
//
// # OAuth Callback
//
// [Callback] receives the authorization-code redirect. It validates
// the state parameter, exchanges the code through a
// [spotify.Authenticator], and delivers exactly one [CallbackResult]
// on its channel. Later hits on the callback path get a 400.
//
// # Usage
//
// During `spx auth login` the CLI binds the router to the address in
// the config, opens the consent page in a browser, waits on
// [Callback.Result], and shuts the server down. Nothing here is a
// long-running service.
package server
