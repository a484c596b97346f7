package middleware

import "net/url"

// LoginPath is the client route unauthenticated users are redirected to.
const LoginPath = "/login"

// Decision is the route guard verdict for a single request.
type Decision struct {
	// Allow is true when the protected view may render.
	Allow bool
	// RedirectTo carries the login route with the original target preserved,
	// so a later successful login can return the user there. Empty when
	// Allow is true.
	RedirectTo string
}

// Decide is the route guard policy: a pure function of
// (session-present?, target-path). No session means redirect to login with
// the requested path preserved as return_to.
func Decide(sessionPresent bool, targetPath string) Decision {
	if sessionPresent {
		return Decision{Allow: true}
	}

	redirect := LoginPath
	if targetPath != "" && targetPath != LoginPath {
		redirect += "?return_to=" + url.QueryEscape(targetPath)
	}

	return Decision{RedirectTo: redirect}
}
