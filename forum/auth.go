package forum

import (
	"context"
	"strings"
	"time"

	"github.com/avolkau/lurk/scrape"
	"github.com/avolkau/lurk/session"
)

// authCookiePrefix names the session cookie a FluxBB board sets after a
// successful login. Its presence, not the HTTP status, is the login
// criterion.
const authCookiePrefix = "pun_cookie"

// refreshThreshold is how close to cookie expiry a silent re-login should
// be scheduled by the caller.
const refreshThreshold = 3 // days

// Login authenticates against the forum. Prior session state is cleared
// first, then the login form page is fetched so its hidden inputs can be
// replayed verbatim alongside the credentials. Success means the server
// handed out the expected session cookie; on success the credentials are
// persisted for later silent re-logins.
func (c *Client) Login(ctx context.Context, username, password string) error {
	c.store.ClearCookies()

	loginPage := c.Resolve("login.php")
	doc, _, err := c.getDocument(ctx, "load login page", loginPage)
	if err != nil {
		return err
	}

	hidden := scrape.HarvestHiddenInputs(doc, "form#login")
	if len(hidden) == 0 {
		// Submitting a partial form would be interpreted as a forged
		// request, better to fail here than to confuse the server.
		return &AuthError{Reason: "login page carries no hidden form fields"}
	}

	fields := map[string]string{
		"req_username": username,
		"req_password": password,
		"save_pass":    "1",
	}
	for name, value := range hidden {
		fields[name] = value
	}

	submitURL := *loginPage
	q := submitURL.Query()
	q.Set("action", "in")
	submitURL.RawQuery = q.Encode()

	if _, _, err := c.postForm(ctx, "login", &submitURL, fields); err != nil {
		return err
	}

	if c.authCookie() == nil {
		return &AuthError{Reason: "no session cookie after login", Err: ErrLoginFailed}
	}

	return c.store.SetCredentials(username, password)
}

// RefreshLogin re-runs Login with the persisted credentials. Meant for
// proactive renewal when DaysToAuthExpiration drops below the threshold.
func (c *Client) RefreshLogin(ctx context.Context) error {
	username, password, ok := c.store.Credentials()
	if !ok {
		return &AuthError{Reason: "refresh login", Err: ErrNoCredentials}
	}
	return c.Login(ctx, username, password)
}

// NeedsRefresh reports whether the session cookie is close enough to
// expiry that a silent re-login is due.
func (c *Client) NeedsRefresh() bool {
	return c.IsLoggedIn() && c.DaysToAuthExpiration() < refreshThreshold
}

// EnsureFresh silently re-logs in when the session cookie is close to
// expiry. A failed refresh is surfaced, never retried.
func (c *Client) EnsureFresh(ctx context.Context) error {
	if !c.NeedsRefresh() {
		return nil
	}
	return c.RefreshLogin(ctx)
}

// Logout drops the session cookies and the persisted credentials. Calling
// it while logged out is a no-op.
func (c *Client) Logout() {
	c.store.Clear()
}

// IsLoggedIn is computed from the cookie store on every call: true iff an
// unexpired session cookie is present.
func (c *Client) IsLoggedIn() bool {
	return c.authCookie() != nil
}

// Username returns the persisted account name, if a login ever succeeded.
func (c *Client) Username() (string, bool) {
	username, _, ok := c.store.Credentials()
	return username, ok
}

// DaysToAuthExpiration estimates how many whole days the session cookie
// has left. Zero means no cookie, or a cookie without expiry metadata.
func (c *Client) DaysToAuthExpiration() int64 {
	cookie := c.authCookie()
	if cookie == nil || cookie.ExpiresAt == 0 {
		return 0
	}
	return int64(time.Until(time.Unix(cookie.ExpiresAt, 0)).Hours() / 24)
}

func (c *Client) authCookie() *session.Cookie {
	var best *session.Cookie
	for _, cookie := range c.store.All() {
		if !strings.HasPrefix(cookie.Name, authCookiePrefix) || cookie.Expired(time.Now()) {
			continue
		}
		cookie := cookie
		if best == nil || cookie.ExpiresAt > best.ExpiresAt {
			best = &cookie
		}
	}
	return best
}
