package forum

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const loginPageBody = `<html><body><div id="brdmain">
<form id="login" method="post" action="login.php?action=in">
<input type="hidden" name="form_sent" value="1">
<input type="hidden" name="csrf_token" value="tok-123">
<input type="text" name="req_username">
<input type="password" name="req_password">
</form>
</div></body></html>`

// loginHandler mimics the board's login flow: a GET serves the form, a POST
// with the right credentials answers with a session cookie.
func loginHandler(t *testing.T, wantUser, wantPass string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/login.php", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprint(w, loginPageBody)
			return
		}

		require.Equal(t, "in", r.URL.Query().Get("action"))
		require.Equal(t, nil, r.ParseForm())
		require.Equal(t, "1", r.PostForm.Get("form_sent"))
		require.Equal(t, "tok-123", r.PostForm.Get("csrf_token"))
		require.Equal(t, "1", r.PostForm.Get("save_pass"))

		if r.PostForm.Get("req_username") == wantUser && r.PostForm.Get("req_password") == wantPass {
			http.SetCookie(w, &http.Cookie{
				Name:    "pun_cookie_12345",
				Value:   "deadbeef",
				Path:    "/",
				Expires: time.Now().Add(30 * 24 * time.Hour),
			})
		}
		fmt.Fprint(w, `<html><body><div id="brdmain"><p>redirecting</p></div></body></html>`)
	})
	return mux
}

func TestLogin(t *testing.T) {
	client, store, _ := newTestClient(t, loginHandler(t, "troll", "hunter2"))

	require.Equal(t, false, client.IsLoggedIn())

	err := client.Login(testContext(t), "troll", "hunter2")
	require.Equal(t, nil, err)
	require.Equal(t, true, client.IsLoggedIn())

	// a 30-day cookie is nowhere near the refresh window
	require.Greater(t, client.DaysToAuthExpiration(), int64(refreshThreshold))
	require.Equal(t, false, client.NeedsRefresh())

	username, ok := client.Username()
	require.Equal(t, true, ok)
	require.Equal(t, "troll", username)

	// credentials survive for silent re-login
	_, password, ok := store.Credentials()
	require.Equal(t, true, ok)
	require.Equal(t, "hunter2", password)
}

func TestLoginRejected(t *testing.T) {
	client, _, _ := newTestClient(t, loginHandler(t, "troll", "hunter2"))

	err := client.Login(testContext(t), "troll", "wrong")
	require.ErrorIs(t, err, ErrLoginFailed)
	require.Equal(t, false, client.IsLoggedIn())

	// a rejected login must not persist the bad credentials
	_, ok := client.Username()
	require.Equal(t, false, ok)
}

func TestLoginMalformedPage(t *testing.T) {
	// A login page without hidden inputs means the layout changed or an
	// interstitial got in the way; the form must not be submitted at all.
	var posts int
	mux := http.NewServeMux()
	mux.HandleFunc("/login.php", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posts++
			return
		}
		fmt.Fprint(w, `<html><body><form id="login"></form></body></html>`)
	})
	client, _, _ := newTestClient(t, mux)

	err := client.Login(testContext(t), "troll", "hunter2")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, 0, posts)
}

func TestLoginClearsPriorSession(t *testing.T) {
	client, store, _ := newTestClient(t, loginHandler(t, "troll", "hunter2"))

	// a stale cookie from an earlier session is dropped before the new
	// login, so a rejected login cannot masquerade as a logged-in state
	store.SetCookies(client.BaseURL(), []*http.Cookie{{
		Name:    "pun_cookie_12345",
		Value:   "stale",
		Expires: time.Now().Add(24 * time.Hour),
	}})
	require.Equal(t, true, client.IsLoggedIn())

	err := client.Login(testContext(t), "troll", "wrong")
	require.Equal(t, true, errors.Is(err, ErrLoginFailed))
	require.Equal(t, false, client.IsLoggedIn())
}

func TestRefreshLogin(t *testing.T) {
	client, store, _ := newTestClient(t, loginHandler(t, "troll", "hunter2"))

	err := client.RefreshLogin(testContext(t))
	require.ErrorIs(t, err, ErrNoCredentials)

	require.Equal(t, nil, store.SetCredentials("troll", "hunter2"))
	require.Equal(t, nil, client.RefreshLogin(testContext(t)))
	require.Equal(t, true, client.IsLoggedIn())
}

func TestEnsureFresh(t *testing.T) {
	client, store, _ := newTestClient(t, loginHandler(t, "troll", "hunter2"))

	// logged out: nothing to refresh
	require.Equal(t, nil, client.EnsureFresh(testContext(t)))
	require.Equal(t, false, client.IsLoggedIn())

	// a cookie inside the refresh window triggers a silent re-login, which
	// replaces it with a fresh long-lived one
	require.Equal(t, nil, store.SetCredentials("troll", "hunter2"))
	store.SetCookies(client.BaseURL(), []*http.Cookie{{
		Name:    "pun_cookie_12345",
		Value:   "nearly-dead",
		Expires: time.Now().Add(24 * time.Hour),
	}})
	require.Equal(t, true, client.NeedsRefresh())

	require.Equal(t, nil, client.EnsureFresh(testContext(t)))
	require.Equal(t, false, client.NeedsRefresh())
	require.Greater(t, client.DaysToAuthExpiration(), int64(refreshThreshold))
}

func TestLogout(t *testing.T) {
	client, store, _ := newTestClient(t, loginHandler(t, "troll", "hunter2"))

	require.Equal(t, nil, client.Login(testContext(t), "troll", "hunter2"))
	require.Equal(t, true, client.IsLoggedIn())

	client.Logout()
	require.Equal(t, false, client.IsLoggedIn())
	_, ok := client.Username()
	require.Equal(t, false, ok)
	require.Equal(t, 0, len(store.All()))

	// logging out twice is fine
	client.Logout()
}
