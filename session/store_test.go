package session

import (
	"net/http"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	st, err := OpenStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(st.Close)
	return st
}

func TestCookieRoundTrip(t *testing.T) {
	st := openTestStore(t)

	site, _ := url.Parse("https://forum.example.com/viewtopic.php?id=3")
	st.SetCookies(site, []*http.Cookie{
		{Name: "pun_cookie_12345", Value: "deadbeef", Expires: time.Now().Add(24 * time.Hour)},
	})

	got := st.Cookies(site)
	require.Len(t, got, 1)
	require.Equal(t, "pun_cookie_12345", got[0].Name)
	require.Equal(t, "deadbeef", got[0].Value)

	other, _ := url.Parse("https://other.example.org/")
	require.Empty(t, st.Cookies(other))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	site, _ := url.Parse("https://forum.example.com/")

	st, err := OpenStore(path)
	require.NoError(t, err)
	st.SetCookies(site, []*http.Cookie{
		{Name: "pun_cookie_1", Value: "v", Expires: time.Now().Add(time.Hour)},
	})
	require.NoError(t, st.SetCredentials("alice", "hunter2"))
	st.Close()

	st, err = OpenStore(path)
	require.NoError(t, err)
	defer st.Close()

	require.Len(t, st.Cookies(site), 1)
	user, pass, ok := st.Credentials()
	require.True(t, ok)
	require.Equal(t, "alice", user)
	require.Equal(t, "hunter2", pass)
}

func TestExpiredCookiesNotReturned(t *testing.T) {
	st := openTestStore(t)
	site, _ := url.Parse("https://forum.example.com/")

	st.SetCookies(site, []*http.Cookie{
		{Name: "fresh", Value: "1", Expires: time.Now().Add(time.Hour)},
	})
	// Simulate clock passing the stored expiry.
	st.DB.Exec("UPDATE cookie SET expires_at = ? WHERE name = 'fresh'", time.Now().Add(-time.Minute).Unix())

	require.Empty(t, st.Cookies(site))
	// The row itself survives so expiry can still be inspected.
	require.Len(t, st.All(), 1)
}

func TestServerExpiredCookieDeleted(t *testing.T) {
	st := openTestStore(t)
	site, _ := url.Parse("https://forum.example.com/")

	st.SetCookies(site, []*http.Cookie{{Name: "gone", Value: "1", MaxAge: 60}})
	require.Len(t, st.All(), 1)

	st.SetCookies(site, []*http.Cookie{{Name: "gone", Value: "", MaxAge: -1}})
	require.Empty(t, st.All())
}

func TestClear(t *testing.T) {
	st := openTestStore(t)
	site, _ := url.Parse("https://forum.example.com/")

	st.SetCookies(site, []*http.Cookie{{Name: "pun_cookie_1", Value: "v"}})
	require.NoError(t, st.SetCredentials("bob", "secret"))

	st.Clear()
	require.Empty(t, st.All())
	_, _, ok := st.Credentials()
	require.False(t, ok)

	// Clearing twice is fine.
	st.Clear()
}

func TestConcurrentAccess(t *testing.T) {
	st := openTestStore(t)
	site, _ := url.Parse("https://forum.example.com/")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				st.SetCookies(site, []*http.Cookie{
					{Name: "pun_cookie_1", Value: "v", Expires: time.Now().Add(time.Hour)},
				})
				st.Cookies(site)
			}
		}()
	}
	wg.Wait()

	require.Len(t, st.All(), 1)
}
