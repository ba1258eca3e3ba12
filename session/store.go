package session

import (
	"database/sql"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps the authentication state of a forum client: the cookies the
// server handed out and the credentials needed for a silent re-login. It is
// backed by a sqlite file so both survive process restarts.
//
// Store implements http.CookieJar and is the single piece of shared mutable
// state of the engine, so every method serializes access through a mutex.
type Store struct {
	Filename string
	DB       *sql.DB

	mu sync.Mutex

	upsertCookieStmt     string
	deleteCookieStmt     string
	selectCookiesStmt    string
	upsertCredentialStmt string
}

func OpenStore(path string) (st *Store, err error) {
	var db *sql.DB
	if db, err = sql.Open("sqlite3", path); err == nil {
		st = new(Store)
		st.Filename = path
		st.DB = db
		if err = st.initTables(); err != nil {
			db.Close()
			st = nil
		} else {
			st.initSQLStatements()
		}
	}
	return
}

func (st *Store) Close() {
	st.DB.Close()
}

// SetCookies stores or refreshes the cookies received for u. Cookies the
// server expires (MaxAge < 0 or an Expires in the past) are dropped from the
// store, matching jar semantics.
func (st *Store) SetCookies(u *url.URL, cookies []*http.Cookie) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, c := range cookies {
		domain := c.Domain
		if domain == "" {
			domain = u.Hostname()
		}
		domain = strings.TrimPrefix(domain, ".")
		path := c.Path
		if path == "" {
			path = "/"
		}

		expired := c.MaxAge < 0 ||
			(!c.Expires.IsZero() && c.Expires.Before(time.Now()))
		if expired {
			st.DB.Exec(st.deleteCookieStmt, c.Name, domain)
			continue
		}

		var expiresAt int64
		switch {
		case c.MaxAge > 0:
			expiresAt = time.Now().Add(time.Duration(c.MaxAge) * time.Second).Unix()
		case !c.Expires.IsZero():
			expiresAt = c.Expires.Unix()
		}

		st.DB.Exec(st.upsertCookieStmt, c.Name, c.Value, domain, path, expiresAt)
	}
}

// Cookies returns the unexpired cookies applicable to u in a stable order.
func (st *Store) Cookies(u *url.URL) (cookies []*http.Cookie) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, sc := range st.loadAll() {
		if !domainMatch(u.Hostname(), sc.Domain) {
			continue
		}
		if !strings.HasPrefix(u.EscapedPath(), sc.Path) && u.EscapedPath()+"/" != sc.Path {
			continue
		}
		if sc.Expired(time.Now()) {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value})
	}
	return
}

// Cookie is a persisted cookie row. ExpiresAt of zero means the server sent
// no expiry, which is treated as "valid until cleared".
type Cookie struct {
	Name      string
	Value     string
	Domain    string
	Path      string
	ExpiresAt int64
}

func (c Cookie) Expired(now time.Time) bool {
	return c.ExpiresAt != 0 && c.ExpiresAt <= now.Unix()
}

// All returns every stored cookie, expired or not.
func (st *Store) All() []Cookie {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.loadAll()
}

func (st *Store) loadAll() (cookies []Cookie) {
	rows, err := st.DB.Query(st.selectCookiesStmt)
	if err != nil {
		return
	}
	defer rows.Close()
	for rows.Next() {
		var c Cookie
		if err := rows.Scan(&c.Name, &c.Value, &c.Domain, &c.Path, &c.ExpiresAt); err == nil {
			cookies = append(cookies, c)
		}
	}
	return
}

// ClearCookies drops every stored cookie, leaving credentials untouched.
func (st *Store) ClearCookies() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.DB.Exec("DELETE FROM cookie")
}

// SetCredentials persists the username/password pair used for silent
// re-login. There is only ever one account per store.
func (st *Store) SetCredentials(username, password string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, err := st.DB.Exec(st.upsertCredentialStmt, username, password)
	return err
}

// Credentials returns the persisted account, if any.
func (st *Store) Credentials() (username, password string, ok bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	row := st.DB.QueryRow("SELECT username, password FROM account WHERE id = 1")
	if err := row.Scan(&username, &password); err == nil {
		ok = true
	}
	return
}

// Clear wipes both cookies and credentials. Clearing an already empty store
// is a no-op.
func (st *Store) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.DB.Exec("DELETE FROM cookie")
	st.DB.Exec("DELETE FROM account")
}

func domainMatch(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func (st *Store) initTables() error {
	schema := `
CREATE TABLE IF NOT EXISTS cookie (
	name TEXT NOT NULL,
	value TEXT NOT NULL,
	domain TEXT NOT NULL,
	path TEXT NOT NULL,
	expires_at INTEGER NOT NULL DEFAULT 0,

	UNIQUE(name, domain, path)
);

CREATE TABLE IF NOT EXISTS account (
	id INTEGER NOT NULL PRIMARY KEY CHECK (id = 1),
	username TEXT NOT NULL,
	password TEXT NOT NULL
);
`
	_, err := st.DB.Exec(schema)
	return err
}

func (st *Store) initSQLStatements() {
	st.upsertCookieStmt = `
		INSERT INTO cookie
			(name, value, domain, path, expires_at)
		VALUES
			(?, ?, ?, ?, ?)
		ON CONFLICT(name, domain, path) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at`

	st.deleteCookieStmt = `
		DELETE FROM cookie WHERE name = ? AND domain = ?`

	st.selectCookiesStmt = `
		SELECT name, value, domain, path, expires_at FROM cookie ORDER BY name`

	st.upsertCredentialStmt = `
		INSERT INTO account
			(id, username, password)
		VALUES
			(1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			password = excluded.password`
}
