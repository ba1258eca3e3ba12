package configuration

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/avolkau/lurk/forum"
	"github.com/avolkau/lurk/session"
	"github.com/avolkau/lurk/utils"
)

// SessionStoreExists reports whether the configured session store has been
// created yet, without opening (and thereby creating) it.
func SessionStoreExists() (bool, error) {
	path := viper.GetString("session")
	if path == "" {
		return false, fmt.Errorf("no session store path configured")
	}
	return utils.PathExists(path)
}

// OpenSessionStore opens the sqlite session store named by the `session`
// setting, creating it on first use.
func OpenSessionStore() (*session.Store, error) {
	path := viper.GetString("session")
	if path == "" {
		return nil, fmt.Errorf("no session store path configured")
	}
	return session.OpenStore(path)
}

// OpenClient builds a forum client from the current settings. The caller
// owns the returned store and must Close it when done.
func OpenClient() (*forum.Client, *session.Store, error) {
	baseURL := viper.GetString("url")
	if baseURL == "" {
		return nil, nil, fmt.Errorf("no forum URL configured")
	}

	store, err := OpenSessionStore()
	if err != nil {
		return nil, nil, err
	}

	client, err := forum.NewClient(forum.Options{
		BaseURL:   baseURL,
		Store:     store,
		UserAgent: viper.GetString("user-agent"),
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return client, store, nil
}
