package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lurk-session.db")
	viper.Set("session", path)
	defer viper.Set("session", nil)

	ok, err := SessionStoreExists()
	require.Equal(t, nil, err)
	require.Equal(t, false, ok)

	// asking must not create the store as a side effect
	_, statErr := os.Stat(path)
	require.Equal(t, true, os.IsNotExist(statErr))

	st, err := OpenSessionStore()
	require.Equal(t, nil, err)
	st.Close()

	ok, err = SessionStoreExists()
	require.Equal(t, nil, err)
	require.Equal(t, true, ok)
}
