package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	migs, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, migs)

	assert.Equal(t, "001", migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, migs[0].SQL, "users_email_key")
}

func TestLoadFrom_OrdersAndRejectsBadNames(t *testing.T) {
	fsys := fstest.MapFS{
		"m/002_more.sql":  {Data: []byte("SELECT 2;")},
		"m/001_init.sql":  {Data: []byte("SELECT 1;")},
		"m/README.md":     {Data: []byte("ignored")},
		"m/010_later.sql": {Data: []byte("SELECT 10;")},
	}

	migs, err := loadFrom(fsys, "m")
	require.NoError(t, err)
	require.Len(t, migs, 3)
	assert.Equal(t, []string{"001", "002", "010"}, []string{migs[0].Version, migs[1].Version, migs[2].Version})

	_, err = loadFrom(fstest.MapFS{"m/init.sql": {Data: []byte("x")}}, "m")
	assert.Error(t, err)

	_, err = loadFrom(fstest.MapFS{
		"m/001_a.sql": {Data: []byte("x")},
		"m/001_b.sql": {Data: []byte("y")},
	}, "m")
	assert.Error(t, err)
}
