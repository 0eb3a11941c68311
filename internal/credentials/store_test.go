package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "twitter.properties")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestStore_Load(t *testing.T) {
	path := writeFile(t, "consumerKey=ck\nconsumerSecret = cs\n# comment\naccessToken=at\naccessToken.secret=ats\n")

	creds, err := NewStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, Credentials{
		ConsumerKey:       "ck",
		ConsumerSecret:    "cs",
		AccessToken:       "at",
		AccessTokenSecret: "ats",
	}, creds)
	require.True(t, creds.HasConsumer())
	require.True(t, creds.HasAccessToken())
}

func TestStore_LoadMissingFile(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "missing.properties")).Load()
	require.Error(t, err)
}

func TestStore_RoundTrip(t *testing.T) {
	path := writeFile(t, "consumerKey=ck\nconsumerSecret=cs\n")
	store := NewStore(path)

	want := Credentials{
		ConsumerKey:       "ck",
		ConsumerSecret:    "cs",
		AccessToken:       "12345-abc:def",
		AccessTokenSecret: "s3cr=t ${not.expanded}",
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_SaveKeepsUnknownKeys(t *testing.T) {
	path := writeFile(t, "consumerKey=ck\nconsumerSecret=cs\ndebug=true\n")
	store := NewStore(path)

	require.NoError(t, store.Save(Credentials{
		ConsumerKey:       "ck",
		ConsumerSecret:    "cs",
		AccessToken:       "at",
		AccessTokenSecret: "ats",
	}))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "debug = true")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must not be left behind")
}

func TestCredentials_HasAccessToken(t *testing.T) {
	testCases := []struct {
		name     string
		creds    Credentials
		expected bool
	}{
		{name: "both present", creds: Credentials{AccessToken: "a", AccessTokenSecret: "b"}, expected: true},
		{name: "both absent", creds: Credentials{}, expected: false},
		{name: "secret missing", creds: Credentials{AccessToken: "a"}, expected: false},
		{name: "token blank", creds: Credentials{AccessToken: "  ", AccessTokenSecret: "b"}, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.creds.HasAccessToken())
		})
	}
}
