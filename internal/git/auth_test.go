package git

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rectpromote/internal/config"
)

func TestAuthForHTTPSToken(t *testing.T) {
	t.Setenv("RP_GIT_TOKEN", "s3cret")
	c := NewClient(".", config.SyncConfig{TokenEnv: "RP_GIT_TOKEN"})

	auth := c.authFor("https://example.com/org/rectangular_promotion.git")
	basic, ok := auth.(*http.BasicAuth)
	require.True(t, ok)
	assert.Equal(t, "git", basic.Username)
	assert.Equal(t, "s3cret", basic.Password)
}

func TestAuthForFallsBackToDefaults(t *testing.T) {
	t.Setenv("RP_GIT_TOKEN", "")
	withToken := NewClient(".", config.SyncConfig{TokenEnv: "RP_GIT_TOKEN", Username: "ci"})
	assert.Nil(t, withToken.authFor("https://example.com/x.git"), "empty token env")

	t.Setenv("RP_GIT_TOKEN", "s3cret")
	assert.Nil(t, withToken.authFor("git@example.com:org/x.git"), "ssh uses agent")
	assert.Nil(t, NewClient(".", config.SyncConfig{}).authFor("https://example.com/x.git"), "no token configured")

	basic, ok := withToken.authFor("https://example.com/x.git").(*http.BasicAuth)
	require.True(t, ok)
	assert.Equal(t, "ci", basic.Username)
}
