package git

import (
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// authFor returns explicit credentials for HTTPS remotes when a token env var
// is configured. SSH remotes use go-git's default agent-based auth, so the
// host's existing ssh-agent setup applies.
func (c *Client) authFor(url string) transport.AuthMethod {
	if c.cfg.TokenEnv == "" {
		return nil
	}
	ep, err := transport.NewEndpoint(url)
	if err != nil || (ep.Protocol != "https" && ep.Protocol != "http") {
		return nil
	}
	token := os.Getenv(c.cfg.TokenEnv)
	if token == "" {
		return nil
	}
	user := c.cfg.Username
	if user == "" {
		user = "git"
	}
	return &http.BasicAuth{Username: user, Password: token}
}
