package main

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/desertthunder/shelf/internal/server"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the authorization code flow: it starts a callback server on the redirect URI's
// address, opens the browser to the authorization page and saves the exchanged tokens.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	spotify := r.config.Credentials.Spotify
	if spotify.ClientID == "" || spotify.ClientSecret == "" {
		return fmt.Errorf("%w: client_id and client_secret must be set in %s", shared.ErrMissingCredentials, r.configPath)
	}

	addr, path, err := callbackAddr(r.config)
	if err != nil {
		return err
	}

	state, err := shared.GenerateState()
	if err != nil {
		return err
	}

	client := r.api()
	handler := server.NewOAuthHandler(client, state, path)
	srv, err := server.StartCallbackServer(addr, handler, r.logger)
	if err != nil {
		return err
	}

	authURL := client.AuthURL(state)
	r.writePlain("Open this URL to authorize shelf:\n\n%s\n\n", authURL)

	if !cmd.Bool("no-browser") {
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warn("could not open browser", "error", err)
		}
	}

	creds, err := srv.Wait(ctx, cmd.Duration("timeout"))
	if err != nil {
		return err
	}

	if err := r.saveCredentials(creds); err != nil {
		return err
	}

	r.writePlain("✓ Authorization successful\n")
	r.writePlain("✓ Tokens saved to %s\n\n", r.configPath)
	return r.writePlain("You can now use: shelf sync all\n")
}

// AuthRefresh rotates the access token. The new pair is written to the config file only with --save.
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	client := r.api()
	before := client.Credentials()
	after := client.RefreshToken(ctx)

	if after == before {
		return fmt.Errorf("%w: token refresh failed, see the log for details", shared.ErrAuthFailed)
	}

	r.writePlain("✓ Access token refreshed\n")
	if after.RefreshToken != before.RefreshToken {
		r.writePlain("✓ Refresh token rotated\n")
	}

	if !cmd.Bool("save") {
		return r.writePlain("Run with --save to store the new tokens in %s\n", r.configPath)
	}

	if err := r.saveCredentials(after); err != nil {
		return err
	}
	return r.writePlain("✓ Tokens saved to %s\n", r.configPath)
}

type credentialStatus struct {
	Name string `json:"name"`
	Set  bool   `json:"set"`
}

// AuthStatus reports which credential values are present after environment overrides.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	missing := map[string]bool{}
	for _, name := range r.config.Credentials.Spotify.Missing() {
		missing[name] = true
	}

	statuses := []credentialStatus{}
	for _, name := range []string{"client_id", "client_secret", "access_token", "refresh_token"} {
		statuses = append(statuses, credentialStatus{Name: name, Set: !missing[name]})
	}

	if cmd.Bool("json") {
		return r.writeJSON(statuses, true)
	}

	r.writePlain("Config: %s\n", r.configPath)
	for _, s := range statuses {
		mark := "✗ missing"
		if s.Set {
			mark = "✓ set"
		}
		r.writePlain("  %-14s %s\n", s.Name, mark)
	}
	return nil
}

// callbackAddr derives the listen address and callback path from the configured redirect URI,
// falling back to [server] host and port.
func callbackAddr(config *shared.Config) (addr, path string, err error) {
	host := config.Server.Host
	port := strconv.Itoa(config.Server.Port)
	path = server.DefaultCallbackPath

	if raw := config.Credentials.Spotify.RedirectURI; raw != "" {
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", fmt.Errorf("%w: redirect_uri: %v", shared.ErrInvalidConfig, err)
		}
		if h := u.Hostname(); h != "" {
			host = h
		}
		if p := u.Port(); p != "" {
			port = p
		}
		if u.Path != "" {
			path = u.Path
		}
	}

	if host == "" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port), path, nil
}
