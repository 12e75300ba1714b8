package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/shelf/internal/shared"
	"golang.org/x/oauth2"
)

// Scopes requested by the authorization code login. They cover every endpoint the client reads.
var Scopes = []string{
	"user-follow-read",
	"user-library-read",
	"playlist-read-private",
	"playlist-read-collaborative",
}

// OAuthConfig returns the [oauth2.Config] for the account service.
//
// Client credentials are sent with HTTP basic auth, which is what the token endpoint expects.
func (c *Client) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.creds.ClientID,
		ClientSecret: c.creds.ClientSecret,
		RedirectURL:  c.redirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.authURL,
			TokenURL:  c.tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// oauthContext makes the oauth2 package use the client's [http.Client].
func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// AuthURL returns the URL the user visits to grant access.
func (c *Client) AuthURL(state string) string {
	return c.OAuthConfig().AuthCodeURL(state)
}

// Exchange trades an authorization code for a token pair and adopts it.
func (c *Client) Exchange(ctx context.Context, code string) (Credentials, error) {
	if code == "" {
		return c.creds, fmt.Errorf("%w: authorization code", shared.ErrMissingArgument)
	}

	tk, err := c.OAuthConfig().Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return c.creds, fmt.Errorf("%w: failed to exchange auth code: %v", shared.ErrAuthFailed, err)
	}

	c.creds = c.creds.Rotate(tk.AccessToken, tk.RefreshToken)
	return c.creds, nil
}

// RefreshToken asks the token endpoint for a new access token using the current refresh token.
//
// On success the client adopts the rotated snapshot and returns it. A response without a refresh token keeps the
// current one. On any failure the error is logged and the unchanged snapshot is returned.
// The snapshot is never persisted here.
func (c *Client) RefreshToken(ctx context.Context) Credentials {
	if c.creds.RefreshToken == "" {
		c.logger.Error("could not refresh access token", "error", shared.ErrMissingCredentials)
		return c.creds
	}

	src := c.OAuthConfig().TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: c.creds.RefreshToken})
	tk, err := src.Token()
	if err != nil {
		c.logger.Error("could not refresh access token", "error", err)
		return c.creds
	}

	c.logger.Info("new access token received")

	// oauth2 copies the old refresh token into tk when the response omits one.
	rotated, _ := tk.Extra("refresh_token").(string)
	if rotated == "" {
		c.logger.Warn("no refresh token received")
	}

	c.creds = c.creds.Rotate(tk.AccessToken, rotated)

	c.logger.Debug("access token", "value", c.creds.AccessToken)
	c.logger.Debug("refresh token", "value", c.creds.RefreshToken)
	return c.creds
}
