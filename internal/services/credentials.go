package services

import "github.com/desertthunder/shelf/internal/shared"

// Credentials is an immutable snapshot of the values needed to call the API and rotate tokens.
//
// A refresh produces a new snapshot instead of mutating the old one, so a failed refresh can never leave a half-updated pair behind.
type Credentials struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
}

// CredentialsFromConfig takes a snapshot of the configured values. Missing values stay empty.
func CredentialsFromConfig(s shared.SpotifyConfig) Credentials {
	return Credentials{
		ClientID:     s.ClientID,
		ClientSecret: s.ClientSecret,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
}

// Rotate returns a copy with the access token replaced. The refresh token is only replaced when refresh is non-empty.
func (c Credentials) Rotate(access, refresh string) Credentials {
	next := c
	next.AccessToken = access
	if refresh != "" {
		next.RefreshToken = refresh
	}
	return next
}

// Missing returns the config names of the values that are empty.
func (c Credentials) Missing() []string {
	return shared.SpotifyConfig{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
	}.Missing()
}
