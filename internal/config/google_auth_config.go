package config

import "os"

type GGAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewGGAuthConfig() *GGAuthConfig {
	redirect := os.Getenv("GOOGLE_REDIRECT_URL")
	if redirect == "" {
		redirect = "http://localhost:8082/auth/google/callback"
	}
	return &GGAuthConfig{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  redirect,
	}
}
