package utils

import (
	"os"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("GAMEHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("GAMEHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "gamehub"
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: 24 * time.Hour,
	}
}

// ImportConfig drives the populate pipeline: where the storefront
// lives, how images are fetched, where uploads are posted, and how long
// each product import waits before completing (the throttle against the
// image host and our own upload endpoint).
type ImportConfig struct {
	StorefrontBase string
	ImagePrefix    string
	UploadURL      string
	Throttle       time.Duration
}

func LoadImportConfig() ImportConfig {
	cfg := ImportConfig{
		StorefrontBase: "https://www.gog.com",
		ImagePrefix:    "https:",
		UploadURL:      "http://localhost:8080/upload",
		Throttle:       2 * time.Second,
	}

	if v := os.Getenv("GAMEHUB_STOREFRONT_BASE"); v != "" {
		cfg.StorefrontBase = v
	}
	if v := os.Getenv("GAMEHUB_IMAGE_PREFIX"); v != "" {
		cfg.ImagePrefix = v
	}
	if v := os.Getenv("GAMEHUB_UPLOAD_URL"); v != "" {
		cfg.UploadURL = v
	}
	if v := os.Getenv("GAMEHUB_IMPORT_THROTTLE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Throttle = d
		}
	}

	return cfg
}

type UploadConfig struct {
	Dir string
}

func LoadUploadConfig() UploadConfig {
	dir := os.Getenv("GAMEHUB_UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return UploadConfig{Dir: dir}
}
