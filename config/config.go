// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	ownerDelete    = pflag.Bool("owner-delete", true, "Only allow users to delete media they own")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors", "host_cors")

	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")
	v.BindEnv("host.ssl.certificate_path", "host_ssl_certificate_path")
	v.BindEnv("host.ssl.certificate_key_path", "host_ssl_certificate_key_path")

	v.BindEnv("database.uri", "database_uri", "MONGODB_URI")
	v.BindEnv("database.name", "database_name")

	v.BindEnv("session.secret", "session_secret")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	v.BindEnv("media.owner_delete", "media_owner_delete")

	v.BindEnv("cdn.private_key", "cdn_private_key")
	v.BindEnv("cdn.upload_token_ttl", "cdn_upload_token_ttl")

	v.BindEnv("oauth.google.client_id", "oauth_google_client_id")
	v.BindEnv("oauth.google.client_secret", "oauth_google_client_secret")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors", "http://localhost:3000")
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("database.name", "mediashare")

	v.SetDefault("security.rate_limit", 5)

	v.SetDefault("media.owner_delete", true)

	v.SetDefault("cdn.upload_token_ttl", "30m")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}

		// Config file is optional, envs cover everything
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetBool("host.ssl.enabled") {
		if v.GetString("host.ssl.certificate_path") == "" {
			return errors.New("no ssl certificate path provided")
		}

		if v.GetString("host.ssl.certificate_key_path") == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if v.GetString("database.uri") == "" {
		return errors.New("database.uri is missing. Set it in config.toml or with the DATABASE_URI environment variable")
	}

	if v.GetString("session.secret") == "" {
		fmt.Println("WARNING: You haven't set a session secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random session secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if v.GetString("cdn.private_key") == "" {
		zap.L().Warn("No cdn.private_key set, upload authorization will be unavailable")
	}

	// CLI flag wins over config file and envs
	if pflag.CommandLine.Changed("owner-delete") {
		v.Set("media.owner_delete", *ownerDelete)
	}

	if v.GetString("oauth.google.client_id") == "" {
		zap.L().Warn("No OAuth client configured, external sign-in is disabled")
	}

	return nil
}
