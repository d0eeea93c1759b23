// Package config loads the bot's settings file.
package config

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
)

// tokenPattern is the "<bot id>:<secret>" shape of a Telegram API token.
var tokenPattern = regexp.MustCompile(`^[0-9]+:[A-Za-z0-9_-]+$`)

// Config holds everything the process needs at startup. All fields but
// DBPath are required; a missing key is fatal before the bot connects.
type Config struct {
	// Token authenticates the bot against the Telegram API.
	Token string

	// Mail relay coordinates and credentials.
	ServerName string
	ServerPort int
	MailFrom   string
	MailPass   string
	MailTo     string

	// DBPath overrides the default store location when set.
	DBPath string
}

// Load reads the key=value settings file at path and validates every
// required field.
func Load(path string) (*Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	cfg := &Config{
		Token:      values["token"],
		ServerName: values["server_name"],
		MailFrom:   values["mail_from"],
		MailPass:   values["mail_mdp"],
		MailTo:     values["mail_to"],
		DBPath:     values["db_path"],
	}

	required := map[string]string{
		"token":       cfg.Token,
		"server_name": cfg.ServerName,
		"server_port": values["server_port"],
		"mail_from":   cfg.MailFrom,
		"mail_mdp":    cfg.MailPass,
		"mail_to":     cfg.MailTo,
	}
	for _, key := range []string{"token", "server_name", "server_port", "mail_from", "mail_mdp", "mail_to"} {
		if required[key] == "" {
			return nil, fmt.Errorf("settings file %s: missing required key %q", path, key)
		}
	}

	if !tokenPattern.MatchString(cfg.Token) {
		return nil, fmt.Errorf("settings file %s: token is not of the form '<bot id>:<secret>'", path)
	}

	cfg.ServerPort, err = strconv.Atoi(values["server_port"])
	if err != nil {
		return nil, fmt.Errorf("settings file %s: server_port is not a number: %w", path, err)
	}

	return cfg, nil
}
