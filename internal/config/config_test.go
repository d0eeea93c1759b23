package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const validSettings = `token=123456789:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA
server_name=smtp.example.com
server_port=587
mail_from=bot@example.com
mail_mdp=s3cret
mail_to=agency@example.com
`

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeSettings(t, validSettings))
	require.NoError(t, err)
	assert.Equal(t, "123456789:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", cfg.Token)
	assert.Equal(t, "smtp.example.com", cfg.ServerName)
	assert.Equal(t, 587, cfg.ServerPort)
	assert.Equal(t, "bot@example.com", cfg.MailFrom)
	assert.Equal(t, "s3cret", cfg.MailPass)
	assert.Equal(t, "agency@example.com", cfg.MailTo)
	assert.Empty(t, cfg.DBPath)
}

func TestLoad_OptionalDBPath(t *testing.T) {
	cfg, err := Load(writeSettings(t, validSettings+"db_path=/tmp/missions.db\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/missions.db", cfg.DBPath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestLoad_MissingRequiredKey(t *testing.T) {
	for _, key := range []string{"token", "server_name", "server_port", "mail_from", "mail_mdp", "mail_to"} {
		t.Run(key, func(t *testing.T) {
			content := ""
			for _, line := range []struct{ k, v string }{
				{"token", "t"}, {"server_name", "s"}, {"server_port", "587"},
				{"mail_from", "f"}, {"mail_mdp", "m"}, {"mail_to", "to"},
			} {
				if line.k == key {
					continue
				}
				content += line.k + "=" + line.v + "\n"
			}
			_, err := Load(writeSettings(t, content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_MalformedToken(t *testing.T) {
	for _, token := range []string{"pas-un-token", "123456789", ":secret", "abc:def"} {
		t.Run(token, func(t *testing.T) {
			content := "token=" + token + `
server_name=s
server_port=587
mail_from=f
mail_mdp=m
mail_to=to
`
			_, err := Load(writeSettings(t, content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "token")
		})
	}
}

func TestLoad_BadPort(t *testing.T) {
	content := `token=123456789:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA
server_name=s
server_port=not-a-port
mail_from=f
mail_mdp=m
mail_to=to
`
	_, err := Load(writeSettings(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server_port")
}
