package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppName is the directory name under the user config dir and the keyring
// service name.
const AppName = "colorweek"

// Config is the on-disk configuration. The file may contain // comments and
// trailing commas; ReadConfig tolerates both.
type Config struct {
	KeyringBackend string            `json:"keyring_backend,omitempty"`
	Account        string            `json:"account,omitempty"`
	Timezone       string            `json:"timezone,omitempty"`
	Calendar       string            `json:"calendar,omitempty"`
	Labels         map[string]string `json:"labels,omitempty"`
}

// CredentialsMissingError reports a missing OAuth client file.
type CredentialsMissingError struct {
	Path string
}

func (e *CredentialsMissingError) Error() string {
	return fmt.Sprintf("OAuth credentials not found at %s", e.Path)
}

func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// ConfigPath returns the path of config.json.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// CredentialsPath returns where the OAuth client JSON is installed.
func CredentialsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.json"), nil
}

// EnsureKeyringDir creates and returns the directory the file keyring
// backend falls back to when no OS keychain is available.
func EnsureKeyringDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	keyringDir := filepath.Join(dir, "keyring")
	if err := os.MkdirAll(keyringDir, 0o700); err != nil {
		return "", err
	}
	return keyringDir, nil
}

// ReadConfig loads config.json. A missing file yields a zero Config.
func ReadConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(sanitizeJSON(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig persists cfg to config.json, creating the directory if needed.
func WriteConfig(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ReadCredentials returns the installed OAuth client JSON, or a
// CredentialsMissingError when it is not installed yet.
func ReadCredentials() ([]byte, error) {
	path, err := CredentialsPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &CredentialsMissingError{Path: path}
		}
		return nil, err
	}
	return data, nil
}

// InstallCredentials copies an OAuth Desktop client JSON into the config dir.
func InstallCredentials(src string) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	var probe struct {
		Installed json.RawMessage `json:"installed"`
		Web       json.RawMessage `json:"web"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || (probe.Installed == nil && probe.Web == nil) {
		return "", fmt.Errorf("%s does not look like an OAuth client JSON", src)
	}
	path, err := CredentialsPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// sanitizeJSON strips // line comments and trailing commas so hand-edited
// config files parse with encoding/json. String contents are left alone.
func sanitizeJSON(data []byte) []byte {
	var out []byte
	inString := false
	escaped := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			out = append(out, c)
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				out = append(out, '\n')
			}
		case c == ',':
			// Drop the comma if the next non-space token closes a scope.
			j := i + 1
			for j < len(data) && (data[j] == ' ' || data[j] == '\t' || data[j] == '\n' || data[j] == '\r') {
				j++
			}
			if j < len(data) && (data[j] == '}' || data[j] == ']') {
				continue
			}
			// Comments after a trailing comma still hide the close.
			if j+1 < len(data) && data[j] == '/' && data[j+1] == '/' {
				rest := data[j:]
				if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
					k := j + nl
					for k < len(data) && (data[k] == ' ' || data[k] == '\t' || data[k] == '\n' || data[k] == '\r') {
						k++
					}
					if k < len(data) && (data[k] == '}' || data[k] == ']') {
						continue
					}
				}
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}
