package kindle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Credential errors, distinguishable with errors.Is.
var (
	ErrCredentialsNotFound  = errors.New("kindle secrets file not found")
	ErrCredentialsMalformed = errors.New("invalid JSON in kindle secrets file")
	ErrCredentialsInvalid   = errors.New("username and password must not be empty")
)

const secretsHint = `{
  "username": "your_email@example.com",
  "password": "your_password"
}`

// Credentials is the Amazon account login pair. Loaded fresh for every
// authentication attempt, never cached.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoadCredentials reads and validates the secrets file.
func LoadCredentials(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, fmt.Errorf(
				"%w at %s, create the file with your Amazon credentials:\n%s",
				ErrCredentialsNotFound, path, secretsHint)
		}
		return Credentials{}, fmt.Errorf("reading kindle secrets file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("%w at %s: %v", ErrCredentialsMalformed, path, err)
	}

	creds.Username = strings.TrimSpace(creds.Username)
	creds.Password = strings.TrimSpace(creds.Password)
	if creds.Username == "" || creds.Password == "" {
		return Credentials{}, fmt.Errorf("%w (in %s)", ErrCredentialsInvalid, path)
	}

	return creds, nil
}
