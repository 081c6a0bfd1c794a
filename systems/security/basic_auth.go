package security

import (
	"encoding/base64"
	"io/ioutil"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credentials from basic auth header.
type credentials struct {
	user     string
	password string
}

// Parses basic auth header.
func parseHeader(headers map[string][]string) (*credentials, error) {
	var auth []string

	for k, v := range headers {
		if k != "Authorization" {
			continue
		}

		if 1 != len(v) {
			continue
		}

		auth = strings.SplitN(v[0], " ", 2)
		break
	}

	if 2 != len(auth) || "Basic" != auth[0] {
		return nil, &ErrNoHeader{}
	}

	payload, err := base64.StdEncoding.DecodeString(auth[1])
	if err != nil {
		return nil, &ErrIncorrectHeader{}
	}

	pair := strings.SplitN(string(payload), ":", 2)
	if 2 != len(pair) || "" == pair[0] {
		return nil, &ErrCorruptedHeader{}
	}

	return &credentials{user: pair[0], password: pair[1]}, nil
}

// Reads htpasswd file.
// Passwords must be generated with -B option.
func readUsersFile(name string) (map[string]string, error) {
	users := make(map[string]string)
	data, err := ioutil.ReadFile(name)
	if err != nil {
		return nil, err
	}

	for _, v := range strings.Split(string(data), "\n") {
		v = strings.TrimSpace(v)
		if 0 == len(v) || strings.HasPrefix(v, "#") {
			continue
		}

		parts := strings.SplitN(v, ":", 2)
		if 2 != len(parts) {
			continue
		}

		users[parts[0]] = parts[1]
	}

	return users, nil
}

// Validates password against bcrypt hash.
func checkPassword(hash string, password string) bool {
	return nil == bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
