package utils

import (
	"os/user"
	"regexp"
	"strings"
)

var (
	fileComponentInvalid = regexp.MustCompile(`[^a-z0-9\-_]`)
	fileComponentHyphens = regexp.MustCompile(`-+`)
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// SanitizeFileComponent turns a user id into something safe to embed in a
// file name: lowercase, spaces to hyphens, anything outside [a-z0-9_-]
// dropped.
func SanitizeFileComponent(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")
	name = fileComponentInvalid.ReplaceAllString(name, "")
	name = fileComponentHyphens.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	if name == "" {
		name = "user"
	}
	return name
}
