package cache

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the platform-appropriate cache directory for appID without
// creating it. appID may contain only letters, digits and hyphens.
func Dir(appID string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return resolveDir(runtime.GOOS, home, os.Getenv, appID)
}

func resolveDir(goos, home string, getenv func(string) string, appID string) (string, error) {
	if !validAppID(appID) {
		return "", ErrInvalidAppID
	}

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", appID), nil
	case "windows":
		base := getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(base, appID, "Cache"), nil
	default:
		// Linux and anything unrecognized follow the XDG convention.
		base := getenv("XDG_CACHE_HOME")
		if base == "" {
			base = filepath.Join(home, ".cache")
		}
		return filepath.Join(base, appID), nil
	}
}

func validAppID(appID string) bool {
	if appID == "" {
		return false
	}
	for _, r := range appID {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}
