package lib

import (
	"os"
	"path/filepath"
	"strings"
)

func Exists(path string) bool {
	if _, err := os.Stat(path); err == nil {
		return true
	} else if os.IsNotExist(err) {
		return false
	}

	return true
}

/*
	Expand a leading ~ and make the path absolute.
*/
func Normalize(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	return filepath.Abs(path)
}

/*
	Remove repeated part numbers, keeping the first occurrence and the
	input order. Blank entries are dropped.
*/
func UniqueParts(parts []string) []string {
	seen := make(map[string]bool, len(parts))
	unique := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}

		seen[part] = true
		unique = append(unique, part)
	}

	return unique
}
