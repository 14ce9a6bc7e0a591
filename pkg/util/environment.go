package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		if len(pair) != 2 {
			continue
		}

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetPrefixedEnvironmentVariables returns the non-empty variables starting
// with prefix, keyed by the remainder of their name.
func GetPrefixedEnvironmentVariables(prefix string) map[string]string {
	variables := map[string]string{}

	for name, value := range GetEnvironmentVariables() {
		if value == "" {
			continue
		}

		if key, found := strings.CutPrefix(name, prefix); found && key != "" {
			variables[key] = value
		}
	}

	return variables
}
