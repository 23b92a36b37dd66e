package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// ResolveAPIKey resolves the Seoul open-data API key. The environment
// (where deployment secrets land) wins; otherwise a .env file is searched
// upward from the working directory and loaded. An empty return means no
// key is available, which the acquirer treats as "skip the live fetch".
func ResolveAPIKey() string {
	if key := os.Getenv(APIKeyEnvName); key != "" {
		return key
	}

	for _, p := range envFileCandidates() {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		// Load populates the process environment without overriding
		// variables that are already set.
		if err := godotenv.Load(p); err != nil {
			continue
		}
		break
	}

	return os.Getenv(APIKeyEnvName)
}

// envFileCandidates lists .env locations from the working directory up
// three levels, nearest first.
func envFileCandidates() []string {
	return []string{
		".env",
		filepath.Join("..", ".env"),
		filepath.Join("..", "..", ".env"),
		filepath.Join("..", "..", "..", ".env"),
	}
}
