package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads a .env file from the working directory if there is one. Values
// already present in the environment win.
func Load(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && len(filenames) == 0 && os.IsNotExist(err) {
		return nil
	}
	return err
}

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8080"
	}
	if port[0] != ':' {
		return ":" + port
	}
	return port
}

// AllowedOrigins reads the comma separated CORS_ALLOWED_ORIGINS. An empty
// result means any origin is allowed.
func AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
