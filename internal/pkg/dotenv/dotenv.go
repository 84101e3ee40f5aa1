package dotenv

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Load подгружает переменные из .env, уже выставленные переменные окружения не перезаписываются.
func Load(filenames ...string) error {
	return godotenv.Load(filenames...)
}

// ApplyFlags разбирает аргументы командной строки и переносит их в окружение,
// флаги имеют приоритет над .env и системными переменными.
func ApplyFlags(name string, args []string) error {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)

	port := flags.String("port", "", "Server port (overrides PORT environment variable)")
	storage := flags.String("storage", "", "Storage driver: postgres or memory (overrides STORAGE_DRIVER)")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	overrides := map[string]string{
		"PORT":           *port,
		"STORAGE_DRIVER": *storage,
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", key, err)
		}
	}
	return nil
}
