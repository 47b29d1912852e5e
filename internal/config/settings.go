package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Settings are the process-level defaults read from the environment.
// Command line flags take precedence over them.
type Settings struct {
	LogLevel    string
	OutputDir   string
	Trials      int
	Seed        int64
	Concurrency int

	envErr error
}

// LoadSettings reads an optional .env file (or the given files) and then the PLANNER_* variables.
// A missing .env file is not an error; any other load failure is reported by Validate.
func LoadSettings(files ...string) *Settings {
	var envErr error
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		envErr = err
	}

	return &Settings{
		envErr:      envErr,
		LogLevel:    getEnv("PLANNER_LOG_LEVEL", "info"),
		OutputDir:   getEnv("PLANNER_OUTPUT_DIR", "."),
		Trials:      getEnvInt("PLANNER_TRIALS", 0),
		Seed:        getEnvInt64("PLANNER_SEED", 0),
		Concurrency: getEnvInt("PLANNER_CONCURRENCY", 0),
	}
}

// Validate validates the settings and returns an error listing every problem
func (s *Settings) Validate() error {
	var problems []string

	if s.envErr != nil {
		problems = append(problems, fmt.Sprintf("failed to load env file: %v", s.envErr))
	}

	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", s.LogLevel))
	}
	if s.OutputDir == "" {
		problems = append(problems, "output directory cannot be empty")
	}
	if s.Trials < 0 {
		problems = append(problems, fmt.Sprintf("invalid trials %d: cannot be negative", s.Trials))
	}
	if s.Concurrency < 0 {
		problems = append(problems, fmt.Sprintf("invalid concurrency %d: cannot be negative", s.Concurrency))
	}

	if len(problems) > 0 {
		return fmt.Errorf("settings validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}
