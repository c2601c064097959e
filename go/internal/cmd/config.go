package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	League struct {
		ID   int `yaml:"id"`
		Year int `yaml:"year"`
	} `yaml:"league"`
	Data struct {
		RankingsCSV string `yaml:"rankings_csv"`
		StateFile   string `yaml:"state_file"`
		JournalFile string `yaml:"journal_file"`
	} `yaml:"data"`
	Recommendations int `yaml:"recommendations"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func defaultConfig() *Config {
	var config Config
	config.Data.RankingsCSV = "data/rankings.csv"
	config.Data.StateFile = "data/draft_state.json"
	config.Data.JournalFile = "data/draft_journal.db"
	config.Recommendations = 5
	return &config
}

// loadConfig reads the yaml config if present and applies environment
// overrides. A missing file is not an error; the tool must run with no
// config at all.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.League.ID = getEnvAsInt("LEAGUE_ID", config.League.ID)
	config.League.Year = getEnvAsInt("LEAGUE_YEAR", config.League.Year)
	config.Data.RankingsCSV = getEnv("RANKINGS_CSV", config.Data.RankingsCSV)
	config.Data.StateFile = getEnv("DRAFT_STATE_FILE", config.Data.StateFile)
	config.Data.JournalFile = getEnv("DRAFT_JOURNAL_FILE", config.Data.JournalFile)
	config.Recommendations = getEnvAsInt("NUM_RECOMMENDATIONS", config.Recommendations)

	if config.Recommendations <= 0 {
		config.Recommendations = 5
	}
	return config, nil
}
