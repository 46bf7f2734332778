package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}
}

// Config is the full process configuration, parsed from the environment.
type Config struct {
	BotToken string   `env:"BOT_TOKEN,required"`
	Prefix   string   `env:"COMMAND_PREFIX" envDefault:"/"`
	Mods     []string `env:"BOT_MODS" envSeparator:","`

	StoragePath string `env:"STORAGE_PATH" envDefault:"datastore.json"`

	AIProvider   string `env:"AI_PROVIDER" envDefault:"cohere"`
	CohereAPIKey string `env:"COHERE_API_KEY"`

	RegistrationLink string `env:"REGISTRATION_LINK" envDefault:"https://pocket1.click/smart/LmMX9SOEgMlUxD"`
	PromoCode        string `env:"PROMO_CODE" envDefault:"50START"`
	MediaDir         string `env:"MEDIA_DIR" envDefault:"media"`

	HealthAddr string `env:"HEALTH_ADDR" envDefault:":3001"`

	// RandomSeed makes canned-response selection and personality generation
	// reproducible. Zero means seed from the clock.
	RandomSeed int64 `env:"RANDOM_SEED" envDefault:"0"`
}

// New parses configuration from the environment. Missing required
// variables are fatal.
func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("[ERR] config: %v", err)
	}
	return cfg
}

// IsMod reports whether userID is in the configured moderator list.
func (c *Config) IsMod(userID string) bool {
	for _, id := range c.Mods {
		if id == userID {
			return true
		}
	}
	return false
}
