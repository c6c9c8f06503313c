package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that mirror the CLI flags
const EnvPrefix = "TEMPLATESYNC"

// Flag names shared by the CLI and the viper keys
const (
	KeyConfig      = "config"
	KeyEnv         = "env"
	KeyYes         = "yes"
	KeyTemplate    = "template"
	KeyShop        = "shop"
	KeyDir         = "dir"
	KeyAPIVersion  = "api-version"
	KeyLogLevel    = "log-level"
	KeyMetricsFile = "metrics-file"
	KeyMongoURI    = "mongo-uri"
	KeyMongoDB     = "mongo-database"
	KeyRedisURL    = "redis-url"
	KeyRedisChan   = "redis-channel"
)

// Options are the resolved settings of one invocation
type Options struct {
	ConfigPath  string
	Env         string
	Yes         bool
	Template    string
	Shops       []string
	Dir         string
	APIVersion  string
	LogLevel    string
	MetricsFile string

	MongoURI      string
	MongoDatabase string
	RedisURL      string
	RedisChannel  string
}

// NewViper returns a viper instance reading TEMPLATESYNC_* variables.
// MONGODB_URI, MONGODB_DATABASE, REDIS_URL and REDIS_CHANNEL keep their usual names.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyConfig, DefaultConfigPath)
	v.SetDefault(KeyDir, ".")
	v.SetDefault(KeyAPIVersion, "2022-10")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyMongoDB, "templatesync")
	v.SetDefault(KeyRedisChan, "templatesync:events")

	_ = v.BindEnv(KeyMongoURI, "MONGODB_URI")
	_ = v.BindEnv(KeyMongoDB, "MONGODB_DATABASE")
	_ = v.BindEnv(KeyRedisURL, "REDIS_URL")
	_ = v.BindEnv(KeyRedisChan, "REDIS_CHANNEL")
	return v
}

// BindFlags makes flag values take precedence over environment and defaults
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	return v.BindPFlags(flags)
}

// LoadOptions reads the resolved options out of v
func LoadOptions(v *viper.Viper) Options {
	return Options{
		ConfigPath:    v.GetString(KeyConfig),
		Env:           v.GetString(KeyEnv),
		Yes:           v.GetBool(KeyYes),
		Template:      v.GetString(KeyTemplate),
		Shops:         v.GetStringSlice(KeyShop),
		Dir:           v.GetString(KeyDir),
		APIVersion:    v.GetString(KeyAPIVersion),
		LogLevel:      v.GetString(KeyLogLevel),
		MetricsFile:   v.GetString(KeyMetricsFile),
		MongoURI:      v.GetString(KeyMongoURI),
		MongoDatabase: v.GetString(KeyMongoDB),
		RedisURL:      v.GetString(KeyRedisURL),
		RedisChannel:  v.GetString(KeyRedisChan),
	}
}

// LoadDotEnv loads .env files into the process environment.
// Variables already set are left alone; a missing file is not an error.
func LoadDotEnv(logger zerolog.Logger, files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			logger.Debug().Str("file", f).Msg(".env file not found")
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logger.Warn().Err(err).Str("file", f).Msg("Failed to load .env file")
		}
	}
}
