package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv loads envFile into the process environment (existing variables
// win) and then reads the recognised variables into config. A missing
// envFile is not an error.
func parseEnv(config *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	setString(&config.EndpointAddrHTTP, "ADDRESS")
	setString(&config.RoutePrefix, "ROUTE_PREFIX")
	setString(&config.StoreType, "STORE_TYPE")
	setString(&config.MongoURI, "MONGO_URI")
	setString(&config.MongoDatabase, "MONGO_DATABASE")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "SECRET_KEY")
	setString(&config.RedisURL, "REDIS_URL")
	setString(&config.SendGridAPIKey, "SENDGRID_API_KEY")
	setString(&config.MailFrom, "MAIL_FROM")

	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		config.CORSOrigins = splitList(v)
	}

	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_VALIDITY %q: %w", v, err)
		}
		config.TokenValidityDuration = d
	}

	if err := setInt(&config.BcryptCost, "BCRYPT_COST"); err != nil {
		return err
	}
	if err := setInt(&config.RateBurst, "RATE_BURST"); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT %q: %w", v, err)
		}
		config.RateLimit = f
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
