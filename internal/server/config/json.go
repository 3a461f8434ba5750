package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/meanblog/internal/flagx"
	"github.com/dmitrijs2005/meanblog/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Absent fields
// leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	RoutePrefix           string          `json:"route_prefix"`
	StoreType             string          `json:"store_type"`
	MongoURI              string          `json:"mongo_uri"`
	MongoDatabase         string          `json:"mongo_database"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	BcryptCost            *int            `json:"bcrypt_cost"`
	CORSOrigins           []string        `json:"cors_origins"`
	RateLimit             *float64        `json:"rate_limit"`
	RateBurst             *int            `json:"rate_burst"`
	RedisURL              string          `json:"redis_url"`
	SendGridAPIKey        string          `json:"sendgrid_api_key"`
	MailFrom              string          `json:"mail_from"`
}

// parseJson overlays the JSON file named by -c/-config in args, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	overlay(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlay(&config.RoutePrefix, c.RoutePrefix)
	overlay(&config.StoreType, c.StoreType)
	overlay(&config.MongoURI, c.MongoURI)
	overlay(&config.MongoDatabase, c.MongoDatabase)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.RedisURL, c.RedisURL)
	overlay(&config.SendGridAPIKey, c.SendGridAPIKey)
	overlay(&config.MailFrom, c.MailFrom)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.RateLimit != nil {
		config.RateLimit = *c.RateLimit
	}
	if c.RateBurst != nil {
		config.RateBurst = *c.RateBurst
	}

	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
