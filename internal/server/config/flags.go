package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/meanblog/internal/flagx"
)

var serverFlags = []string{
	"-a", "-prefix", "-store", "-m", "-n", "-d", "-s", "-t",
	"-bcrypt-cost", "-cors", "-rl", "-rb", "-r",
}

// parseFlags overlays command-line flags from args.
//
//	-a string        HTTP bind address (e.g. ":8888")
//	-prefix string   route prefix of the authentication API
//	-store string    storage backend: mongo, postgres or memory
//	-m string        MongoDB URI
//	-n string        MongoDB database name
//	-d string        PostgreSQL DSN
//	-s string        JWT HMAC secret key
//	-t int           token validity, minutes
//	-bcrypt-cost int bcrypt work factor
//	-cors string     comma-separated allowed CORS origins
//	-rl float        requests per second per client
//	-rb int          rate limiter burst
//	-r string        Redis URL for a shared rate limiter
//
// Only the flags above are looked at; anything else in args is ignored.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.RoutePrefix, "prefix", config.RoutePrefix, "route prefix")
	fs.StringVar(&config.StoreType, "store", config.StoreType, "storage backend")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "mongo URI")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "mongo database")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	validity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.IntVar(&config.BcryptCost, "bcrypt-cost", config.BcryptCost, "bcrypt cost")
	cors := fs.String("cors", strings.Join(config.CORSOrigins, ","), "allowed CORS origins")
	fs.Float64Var(&config.RateLimit, "rl", config.RateLimit, "rate limit (requests per second)")
	fs.IntVar(&config.RateBurst, "rb", config.RateBurst, "rate limit burst")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*validity) * time.Minute
		case "cors":
			config.CORSOrigins = splitList(*cors)
		}
	})

	return nil
}
