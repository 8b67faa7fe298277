// Command devtoken mints an HS256 token for calling the API locally.
//
//	go run ./cmd/devtoken -user 'auth0|123' -nickname alice
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/andrewpaige1/fliply-api/auth"
	"github.com/andrewpaige1/fliply-api/config"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	userID := flag.String("user", "", "user id placed in the sub claim")
	nickname := flag.String("nickname", "", "optional nickname claim")
	ttl := flag.Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
	flag.Parse()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	issuer := auth.Issuer{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      *ttl,
	}
	token, err := issuer.CreateToken(*userID, *nickname)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token")
	}

	fmt.Println(token)
	log.Info().Str("user", *userID).Time("expires", time.Now().Add(*ttl)).Msg("token issued")
}
