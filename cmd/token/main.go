package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jpashop/backend/internal/infrastructure/auth"
	"github.com/jpashop/backend/internal/infrastructure/config"
)

// token prints a bearer token whose subject the server records as auditor.
// It signs with jwt.secret from the same configuration the server reads.
func main() {
	var (
		subject string
		name    string
		ttl     time.Duration
	)

	flag.StringVar(&subject, "sub", "", "Subject recorded as created_by / last_modified_by (required)")
	flag.StringVar(&name, "name", "", "Display name carried in the token")
	flag.DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := issue(os.Stdout, auth.NewJWTService(cfg.JWT), subject, name, ttl); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}
}

func issue(w io.Writer, svc *auth.JWTService, subject, name string, ttl time.Duration) error {
	if subject == "" {
		return auth.ErrMissingSubject
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	token, err := svc.GenerateToken(subject, name, ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
