// Command ticketing-token signs an identity token for exercising the API locally.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/polkiloo/ticketing/internal/config"
	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/pkg/auth"
)

func main() {
	if err := run(os.Args[1:], os.LookupEnv, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, lookup func(string) (string, bool), out io.Writer) error {
	fs := flag.NewFlagSet("ticketing-token", flag.ContinueOnError)
	subject := fs.String("sub", "", "buyer or operator id")
	role := fs.String("role", string(model.RoleMember), "member or admin")
	secret := fs.String("secret", "", "signing secret (defaults to the service secret from the environment)")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r := model.Role(*role)
	if r != model.RoleMember && r != model.RoleAdmin {
		return fmt.Errorf("unknown role %q", *role)
	}
	if *secret == "" {
		resolved, err := config.ResolveAuthSecret(lookup)
		if err != nil {
			return err
		}
		*secret = resolved
	}

	token, err := auth.NewJWTStrategy(*secret, auth.Options{TTL: *ttl}).IssueToken(model.Identity{ID: *subject, Role: r})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
