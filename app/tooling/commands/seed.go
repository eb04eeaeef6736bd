package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/hearthkeep/hearthkeep/sdk/environment"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// adminOptions holds the credentials for the bootstrap admin account.
type adminOptions struct {
	Email    string `env:"ADMIN_EMAIL" required:"true"`
	Name     string `env:"ADMIN_NAME" default:"Administrator"`
	Password string `env:"ADMIN_PASSWORD" required:"true"`
}

// SeedAdmin creates the initial admin user so a fresh install has someone
// who can log in and create the rest of the household.
func SeedAdmin(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
	var opts adminOptions
	if err := environment.ParseEnvTags("HEARTHKEEP", &opts); err != nil {
		return fmt.Errorf("parsing admin config: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	users := usersrepo.NewRepository(log, userspgxstore.NewStore(log, pool))

	user, err := users.Create(ctx, usersrepo.CreateUser{
		Email:    opts.Email,
		Name:     opts.Name,
		Role:     usersrepo.RoleAdmin,
		Password: opts.Password,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			log.Info(ctx, "admin user already exists", "email", opts.Email)
			return nil
		}
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Info(ctx, "admin user created", "user_id", user.UserID, "email", user.Email)
	return nil
}
