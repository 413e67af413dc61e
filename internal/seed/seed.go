// Package seed resets the known development accounts. It is opt-in via
// SEED_ENABLED and safe to run repeatedly.
package seed

import (
	"context"
	"fmt"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// devAccounts are the two backoffice logins used by the frontend during
// development.
var devAccounts = []struct {
	name     string
	email    string
	cpf      string
	group    string
	password string
}{
	{"Administrador Ratech", "admin@ratech.com", "111.111.111-11", model.GroupAdmin, "admin123"},
	{"Estoquista Ratech", "estoquista@ratech.com", "222.222.222-22", model.GroupStock, "estoque123"},
}

// Run ensures the development accounts exist and resets their passwords.
func Run(ctx context.Context, userRepo repository.UserRepository, logger zerolog.Logger) error {
	log := logger.With().Str("component", "seed").Logger()

	for _, account := range devAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		existing, err := userRepo.GetByEmail(ctx, account.email)
		if err != nil {
			return fmt.Errorf("failed to look up seed account: %w", err)
		}

		if existing != nil {
			if err := userRepo.UpdatePassword(ctx, existing.ID, string(hash)); err != nil {
				return fmt.Errorf("failed to reset seed password: %w", err)
			}
			log.Info().Str("email", account.email).Msg("seed account password reset")
			continue
		}

		user := &model.User{
			Name:         account.name,
			Email:        account.email,
			CPF:          account.cpf,
			PasswordHash: string(hash),
			Group:        account.group,
			Active:       true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create seed account: %w", err)
		}
		log.Info().Str("email", account.email).Str("group", account.group).Msg("seed account created")
	}

	return nil
}
