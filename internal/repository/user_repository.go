package repository

import (
	"context"
	"fmt"

	"github.com/LidioGab/PI4-Ratech/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

const userColumns = `id_user, nm_user, ds_email, ds_cpf, ds_telefone, ds_senha, grupo, status`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CPF, &u.Phone, &u.PasswordHash, &u.Group, &u.Active)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts an admin/staff account.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO tb_usuario (nm_user, ds_email, ds_cpf, ds_telefone, ds_senha, grupo, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_user
	`

	err := r.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.CPF, user.Phone, user.PasswordHash, user.Group, user.Active,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrEmailTaken
		}
		r.logger.Error().Err(err).Str("email", user.Email).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by id, or nil when absent.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM tb_usuario WHERE id_user = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("user_id", id).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

// GetByEmail retrieves a user by email, or nil when absent.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM tb_usuario WHERE ds_email = $1`, email))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user by email")
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	return u, nil
}

// List returns all admin/staff accounts.
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM tb_usuario ORDER BY id_user`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Count returns the number of admin/staff accounts.
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tb_usuario`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// UpdatePassword replaces the stored password hash.
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tb_usuario SET ds_senha = $2 WHERE id_user = $1`, id, passwordHash)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", id).Msg("failed to update user password")
		return fmt.Errorf("failed to update user password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError("Usuário não encontrado")
	}
	return nil
}
