package repository

import (
	"context"
	"fmt"

	"github.com/LidioGab/PI4-Ratech/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

const customerColumns = `id_cliente, nome, cpf, email, senha, data_nascimento, genero, status, data_criacao`

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Name, &c.CPF, &c.Email, &c.PasswordHash,
		&c.BirthDate, &c.Gender, &c.Active, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a customer and its addresses in one transaction.
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO tb_cliente (nome, cpf, email, senha, data_nascimento, genero, status, data_criacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id_cliente
	`

	err = tx.QueryRow(ctx, query,
		customer.Name, customer.CPF, customer.Email, customer.PasswordHash,
		customer.BirthDate, customer.Gender, customer.Active, customer.CreatedAt,
	).Scan(&customer.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewConflictError("Email ou CPF já cadastrado")
		}
		r.logger.Error().Err(err).Str("email", customer.Email).Msg("failed to create customer")
		return fmt.Errorf("failed to create customer: %w", err)
	}

	addressQuery := `
		INSERT INTO tb_endereco_cliente (id_cliente, tipo, cep, logradouro, numero, complemento, bairro, cidade, uf, endereco_padrao, ativo, data_criacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id_endereco
	`

	for i := range customer.Addresses {
		addr := &customer.Addresses[i]
		addr.CustomerID = customer.ID
		err := tx.QueryRow(ctx, addressQuery,
			addr.CustomerID, addr.Type, addr.PostalCode, addr.Street, addr.Number,
			nullable(addr.Complement), addr.District, addr.City, addr.State,
			addr.Default, addr.Active, addr.CreatedAt,
		).Scan(&addr.ID)
		if err != nil {
			r.logger.Error().Err(err).Int64("customer_id", customer.ID).Msg("failed to create address")
			return fmt.Errorf("failed to create address: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit customer creation: %w", err)
	}

	r.logger.Debug().Int64("customer_id", customer.ID).Msg("customer created")
	return nil
}

// GetByID retrieves a customer by id, or nil when absent.
func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM tb_cliente WHERE id_cliente = $1`

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			r.logger.Debug().Int64("customer_id", id).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return c, nil
}

// GetByEmail retrieves a customer by email, or nil when absent.
func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM tb_cliente WHERE email = $1`

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query customer by email")
		return nil, fmt.Errorf("failed to query customer by email: %w", err)
	}

	return c, nil
}

// ExistsByEmail reports whether a customer with the email exists.
func (r *customerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tb_cliente WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// ExistsByCPF reports whether a customer with the CPF exists.
func (r *customerRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tb_cliente WHERE cpf = $1)`, cpf).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check cpf existence: %w", err)
	}
	return exists, nil
}

// Update applies profile changes (name, birth date, gender).
func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	query := `
		UPDATE tb_cliente
		SET nome = $2, data_nascimento = $3, genero = $4
		WHERE id_cliente = $1
	`

	tag, err := r.pool.Exec(ctx, query, customer.ID, customer.Name, customer.BirthDate, customer.Gender)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", customer.ID).Msg("failed to update customer")
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCustomerNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *customerRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tb_cliente SET senha = $2 WHERE id_cliente = $1`, id, passwordHash)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to update password")
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCustomerNotFound
	}
	return nil
}

const addressColumns = `id_endereco, id_cliente, tipo, cep, logradouro, numero, complemento, bairro, cidade, uf, endereco_padrao, ativo, data_criacao`

func scanAddress(row pgx.Row) (*model.Address, error) {
	var a model.Address
	var complement *string
	err := row.Scan(&a.ID, &a.CustomerID, &a.Type, &a.PostalCode, &a.Street, &a.Number,
		&complement, &a.District, &a.City, &a.State, &a.Default, &a.Active, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if complement != nil {
		a.Complement = *complement
	}
	return &a, nil
}

// ListAddresses returns the customer's addresses, billing first.
func (r *customerRepository) ListAddresses(ctx context.Context, customerID int64) ([]model.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM tb_endereco_cliente
		WHERE id_cliente = $1 AND ativo
		ORDER BY tipo = 'FATURAMENTO' DESC, id_endereco
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", customerID).Msg("failed to query addresses")
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []model.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}

	return addresses, nil
}

// AddAddress inserts one address for an existing customer. Marking it as the
// default clears the flag on the customer's other addresses first.
func (r *customerRepository) AddAddress(ctx context.Context, address *model.Address) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if address.Default {
		_, err := tx.Exec(ctx,
			`UPDATE tb_endereco_cliente SET endereco_padrao = FALSE WHERE id_cliente = $1`,
			address.CustomerID)
		if err != nil {
			return fmt.Errorf("failed to clear default addresses: %w", err)
		}
	}

	query := `
		INSERT INTO tb_endereco_cliente (id_cliente, tipo, cep, logradouro, numero, complemento, bairro, cidade, uf, endereco_padrao, ativo, data_criacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id_endereco
	`

	err = tx.QueryRow(ctx, query,
		address.CustomerID, address.Type, address.PostalCode, address.Street, address.Number,
		nullable(address.Complement), address.District, address.City, address.State,
		address.Default, address.Active, address.CreatedAt,
	).Scan(&address.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", address.CustomerID).Msg("failed to add address")
		return fmt.Errorf("failed to add address: %w", err)
	}

	return tx.Commit(ctx)
}

// UpdateAddress applies changes to an existing address.
func (r *customerRepository) UpdateAddress(ctx context.Context, address *model.Address) error {
	query := `
		UPDATE tb_endereco_cliente
		SET cep = $3, logradouro = $4, numero = $5, complemento = $6, bairro = $7, cidade = $8, uf = $9, endereco_padrao = $10
		WHERE id_endereco = $1 AND id_cliente = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		address.ID, address.CustomerID, address.PostalCode, address.Street, address.Number,
		nullable(address.Complement), address.District, address.City, address.State, address.Default,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("address_id", address.ID).Msg("failed to update address")
		return fmt.Errorf("failed to update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError("Endereço não encontrado")
	}

	return nil
}

// DeactivateAddress soft-deletes an address.
func (r *customerRepository) DeactivateAddress(ctx context.Context, customerID, addressID int64) error {
	query := `UPDATE tb_endereco_cliente SET ativo = FALSE WHERE id_endereco = $1 AND id_cliente = $2`

	tag, err := r.pool.Exec(ctx, query, addressID, customerID)
	if err != nil {
		r.logger.Error().Err(err).Int64("address_id", addressID).Msg("failed to deactivate address")
		return fmt.Errorf("failed to deactivate address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError("Endereço não encontrado")
	}

	return nil
}

// GetDefaultAddress returns the customer's default delivery address, or nil.
func (r *customerRepository) GetDefaultAddress(ctx context.Context, customerID int64) (*model.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM tb_endereco_cliente
		WHERE id_cliente = $1 AND ativo AND endereco_padrao
		LIMIT 1
	`

	a, err := scanAddress(r.pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query default address: %w", err)
	}

	return a, nil
}
