package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/LidioGab/PI4-Ratech/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id_produto, nome, preco, qtd_estoque, avaliacao, descricao, status, data_criacao`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Rating, &p.Description, &p.Active, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM tb_produto WHERE id_produto = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// Search performs a paged catalogue search by name substring and active flag.
func (r *productRepository) Search(ctx context.Context, params model.ProductSearch) ([]model.Product, int64, error) {
	where := []string{"TRUE"}
	args := []any{}

	if params.Name != "" {
		args = append(args, "%"+params.Name+"%")
		where = append(where, fmt.Sprintf("nome ILIKE $%d", len(args)))
	}
	if params.Active != nil {
		args = append(args, *params.Active)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM tb_produto WHERE ` + cond
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	orderBy := "data_criacao"
	switch params.SortBy {
	case "nome":
		orderBy = "nome"
	case "preco":
		orderBy = "preco"
	case "quantidadeEstoque":
		orderBy = "qtd_estoque"
	}
	direction := "ASC"
	if params.Desc {
		direction = "DESC"
	}

	args = append(args, params.Size, params.Page*params.Size)
	query := fmt.Sprintf(
		`SELECT %s FROM tb_produto WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		productColumns, cond, orderBy, direction, len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// Create inserts a product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO tb_produto (nome, preco, qtd_estoque, avaliacao, descricao, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_produto, data_criacao
	`

	err := r.pool.QueryRow(ctx, query,
		product.Name, product.Price, product.Stock, product.Rating, product.Description, product.Active,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", product.ID).Msg("product created")
	return nil
}

// Update persists the full product row.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE tb_produto
		SET nome = $2, preco = $3, qtd_estoque = $4, avaliacao = $5, descricao = $6, status = $7
		WHERE id_produto = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Stock, product.Rating, product.Description, product.Active,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tb_produto WHERE id_produto = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// SetActive toggles the product's active flag.
func (r *productRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tb_produto SET status = $2 WHERE id_produto = $1`, id, active)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to toggle product status")
		return fmt.Errorf("failed to toggle product status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// DecrementStock atomically subtracts quantity within the transaction. The
// WHERE guard makes concurrent checkouts on the last units race-safe: the
// losing transaction affects zero rows instead of driving stock negative.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id int64, quantity int) (bool, error) {
	query := `
		UPDATE tb_produto
		SET qtd_estoque = qtd_estoque - $2
		WHERE id_produto = $1 AND qtd_estoque >= $2
	`

	tag, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Int("quantity", quantity).Msg("failed to decrement stock")
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// CountAll returns the total number of products.
func (r *productRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tb_produto`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CountActive returns the number of active products.
func (r *productRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tb_produto WHERE status`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active products: %w", err)
	}
	return count, nil
}

// CountLowStock returns the number of products at or below the threshold.
func (r *productRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tb_produto WHERE qtd_estoque <= $1`, threshold).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count low stock products: %w", err)
	}
	return count, nil
}

// InventoryValue returns the sum of price times stock over the catalogue.
func (r *productRepository) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(preco * qtd_estoque), 0) FROM tb_produto`).Scan(&value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute inventory value: %w", err)
	}
	return value, nil
}

// ListLowStock returns products at or below the threshold, emptiest first.
func (r *productRepository) ListLowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM tb_produto WHERE qtd_estoque <= $1 ORDER BY qtd_estoque ASC`
	return r.list(ctx, query, threshold)
}

// ListTopPriced returns the most expensive products.
func (r *productRepository) ListTopPriced(ctx context.Context, limit int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM tb_produto ORDER BY preco DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *productRepository) list(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}
