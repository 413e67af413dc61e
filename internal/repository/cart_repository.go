package repository

import (
	"context"
	"fmt"

	"github.com/LidioGab/PI4-Ratech/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// ListByCustomer returns all cart rows for a customer with product data.
func (r *cartRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.CartItem, error) {
	query := `
		SELECT c.id_carrinho_item, c.id_cliente, c.id_produto, c.quantidade, c.data_adicao, c.data_atualizacao,
			p.id_produto, p.nome, p.preco, p.qtd_estoque, p.avaliacao, p.descricao, p.status, p.data_criacao
		FROM tb_carrinho_item c
		JOIN tb_produto p ON p.id_produto = c.id_produto
		WHERE c.id_cliente = $1
		ORDER BY c.data_adicao
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", customerID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	items := []model.CartItem{}
	for rows.Next() {
		var item model.CartItem
		var p model.Product
		err := rows.Scan(&item.ID, &item.CustomerID, &item.ProductID, &item.Quantity, &item.AddedAt, &item.UpdatedAt,
			&p.ID, &p.Name, &p.Price, &p.Stock, &p.Rating, &p.Description, &p.Active, &p.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.Product = &p
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// Get returns the (customer, product) row, or nil when absent.
func (r *cartRepository) Get(ctx context.Context, customerID, productID int64) (*model.CartItem, error) {
	query := `
		SELECT id_carrinho_item, id_cliente, id_produto, quantidade, data_adicao, data_atualizacao
		FROM tb_carrinho_item
		WHERE id_cliente = $1 AND id_produto = $2
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, customerID, productID).Scan(
		&item.ID, &item.CustomerID, &item.ProductID, &item.Quantity, &item.AddedAt, &item.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query cart item")
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}

	return &item, nil
}

// Save inserts or updates a cart row. The unique (customer, product)
// constraint keeps the cart to one row per pair.
func (r *cartRepository) Save(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO tb_carrinho_item (id_cliente, id_produto, quantidade, data_adicao, data_atualizacao)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (id_cliente, id_produto)
		DO UPDATE SET quantidade = $3, data_atualizacao = NOW()
		RETURNING id_carrinho_item, data_adicao, data_atualizacao
	`

	err := r.pool.QueryRow(ctx, query, item.CustomerID, item.ProductID, item.Quantity).
		Scan(&item.ID, &item.AddedAt, &item.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("customer_id", item.CustomerID).
			Int64("product_id", item.ProductID).
			Msg("failed to save cart item")
		return fmt.Errorf("failed to save cart item: %w", err)
	}

	return nil
}

// DeleteItem removes one (customer, product) row.
func (r *cartRepository) DeleteItem(ctx context.Context, customerID, productID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tb_carrinho_item WHERE id_cliente = $1 AND id_produto = $2`,
		customerID, productID)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete cart item")
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

// ClearByCustomer removes every cart row of the customer.
func (r *cartRepository) ClearByCustomer(ctx context.Context, customerID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tb_carrinho_item WHERE id_cliente = $1`, customerID)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", customerID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// CountByCustomer sums the quantities in the customer's cart.
func (r *cartRepository) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantidade), 0) FROM tb_carrinho_item WHERE id_cliente = $1`,
		customerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count, nil
}
