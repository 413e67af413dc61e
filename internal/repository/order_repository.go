package repository

import (
	"context"
	"fmt"

	"github.com/LidioGab/PI4-Ratech/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `id_pedido, id_cliente, numero_pedido, status, subtotal, valor_frete, valor_total,
	endereco_entrega_cep, endereco_entrega_logradouro, endereco_entrega_numero, endereco_entrega_complemento,
	endereco_entrega_bairro, endereco_entrega_cidade, endereco_entrega_uf, observacoes, data_pedido, data_atualizacao`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var complement, notes *string
	err := row.Scan(&o.ID, &o.CustomerID, &o.Number, &o.Status, &o.Subtotal, &o.ShippingFee, &o.Total,
		&o.PostalCode, &o.Street, &o.StreetNumber, &complement,
		&o.District, &o.City, &o.State, &notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if complement != nil {
		o.Complement = *complement
	}
	if notes != nil {
		o.Notes = *notes
	}
	return &o, nil
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts the order and its line items within the transaction.
// A duplicate order number surfaces as a retryable CONFLICT.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO tb_pedido (id_cliente, numero_pedido, status, subtotal, valor_frete, valor_total,
			endereco_entrega_cep, endereco_entrega_logradouro, endereco_entrega_numero, endereco_entrega_complemento,
			endereco_entrega_bairro, endereco_entrega_cidade, endereco_entrega_uf, observacoes,
			data_pedido, data_atualizacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id_pedido
	`

	err := tx.QueryRow(ctx, query,
		order.CustomerID, order.Number, order.Status, order.Subtotal, order.ShippingFee, order.Total,
		order.PostalCode, order.Street, order.StreetNumber, nullable(order.Complement),
		order.District, order.City, order.State, nullable(order.Notes),
		order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().Str("order_number", order.Number).Msg("order number collision")
			return model.NewConflictError("Número de pedido já existe, tente novamente")
		}
		r.logger.Error().Err(err).Str("order_number", order.Number).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO tb_item_pedido (id_pedido, id_produto, quantidade, preco_unitario, subtotal, nome_produto, descricao_produto)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_item_pedido
	`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err := tx.QueryRow(ctx, itemQuery,
			item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
			item.ProductName, nullable(item.ProductDescription),
		).Scan(&item.ID)
		if err != nil {
			r.logger.Error().
				Err(err).
				Int64("order_id", order.ID).
				Int64("product_id", item.ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Int("item_count", len(order.Items)).
		Msg("order created")

	return nil
}

// GetByID retrieves an order with its items, or nil when absent.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM tb_pedido WHERE id_pedido = $1`
	return r.getOne(ctx, query, id)
}

// GetByNumber retrieves an order by its human-readable number.
func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM tb_pedido WHERE numero_pedido = $1`
	return r.getOne(ctx, query, number)
}

func (r *orderRepository) getOne(ctx context.Context, query string, arg any) (*model.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `
		SELECT id_item_pedido, id_pedido, id_produto, quantidade, preco_unitario, subtotal, nome_produto, descricao_produto
		FROM tb_item_pedido
		WHERE id_pedido = $1
		ORDER BY id_item_pedido
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var item model.OrderItem
		var description *string
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.Subtotal, &item.ProductName, &description)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if description != nil {
			item.ProductDescription = *description
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// ListByCustomer returns the customer's orders, newest first.
func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64, page, size int) ([]model.Order, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tb_pedido WHERE id_cliente = $1`, customerID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM tb_pedido WHERE id_cliente = $1 ORDER BY data_pedido DESC LIMIT $2 OFFSET $3`
	orders, err := r.listMany(ctx, query, customerID, size, page*size)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// ListAll returns all orders, newest first, optionally filtered by status.
func (r *orderRepository) ListAll(ctx context.Context, status *model.OrderStatus, page, size int) ([]model.Order, int64, error) {
	if status != nil {
		var total int64
		err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tb_pedido WHERE status = $1`, *status).Scan(&total)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count orders: %w", err)
		}
		query := `SELECT ` + orderColumns + ` FROM tb_pedido WHERE status = $1 ORDER BY data_pedido DESC LIMIT $2 OFFSET $3`
		orders, err := r.listMany(ctx, query, *status, size, page*size)
		if err != nil {
			return nil, 0, err
		}
		return orders, total, nil
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tb_pedido`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	query := `SELECT ` + orderColumns + ` FROM tb_pedido ORDER BY data_pedido DESC LIMIT $1 OFFSET $2`
	orders, err := r.listMany(ctx, query, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) listMany(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// UpdateStatus sets the order status and bumps the update timestamp.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	query := `UPDATE tb_pedido SET status = $2, data_atualizacao = NOW() WHERE id_pedido = $1`

	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
