package repository

import (
	"context"
	"fmt"

	"github.com/LidioGab/PI4-Ratech/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productImageRepository implements ProductImageRepository using PostgreSQL.
type productImageRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductImageRepository creates a new PostgreSQL-backed image repository.
func NewProductImageRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductImageRepository {
	return &productImageRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product_image").Logger(),
	}
}

// ListByProduct returns the image metadata rows of a product.
func (r *productImageRepository) ListByProduct(ctx context.Context, productID int64) ([]model.ProductImage, error) {
	query := `
		SELECT id_imagem, id_produto, nome_arquivo, diretorio, imagem_principal
		FROM tb_produto_imagem
		WHERE id_produto = $1
		ORDER BY id_imagem
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to query product images")
		return nil, fmt.Errorf("failed to query product images: %w", err)
	}
	defer rows.Close()

	images := []model.ProductImage{}
	for rows.Next() {
		var img model.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.FileName, &img.Directory, &img.Primary); err != nil {
			return nil, fmt.Errorf("failed to scan product image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product images: %w", err)
	}

	return images, nil
}

// GetByID retrieves one image row, or nil when absent.
func (r *productImageRepository) GetByID(ctx context.Context, id int64) (*model.ProductImage, error) {
	query := `
		SELECT id_imagem, id_produto, nome_arquivo, diretorio, imagem_principal
		FROM tb_produto_imagem
		WHERE id_imagem = $1
	`

	var img model.ProductImage
	err := r.pool.QueryRow(ctx, query, id).Scan(&img.ID, &img.ProductID, &img.FileName, &img.Directory, &img.Primary)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query product image: %w", err)
	}

	return &img, nil
}

// Add inserts an image metadata row.
func (r *productImageRepository) Add(ctx context.Context, image *model.ProductImage) error {
	query := `
		INSERT INTO tb_produto_imagem (id_produto, nome_arquivo, diretorio, imagem_principal)
		VALUES ($1, $2, $3, $4)
		RETURNING id_imagem
	`

	err := r.pool.QueryRow(ctx, query, image.ProductID, image.FileName, image.Directory, image.Primary).
		Scan(&image.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", image.ProductID).Msg("failed to add product image")
		return fmt.Errorf("failed to add product image: %w", err)
	}

	return nil
}

// SetPrimary flags one image as primary and clears the flag on siblings.
func (r *productImageRepository) SetPrimary(ctx context.Context, productID, imageID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE tb_produto_imagem SET imagem_principal = FALSE WHERE id_produto = $1`, productID); err != nil {
		return fmt.Errorf("failed to clear primary flags: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE tb_produto_imagem SET imagem_principal = TRUE WHERE id_imagem = $1 AND id_produto = $2`,
		imageID, productID)
	if err != nil {
		return fmt.Errorf("failed to set primary image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError("Imagem não encontrada")
	}

	return tx.Commit(ctx)
}

// Delete removes an image metadata row.
func (r *productImageRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tb_produto_imagem WHERE id_imagem = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("image_id", id).Msg("failed to delete product image")
		return fmt.Errorf("failed to delete product image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError("Imagem não encontrada")
	}
	return nil
}
