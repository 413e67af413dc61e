package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// imageService implements ImageService, writing files to the local uploads
// directory and the metadata rows through the image repository.
type imageService struct {
	imageRepo   repository.ProductImageRepository
	productRepo repository.ProductRepository
	uploadsDir  string
	logger      zerolog.Logger
}

// NewImageService creates a new image service rooted at uploadsDir.
func NewImageService(
	imageRepo repository.ProductImageRepository,
	productRepo repository.ProductRepository,
	uploadsDir string,
	logger zerolog.Logger,
) ImageService {
	return &imageService{
		imageRepo:   imageRepo,
		productRepo: productRepo,
		uploadsDir:  uploadsDir,
		logger:      logger.With().Str("service", "image").Logger(),
	}
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Upload stores the file under uploads/produtos/{id}/ with a generated name
// and records its metadata. The stored directory is the public URL prefix
// served by the static file route.
func (s *imageService) Upload(ctx context.Context, productID int64, fileName string, file io.Reader, primary bool) (*model.ProductImage, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedImageExts[ext] {
		return nil, model.NewValidationError("Formato de imagem não suportado")
	}

	dir := filepath.Join(s.uploadsDir, "produtos", strconv.FormatInt(productID, 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	storedName := uuid.New().String() + ext
	path := filepath.Join(dir, storedName)

	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create image file: %w", err)
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}

	image := &model.ProductImage{
		ProductID: productID,
		FileName:  storedName,
		Directory: fmt.Sprintf("/uploads/produtos/%d/", productID),
		Primary:   primary,
	}
	if err := s.imageRepo.Add(ctx, image); err != nil {
		os.Remove(path)
		return nil, err
	}

	if primary {
		if err := s.imageRepo.SetPrimary(ctx, productID, image.ID); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Int64("product_id", productID).
		Str("file", storedName).
		Msg("product image stored")

	return image, nil
}

// List returns a product's image metadata.
func (s *imageService) List(ctx context.Context, productID int64) ([]model.ProductImage, error) {
	return s.imageRepo.ListByProduct(ctx, productID)
}

// SetPrimary flags one image as the product's primary image.
func (s *imageService) SetPrimary(ctx context.Context, productID, imageID int64) error {
	return s.imageRepo.SetPrimary(ctx, productID, imageID)
}

// Delete removes the metadata row and best-effort deletes the file on disk.
func (s *imageService) Delete(ctx context.Context, imageID int64) error {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if image == nil {
		return model.NewNotFoundError("Imagem não encontrada")
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}

	path := filepath.Join(s.uploadsDir, "produtos", strconv.FormatInt(image.ProductID, 10), image.FileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove image file")
	}

	return nil
}
