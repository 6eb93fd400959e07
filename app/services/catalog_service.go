package services

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/app/repositories"
	"github.com/shashiranjanraj/novamarket/pkg/logger"
	"github.com/shashiranjanraj/novamarket/pkg/orm"
	"github.com/shashiranjanraj/novamarket/pkg/storage"
)

// CatalogService serves the public catalogue and the staff CRUD behind
// it. Product images live on the default storage disk under uuid names.
type CatalogService struct {
	catalog *repositories.CatalogRepository
}

func NewCatalogService(catalog *repositories.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Categories lists every category, name order.
func (s *CatalogService) Categories() ([]models.Category, error) {
	return s.catalog.Categories()
}

// Products returns one page of the catalogue, optionally narrowed by
// category slug and a search term.
func (s *CatalogService) Products(categorySlug, search string, page, limit int) ([]models.Product, orm.Pagination, error) {
	return s.catalog.Products(categorySlug, search, page, limit)
}

// ProductBySlug returns one product for the detail page.
func (s *CatalogService) ProductBySlug(sl string) (models.Product, error) {
	return s.catalog.ProductBySlug(sl)
}

// ProductInput is the staff create/update payload.
type ProductInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"nullable"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
	CategoryID  uint   `json:"category_id" validate:"required"`
}

// CreateProduct adds a product with a slug derived from its name.
func (s *CatalogService) CreateProduct(in ProductInput) (models.Product, error) {
	sl, err := s.uniqueSlug(in.Name, 0)
	if err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Slug:        sl,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
	}
	if err := s.catalog.CreateProduct(&product); err != nil {
		return models.Product{}, err
	}
	logger.Info("catalog: product created", "product_id", product.ID, "slug", product.Slug)
	return product, nil
}

// UpdateProduct edits an existing product. A renamed product gets a new
// slug; stock edits here are absolute and take effect immediately.
func (s *CatalogService) UpdateProduct(id uint, in ProductInput) (models.Product, error) {
	product, err := s.catalog.ProductByID(id)
	if err != nil {
		return models.Product{}, err
	}

	if in.Name != product.Name {
		sl, err := s.uniqueSlug(in.Name, product.ID)
		if err != nil {
			return models.Product{}, err
		}
		product.Slug = sl
	}
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Stock = in.Stock
	product.CategoryID = in.CategoryID
	product.Category = nil

	if err := s.catalog.UpdateProduct(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// DeleteProduct removes a product and its stored image.
func (s *CatalogService) DeleteProduct(id uint) error {
	product, err := s.catalog.ProductByID(id)
	if err != nil {
		return err
	}

	if err := s.catalog.DeleteProduct(id); err != nil {
		return err
	}

	if product.Image != "" {
		if err := storage.Delete(product.Image); err != nil {
			logger.Warn("catalog: orphan image left behind", "path", product.Image, "error", err)
		}
	}
	return nil
}

// AttachImage stores an uploaded image under a uuid filename and points
// the product at it, replacing any previous image.
func (s *CatalogService) AttachImage(productID uint, filename string, r io.Reader) (models.Product, error) {
	product, err := s.catalog.ProductByID(productID)
	if err != nil {
		return models.Product{}, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return models.Product{}, fmt.Errorf("%w: %q", ErrUnsupportedImage, ext)
	}

	path := "products/" + uuid.NewString() + ext
	if err := storage.PutStream(path, r); err != nil {
		return models.Product{}, err
	}

	old := product.Image
	product.Image = path
	product.Category = nil
	if err := s.catalog.UpdateProduct(&product); err != nil {
		return models.Product{}, err
	}

	if old != "" && old != path {
		if err := storage.Delete(old); err != nil {
			logger.Warn("catalog: old image not removed", "path", old, "error", err)
		}
	}
	return product, nil
}

// CategoryInput is the staff category payload.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// CreateCategory adds a category with a slug derived from its name.
func (s *CatalogService) CreateCategory(in CategoryInput) (models.Category, error) {
	sl, err := s.uniqueCategorySlug(in.Name, 0)
	if err != nil {
		return models.Category{}, err
	}

	category := models.Category{
		Name: in.Name,
		Slug: sl,
	}
	if err := s.catalog.CreateCategory(&category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// uniqueSlug derives a product slug from name, suffixing a counter until
// it is free. selfID lets an update keep its own slug. Lookup failures
// other than a free slug abort the loop.
func (s *CatalogService) uniqueSlug(name string, selfID uint) (string, error) {
	base := slug.Make(name)
	candidate := base
	for n := 2; ; n++ {
		existing, err := s.catalog.ProductBySlug(candidate)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return candidate, nil
		case err != nil:
			return "", err
		case existing.ID == selfID:
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

func (s *CatalogService) uniqueCategorySlug(name string, selfID uint) (string, error) {
	base := slug.Make(name)
	candidate := base
	for n := 2; ; n++ {
		existing, err := s.catalog.CategoryBySlug(candidate)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return candidate, nil
		case err != nil:
			return "", err
		case existing.ID == selfID:
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
