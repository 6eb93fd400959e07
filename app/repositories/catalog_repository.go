package repositories

import (
	"time"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/pkg/cache"
	"github.com/shashiranjanraj/novamarket/pkg/orm"
	"gorm.io/gorm"
)

// The category list changes only on staff edits, so it reads through
// redis and is forgotten on every mutation.
const (
	categoriesCacheKey = "novamarket:categories"
	categoriesCacheTTL = 5 * time.Minute
)

// CatalogRepository handles database operations for categories and
// products.
type CatalogRepository struct {
	q *orm.Query
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{q: orm.New(db)}
}

// Categories returns all categories ordered by name.
func (r *CatalogRepository) Categories() ([]models.Category, error) {
	var categories []models.Category
	err := r.q.Model(&models.Category{}).Order("name asc").
		Cache(categoriesCacheKey, categoriesCacheTTL, &categories)
	return categories, err
}

// CategoryBySlug looks up one category by its URL slug.
func (r *CatalogRepository) CategoryBySlug(slug string) (models.Category, error) {
	var category models.Category
	err := r.q.Model(&models.Category{}).Where("slug = ?", slug).First(&category)
	return category, err
}

// CreateCategory persists a new category.
func (r *CatalogRepository) CreateCategory(category *models.Category) error {
	if err := r.q.Create(category); err != nil {
		return err
	}
	cache.Forget(categoriesCacheKey)
	return nil
}

// UpdateCategory persists changes to a category.
func (r *CatalogRepository) UpdateCategory(category *models.Category) error {
	if err := r.q.Save(category); err != nil {
		return err
	}
	cache.Forget(categoriesCacheKey)
	return nil
}

// DeleteCategory removes a category and its products outright.
func (r *CatalogRepository) DeleteCategory(id uint) error {
	if err := r.q.Gorm().Unscoped().
		Where("category_id = ?", id).
		Delete(&models.Product{}).Error; err != nil {
		return err
	}
	if err := r.q.Gorm().Unscoped().Delete(&models.Category{}, id).Error; err != nil {
		return err
	}
	cache.Forget(categoriesCacheKey)
	return nil
}

// Products returns one page of products, optionally filtered by
// category slug and a name search term.
func (r *CatalogRepository) Products(categorySlug, search string, page, limit int) ([]models.Product, orm.Pagination, error) {
	q := r.q.Model(&models.Product{}).Preload("Category")

	if categorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if search != "" {
		q = q.Where("products.name LIKE ?", "%"+search+"%")
	}

	var products []models.Product
	pagination, err := q.Order("products.name asc").GetWithPagination(&products, page, limit)
	return products, pagination, err
}

// ProductBySlug looks up one product by its URL slug.
func (r *CatalogRepository) ProductBySlug(slug string) (models.Product, error) {
	var product models.Product
	err := r.q.Model(&models.Product{}).Preload("Category").Where("slug = ?", slug).First(&product)
	return product, err
}

// ProductByID looks up one product by primary key.
func (r *CatalogRepository) ProductByID(id uint) (models.Product, error) {
	var product models.Product
	err := r.q.Model(&models.Product{}).Preload("Category").Where("id = ?", id).First(&product)
	return product, err
}

// CreateProduct persists a new product.
func (r *CatalogRepository) CreateProduct(product *models.Product) error {
	return r.q.Create(product)
}

// UpdateProduct persists changes to a product.
func (r *CatalogRepository) UpdateProduct(product *models.Product) error {
	return r.q.Save(product)
}

// DeleteProduct removes a product outright. Order item snapshots keep
// their own copy of the data, so history survives the delete.
func (r *CatalogRepository) DeleteProduct(id uint) error {
	return r.q.Gorm().Unscoped().Delete(&models.Product{}, id).Error
}

// LowStock returns products with fewer than threshold units on hand,
// lowest first.
func (r *CatalogRepository) LowStock(threshold int) ([]models.Product, error) {
	var products []models.Product
	err := r.q.Model(&models.Product{}).
		Where("stock < ?", threshold).
		Order("stock asc").
		Get(&products)
	return products, err
}
