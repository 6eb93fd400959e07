package seeders

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/config"
	"github.com/shashiranjanraj/novamarket/pkg/http"
	"github.com/shashiranjanraj/novamarket/pkg/logger"
	"github.com/shashiranjanraj/novamarket/pkg/storage"
)

func init() {
	Register("catalog", SeedCatalog)
}

type seedCategory struct {
	name string
	slug string
}

type seedProduct struct {
	name     string
	price    int64 // minor units
	category string // category slug
	imageURL string
}

var seedCategories = []seedCategory{
	{"Electronics", "electronics"},
	{"Fashion", "fashion"},
	{"Home & Living", "home-living"},
	{"Sports & Outdoors", "sports"},
	{"Beauty & Care", "beauty"},
	{"Books & Stationery", "books"},
}

var seedProducts = []seedProduct{
	{"iPhone 15 Pro", 124900, "electronics", "https://images.unsplash.com/photo-1695048133142-1a20484d2569?q=80&w=1000"},
	{"MacBook Pro M3", 199999, "electronics", "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?q=80&w=1000"},
	{"Sony Wireless Headphones", 29990, "electronics", "https://images.unsplash.com/photo-1546435770-a3e426ff472b?q=80&w=1000"},
	{"Samsung Odyssey G7", 45000, "electronics", "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?q=80&w=1000"},
	{"Apple Watch Ultra", 89900, "electronics", "https://images.unsplash.com/photo-1434494878577-86c23bcb06b9?q=80&w=1000"},

	{"Premium Cotton Hoodie", 2499, "fashion", "https://images.unsplash.com/photo-1556821840-3a63f95609a7?q=80&w=1000"},
	{"Nike Air Force 1", 8200, "fashion", "https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a?q=80&w=1000"},
	{"Luxury Wrist Watch", 15000, "fashion", "https://images.unsplash.com/photo-1524592094714-0f0654e20314?q=80&w=1000"},
	{"Denim Jacket", 4500, "fashion", "https://images.unsplash.com/photo-1551537482-f2075a1d41f2?q=80&w=1000"},

	{"Ergonomic Office Chair", 15500, "home-living", "https://images.unsplash.com/photo-1505797149-43b0069ec26b?q=80&w=1000"},
	{"Nespresso Coffee Machine", 18000, "home-living", "https://images.unsplash.com/photo-1517668808822-9ebb02f2a0e6?q=80&w=1000"},
	{"Smart Ambient Lamp", 3200, "home-living", "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?q=80&w=1000"},

	{"Mountain Bike", 35000, "sports", "https://images.unsplash.com/photo-1485965120184-e220f721d03e?q=80&w=1000"},
	{"Dumbbell Set 10kg", 2500, "sports", "https://images.unsplash.com/photo-1638536532686-d610adfc8e5c?q=80&w=1000"},
	{"Yoga Mat", 1200, "sports", "https://images.unsplash.com/photo-1592432676554-2b6348924897?q=80&w=1000"},
	{"Treadmill Pro", 45000, "sports", "https://images.unsplash.com/photo-1538805060514-97d9cc17730c?q=80&w=1000"},

	{"Organic Face Serum", 1500, "beauty", "https://images.unsplash.com/photo-1620916566398-39f1143ab7be?q=80&w=1000"},
	{"Electric Shaver", 4500, "beauty", "https://images.unsplash.com/photo-1621607512214-68297480165e?q=80&w=1000"},
	{"Premium Fragrance", 5500, "beauty", "https://images.unsplash.com/photo-1541643600914-78b084683601?q=80&w=1000"},
	{"Matte Lipstick Set", 1800, "beauty", "https://images.unsplash.com/photo-1586776977607-310e9c725c37?q=80&w=1000"},

	{"Hardbound Notebook", 450, "books", "https://images.unsplash.com/photo-1531346878377-a5be20888e57?q=80&w=1000"},
	{"Fountain Pen Set", 2500, "books", "https://images.unsplash.com/photo-1583485088034-697b5bc54ccd?q=80&w=1000"},
	{"Sci-Fi Novel", 899, "books", "https://images.unsplash.com/photo-1544947950-fa07a98d237f?q=80&w=1000"},
	{"Leather Journal", 1200, "books", "https://images.unsplash.com/photo-1512412023212-f099903b7ec8?q=80&w=1000"},
	{"Calligraphy Set", 3500, "books", "https://images.unsplash.com/photo-1569424110759-322197be07c3?q=80&w=1000"},
}

// SeedCatalog wipes the products table, upserts the six categories, and
// inserts the sample catalogue. Each product's image is downloaded and
// stored on the default disk; a failed download logs a warning and the
// product keeps an empty image path.
func SeedCatalog(db *gorm.DB) error {
	if err := db.Where("1 = 1").Unscoped().Delete(&models.Product{}).Error; err != nil {
		return fmt.Errorf("wipe products: %w", err)
	}

	categories := make(map[string]models.Category, len(seedCategories))
	for _, sc := range seedCategories {
		var category models.Category
		err := db.Where("slug = ?", sc.slug).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = models.Category{Name: sc.name, Slug: sc.slug}
			err = db.Create(&category).Error
		}
		if err != nil {
			return fmt.Errorf("category %s: %w", sc.slug, err)
		}
		categories[sc.slug] = category
	}

	for _, sp := range seedProducts {
		product := models.Product{
			CategoryID:  categories[sp.category].ID,
			Name:        sp.name,
			Slug:        slug.Make(sp.name),
			Description: fmt.Sprintf("Authentic %s curated for NovaMarket.", sp.name),
			Price:       sp.price,
			Stock:       5 + rand.Intn(36),
		}

		if path, ok := fetchImage(sp.name, product.Slug, sp.imageURL); ok {
			product.Image = path
		}

		if err := db.Create(&product).Error; err != nil {
			return fmt.Errorf("product %s: %w", sp.name, err)
		}
	}

	logger.Info("seed: catalogue ready",
		"products", len(seedProducts), "categories", len(seedCategories))
	return nil
}

// fetchImage downloads a product image and stores it under
// products/<slug>.jpg. Falls back to the configured placeholder source
// when the primary URL fails; a total failure is logged, not fatal.
func fetchImage(name, productSlug, url string) (string, bool) {
	sources := []string{
		url,
		fmt.Sprintf("%s/%s/600/600", config.SeedImageURL(), productSlug),
	}

	for _, src := range sources {
		resp, err := http.Get(src).
			Timeout(20 * time.Second).
			Retry(2, time.Second).
			Send()
		if err != nil || !resp.OK() {
			continue
		}

		path := "products/" + productSlug + ".jpg"
		if err := storage.Put(path, resp.Raw); err != nil {
			logger.Warn("seed: image store failed", "product", name, "error", err)
			return "", false
		}
		return path, true
	}

	logger.Warn("seed: image download failed", "product", name)
	return "", false
}
