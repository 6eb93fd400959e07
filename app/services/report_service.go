package services

import (
	"time"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/app/repositories"
	"github.com/shashiranjanraj/novamarket/pkg/cache"
	"github.com/shashiranjanraj/novamarket/pkg/metrics"
	"github.com/shashiranjanraj/novamarket/pkg/orm"
	"gorm.io/gorm"
)

const (
	// dashboardCacheKey holds the rendered dashboard in redis. Checkout
	// and status changes forget it so staff never see stale revenue.
	dashboardCacheKey = "novamarket:dashboard"
	dashboardCacheTTL = time.Minute

	// lowStockThreshold flags products worth restocking.
	lowStockThreshold = 10

	// recentOrderCount is how many orders the dashboard shows.
	recentOrderCount = 8
)

// DailyRevenue is one day's worth of non-cancelled order revenue.
type DailyRevenue struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
	Orders  int64  `json:"orders"`
}

// Dashboard is the staff landing page payload.
type Dashboard struct {
	TotalRevenue  int64            `json:"total_revenue"`
	TotalOrders   int64            `json:"total_orders"`
	TotalUsers    int64            `json:"total_users"`
	TotalProducts int64            `json:"total_products"`
	RecentOrders  []models.Order   `json:"recent_orders"`
	DailyTrend    []DailyRevenue   `json:"daily_trend"`
	LowStock      []models.Product `json:"low_stock"`
}

// ReportService aggregates sales figures for the admin dashboard.
// Cancelled orders are excluded from every revenue number.
type ReportService struct {
	db      *gorm.DB
	catalog *repositories.CatalogRepository
	orders  *repositories.OrderRepository
}

func NewReportService(db *gorm.DB, catalog *repositories.CatalogRepository, orders *repositories.OrderRepository) *ReportService {
	return &ReportService{db: db, catalog: catalog, orders: orders}
}

// TotalRevenue sums TotalAmount across all non-cancelled orders.
func (s *ReportService) TotalRevenue() (int64, error) {
	var total int64
	err := s.db.Model(&models.Order{}).
		Where("status <> ?", models.StatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

// DailyTrend groups non-cancelled revenue by calendar day, oldest first.
func (s *ReportService) DailyTrend() ([]DailyRevenue, error) {
	var trend []DailyRevenue
	err := s.db.Model(&models.Order{}).
		Where("status <> ?", models.StatusCancelled).
		Select("DATE(created_at) AS date, SUM(total_amount) AS revenue, COUNT(*) AS orders").
		Group("DATE(created_at)").
		Order("date asc").
		Scan(&trend).Error
	return trend, err
}

// LowStock lists products running low, lowest first.
func (s *ReportService) LowStock() ([]models.Product, error) {
	return s.catalog.LowStock(lowStockThreshold)
}

// Dashboard assembles the full staff dashboard, served from redis when
// a fresh copy is cached.
func (s *ReportService) Dashboard() (Dashboard, error) {
	var d Dashboard
	if cache.Get(dashboardCacheKey, &d) {
		metrics.CacheHits.WithLabelValues("dashboard").Inc()
		return d, nil
	}
	metrics.CacheMisses.WithLabelValues("dashboard").Inc()

	revenue, err := s.TotalRevenue()
	if err != nil {
		return Dashboard{}, err
	}
	d.TotalRevenue = revenue

	q := orm.New(s.db)
	if err := q.Model(&models.Order{}).Count(&d.TotalOrders); err != nil {
		return Dashboard{}, err
	}
	if err := q.Model(&models.User{}).Count(&d.TotalUsers); err != nil {
		return Dashboard{}, err
	}
	if err := q.Model(&models.Product{}).Count(&d.TotalProducts); err != nil {
		return Dashboard{}, err
	}

	if d.RecentOrders, err = s.orders.Recent(recentOrderCount); err != nil {
		return Dashboard{}, err
	}

	if d.DailyTrend, err = s.DailyTrend(); err != nil {
		return Dashboard{}, err
	}
	if d.LowStock, err = s.LowStock(); err != nil {
		return Dashboard{}, err
	}

	cache.Set(dashboardCacheKey, d, dashboardCacheTTL)
	return d, nil
}
