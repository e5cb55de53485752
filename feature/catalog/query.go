package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-aggregator/core/validator"
	"catalog-aggregator/feature/catalog/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrInvalidQuery is returned for out-of-range or unknown query parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidCursor is returned when the cursor does not identify a product.
	ErrInvalidCursor = errors.New("invalid cursor")
)

// QueryService reads the reconciled catalog. It never writes.
type QueryService struct {
	db        *gorm.DB
	validator *validator.Validator
	logger    *zap.Logger
	now       func() time.Time
}

// NewQueryService creates a QueryService.
func NewQueryService(db *gorm.DB, v *validator.Validator, logger *zap.Logger) *QueryService {
	return &QueryService{
		db:        db,
		validator: v,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *QueryService) validate(q any) error {
	if err := s.validator.Validate(q); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return nil
}

func historyNewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("changed_at DESC").Order("id DESC")
}

// FindPage returns one offset page of products with their price history.
func (s *QueryService) FindPage(ctx context.Context, q OffsetQuery) (*Page, error) {
	q = q.withDefaults()
	if err := s.validate(q); err != nil {
		return nil, err
	}
	return s.findPage(ctx, q, nil, historyNewestFirst)
}

// FindRecentChanges returns one offset page of products whose provider
// timestamp falls within the last hours, with history limited to the same window.
func (s *QueryService) FindRecentChanges(ctx context.Context, hours int, q OffsetQuery) (*Page, error) {
	if hours < 1 {
		return nil, fmt.Errorf("%w: hours must be at least 1", ErrInvalidQuery)
	}
	q = q.withDefaults()
	if err := s.validate(q); err != nil {
		return nil, err
	}

	since := s.now().Add(-time.Duration(hours) * time.Hour)
	filter := func(db *gorm.DB) *gorm.DB {
		return db.Where("last_updated >= ?", since)
	}
	history := func(db *gorm.DB) *gorm.DB {
		return historyNewestFirst(db.Where("changed_at >= ?", since))
	}
	return s.findPage(ctx, q, filter, history)
}

func (s *QueryService) findPage(ctx context.Context, q OffsetQuery, filter, history func(*gorm.DB) *gorm.DB) (*Page, error) {
	if filter == nil {
		filter = func(db *gorm.DB) *gorm.DB { return db }
	}

	var (
		total    int64
		products []models.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return filter(s.db.WithContext(gctx).Model(&models.Product{})).Count(&total).Error
	})
	g.Go(func() error {
		return filter(s.db.WithContext(gctx)).
			Preload("PriceHistory", history).
			Clauses(orderBy(sortColumns[q.SortBy], q.SortOrder == "desc")).
			Offset((q.Page - 1) * q.Limit).
			Limit(q.Limit).
			Find(&products).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	if products == nil {
		products = []models.Product{}
	}
	return &Page{Data: products, Meta: NewPageMeta(q.Page, q.Limit, total)}, nil
}

// FindCursor returns the products strictly after the row identified by
// q.Cursor in (sortBy, id) order. An unknown cursor yields ErrInvalidCursor.
func (s *QueryService) FindCursor(ctx context.Context, q CursorQuery) (*CursorPage, error) {
	q = q.withDefaults()
	if err := s.validate(q); err != nil {
		return nil, err
	}

	column := sortColumns[q.SortBy]
	desc := q.SortOrder == "desc"

	var anchor *models.Product
	if q.Cursor != "" {
		var p models.Product
		err := s.db.WithContext(ctx).Select("id", column).Take(&p, "id = ?", q.Cursor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCursor, q.Cursor)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load cursor: %w", err)
		}
		anchor = &p
	}

	var (
		total    int64
		products []models.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Product{}).Count(&total).Error
	})
	g.Go(func() error {
		db := s.db.WithContext(gctx)
		if anchor != nil {
			db = afterKey(db, column, desc, sortValue(*anchor, q.SortBy), anchor.ID)
		}
		return db.
			Preload("PriceHistory", historyNewestFirst).
			Clauses(orderBy(column, desc)).
			Limit(q.Limit + 1).
			Find(&products).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	meta := CursorMeta{Limit: q.Limit, Total: total}
	if q.Cursor != "" {
		current := q.Cursor
		meta.CurrentCursor = &current
	}
	if len(products) > q.Limit {
		products = products[:q.Limit]
		meta.HasNextPage = true
		next := products[len(products)-1].ID
		meta.NextCursor = &next
	}
	if products == nil {
		products = []models.Product{}
	}

	return &CursorPage{Data: products, Meta: meta}, nil
}

// FindOne returns a product with its full price history, newest first.
func (s *QueryService) FindOne(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).
		Preload("PriceHistory", historyNewestFirst).
		Take(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", id, err)
	}
	return &p, nil
}
