package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/core/ports"
)

// Cache keys for the cached catalog lists.
const (
	CacheKeyLocations  = "ubicaciones"
	CacheKeyCategories = "categoriasProducto"
	CacheKeyProducts   = "productos"
)

// CatalogOption configures a CatalogService.
type CatalogOption[T any] func(*CatalogService[T])

// WithListCache caches List results under key and drops them on every write.
// A nil cache leaves caching off.
func WithListCache[T any](cache ports.ListCache, key string) CatalogOption[T] {
	return func(s *CatalogService[T]) {
		s.cache = cache
		s.cacheKey = key
	}
}

// WithWriteCheck runs check before Create and Update.
func WithWriteCheck[T any](check func(context.Context, *T) error) CatalogOption[T] {
	return func(s *CatalogService[T]) {
		s.check = check
	}
}

// CatalogService is CRUD over one collection with optional list caching.
type CatalogService[T any] struct {
	repo     ports.Repository[T]
	cache    ports.ListCache
	cacheKey string
	check    func(context.Context, *T) error
	log      zerolog.Logger
}

func NewCatalogService[T any](repo ports.Repository[T], log zerolog.Logger, opts ...CatalogOption[T]) *CatalogService[T] {
	s := &CatalogService[T]{repo: repo, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CatalogService[T]) Create(ctx context.Context, doc *T) (*T, error) {
	if err := s.runCheck(ctx, doc); err != nil {
		return nil, err
	}
	created, err := s.repo.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *CatalogService[T]) List(ctx context.Context) ([]T, error) {
	if s.cache != nil {
		var cached []T
		hit, err := s.cache.Load(ctx, s.cacheKey, &cached)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("key", s.cacheKey).Msg("cache load failed, reading store")
		case hit:
			return cached, nil
		}
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, s.cacheKey, list); err != nil {
			s.log.Warn().Err(err).Str("key", s.cacheKey).Msg("cache save failed")
		}
	}
	return list, nil
}

func (s *CatalogService[T]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService[T]) Update(ctx context.Context, id primitive.ObjectID, doc *T) (*T, error) {
	if err := s.runCheck(ctx, doc); err != nil {
		return nil, err
	}
	updated, err := s.repo.Replace(ctx, id, doc)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *CatalogService[T]) Delete(ctx context.Context, id primitive.ObjectID) (*T, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return deleted, nil
}

func (s *CatalogService[T]) runCheck(ctx context.Context, doc *T) error {
	if s.check == nil {
		return nil
	}
	return s.check(ctx, doc)
}

func (s *CatalogService[T]) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, s.cacheKey); err != nil {
		s.log.Warn().Err(err).Str("key", s.cacheKey).Msg("cache invalidation failed")
	}
}

type supplyService struct {
	*CatalogService[domain.Supply]
}

func NewSupplyService(repo ports.Repository[domain.Supply], log zerolog.Logger) ports.SupplyService {
	return &supplyService{CatalogService: NewCatalogService(repo, log)}
}

func (s *supplyService) Cost(ctx context.Context, usages []domain.SupplyUsage) (float64, error) {
	var total float64
	for _, u := range usages {
		supply, err := s.repo.FindByID(ctx, u.SupplyID)
		if err != nil {
			return 0, err
		}
		if supply.NetQuantity <= 0 {
			return 0, domain.Invalid(fmt.Sprintf("El insumo %s no tiene cantidad neta", supply.Name))
		}
		total += supply.UnitCost() * u.Quantity
	}
	return total, nil
}

type orderService struct {
	*CatalogService[domain.Order]
	stock    ports.StockRepository
	products ports.ListCache
}

// NewOrderService returns a service whose Create takes one unit of stock per
// product occurrence in the order. Stock changes drop the cached product list
// when products is not nil.
func NewOrderService(
	repo ports.Repository[domain.Order],
	stock ports.StockRepository,
	products ports.ListCache,
	log zerolog.Logger,
) ports.CatalogService[domain.Order] {
	return &orderService{CatalogService: NewCatalogService(repo, log), stock: stock, products: products}
}

func (s *orderService) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	taken := make([]primitive.ObjectID, 0, len(o.Products))
	defer func() {
		if len(taken) > 0 {
			s.dropProducts(ctx)
		}
	}()

	for _, pid := range o.Products {
		if err := s.stock.Take(ctx, pid); err != nil {
			s.restore(ctx, taken)
			return nil, err
		}
		taken = append(taken, pid)
	}

	created, err := s.repo.Insert(ctx, o)
	if err != nil {
		s.restore(ctx, taken)
		return nil, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}

// restore puts back stock taken by a failed order. Failures are logged; the
// caller already has an error to return.
func (s *orderService) restore(ctx context.Context, taken []primitive.ObjectID) {
	for _, pid := range taken {
		if err := s.stock.Return(ctx, pid); err != nil {
			s.log.Error().Err(err).Str("product_id", pid.Hex()).Msg("stock restore failed")
		}
	}
}

func (s *orderService) dropProducts(ctx context.Context) {
	if s.products == nil {
		return
	}
	if err := s.products.Invalidate(ctx, CacheKeyProducts); err != nil {
		s.log.Warn().Err(err).Str("key", CacheKeyProducts).Msg("cache invalidation failed")
	}
}

type branchService struct {
	*CatalogService[domain.Branch]
	locations ports.Repository[domain.Location]
	orders    ports.Repository[domain.Order]
}

// NewBranchService returns a service that refuses branches pointing at a
// missing location and resolves references on the view reads.
func NewBranchService(
	repo ports.Repository[domain.Branch],
	locations ports.Repository[domain.Location],
	orders ports.Repository[domain.Order],
	log zerolog.Logger,
) ports.BranchService {
	s := &branchService{locations: locations, orders: orders}
	s.CatalogService = NewCatalogService(repo, log, WithWriteCheck(s.checkLocation))
	return s
}

func (s *branchService) checkLocation(ctx context.Context, b *domain.Branch) error {
	if _, err := s.locations.FindByID(ctx, b.LocationID); err != nil {
		return err
	}
	return nil
}

func (s *branchService) ListViews(ctx context.Context) ([]domain.BranchView, error) {
	branches, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]domain.BranchView, 0, len(branches))
	for i := range branches {
		v, err := s.populate(ctx, &branches[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *branchService) GetView(ctx context.Context, id primitive.ObjectID) (*domain.BranchView, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, b)
}

// populate resolves orders and location. Dangling references are dropped,
// matching how the stored data has always been read.
func (s *branchService) populate(ctx context.Context, b *domain.Branch) (*domain.BranchView, error) {
	v := &domain.BranchView{ID: b.ID, Name: b.Name, Orders: []domain.Order{}}

	if len(b.Orders) > 0 {
		orders, err := s.orders.FindByIDs(ctx, b.Orders)
		if err != nil {
			return nil, fmt.Errorf("populate branch %s: %w", b.ID.Hex(), err)
		}
		v.Orders = orders
	}

	loc, err := s.locations.FindByID(ctx, b.LocationID)
	switch {
	case err == nil:
		v.Location = loc
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("populate branch %s: %w", b.ID.Hex(), err)
	}
	return v, nil
}
