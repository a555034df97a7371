package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/panaderia/backend/internal/api"
	"github.com/panaderia/backend/internal/api/handler"
	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/core/ports"
	"github.com/panaderia/backend/internal/core/service"
	"github.com/panaderia/backend/internal/infrastructure/db/mongo"
	"github.com/panaderia/backend/internal/infrastructure/db/redis"
	"github.com/panaderia/backend/internal/infrastructure/fieldcrypt"
	"github.com/panaderia/backend/internal/pkg/config"
	"github.com/panaderia/backend/pkg/logger"
)

// app holds the connections and wired components of one process.
type app struct {
	client *mongodriver.Client
	db     *mongodriver.Database
	rdb    *goredis.Client

	protector ports.FieldProtector
	tokens    *service.TokenService

	clients    *mongo.Repository[domain.Client]
	admins     *mongo.Repository[domain.Administrator]
	locations  *mongo.Repository[domain.Location]
	categories *mongo.Repository[domain.Category]
	supplies   *mongo.Repository[domain.Supply]
	products   *mongo.Repository[domain.Product]
	orders     *mongo.Repository[domain.Order]
	branches   *mongo.Repository[domain.Branch]
}

// open connects to the stores and builds the repositories. withCache
// connects Redis when an address is configured.
func open(ctx context.Context, cfg *config.Config, withCache bool) (*app, error) {
	log := logger.With("bootstrap")

	protector, err := fieldcrypt.New(cfg.Crypto)
	if err != nil {
		return nil, fmt.Errorf("field protector: %w", err)
	}
	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	client, db, err := mongo.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Str("scheme", protector.Scheme()).Msg("mongo ready")

	a := &app{
		client:     client,
		db:         db,
		protector:  protector,
		tokens:     tokens,
		clients:    mongo.NewRepository[domain.Client](db, mongo.CollectionClients, domain.MsgClientNotFound),
		admins:     mongo.NewRepository[domain.Administrator](db, mongo.CollectionAdmins, domain.MsgAdminNotFound),
		locations:  mongo.NewRepository[domain.Location](db, mongo.CollectionLocations, domain.MsgLocationNotFound),
		categories: mongo.NewRepository[domain.Category](db, mongo.CollectionCategories, domain.MsgCategoryNotFound),
		supplies:   mongo.NewRepository[domain.Supply](db, mongo.CollectionSupplies, domain.MsgSupplyNotFound),
		products:   mongo.NewRepository[domain.Product](db, mongo.CollectionProducts, domain.MsgProductNotFound),
		orders:     mongo.NewRepository[domain.Order](db, mongo.CollectionOrders, domain.MsgOrderNotFound),
		branches:   mongo.NewRepository[domain.Branch](db, mongo.CollectionBranches, domain.MsgBranchNotFound),
	}

	if withCache && cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			// The cache is optional; lists fall back to Mongo.
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, catalog cache disabled")
		} else {
			a.rdb = rdb
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis ready")
		}
	}
	return a, nil
}

func (a *app) close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	_ = a.client.Disconnect(context.Background())
}

func (a *app) clientService(log zerolog.Logger) ports.ClientService {
	return service.NewClientService(a.clients, a.protector, log)
}

func (a *app) administratorService(log zerolog.Logger) ports.AdministratorService {
	return service.NewAdministratorService(a.admins, a.protector, log)
}

// listCache returns nil when Redis is not connected, which leaves list
// caching off.
func (a *app) listCache() ports.ListCache {
	if a.rdb == nil {
		return nil
	}
	return redis.NewListCache(a.rdb)
}

func (a *app) services() api.Services {
	log := logger.With("service")
	cache := a.listCache()

	return api.Services{
		Auth:       service.NewAuthService(a.clients, a.admins, a.protector, a.tokens, log),
		Clients:    a.clientService(log),
		Admins:     a.administratorService(log),
		Locations:  service.NewCatalogService(a.locations, log, service.WithListCache[domain.Location](cache, service.CacheKeyLocations)),
		Categories: service.NewCatalogService(a.categories, log, service.WithListCache[domain.Category](cache, service.CacheKeyCategories)),
		Supplies:   service.NewSupplyService(a.supplies, log),
		Products:   service.NewCatalogService(a.products, log, service.WithListCache[domain.Product](cache, service.CacheKeyProducts)),
		Orders:     service.NewOrderService(a.orders, mongo.NewStockRepository(a.db), cache, log),
		Branches:   service.NewBranchService(a.branches, a.locations, a.orders, log),
	}
}

func (a *app) probes() map[string]handler.Probe {
	probes := map[string]handler.Probe{"mongodb": handler.MongoProbe(a.db)}
	if a.rdb != nil {
		probes["redis"] = handler.RedisProbe(a.rdb)
	}
	return probes
}
