package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/core/ports"
)

// SeedStore is a repository that can also report its size.
type SeedStore[T any] interface {
	ports.Repository[T]
	Count(ctx context.Context) (int64, error)
}

// SeedStores groups the collections the seed writes to.
type SeedStores struct {
	Supplies   SeedStore[domain.Supply]
	Categories SeedStore[domain.Category]
	Locations  SeedStore[domain.Location]
	Products   SeedStore[domain.Product]
	Orders     SeedStore[domain.Order]
	Branches   SeedStore[domain.Branch]
	Clients    SeedStore[domain.Client]
	Admins     SeedStore[domain.Administrator]
}

// Seeder inserts the bootstrap data set into empty collections. Collections
// that already hold documents are left alone.
type Seeder struct {
	stores  SeedStores
	clients ports.ClientService
	admins  ports.AdministratorService
	log     zerolog.Logger
}

func NewSeeder(stores SeedStores, clients ports.ClientService, admins ports.AdministratorService, log zerolog.Logger) *Seeder {
	return &Seeder{stores: stores, clients: clients, admins: admins, log: log}
}

func (s *Seeder) Run(ctx context.Context) error {
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"insumos", s.supplies},
		{"categorias", s.categories},
		{"ubicaciones", s.locations},
		{"productos", s.products},
		// Clients go before orders so the sample order has a buyer.
		{"clientes", s.clientsStep},
		{"pedidos", s.orders},
		{"sucursales", s.branches},
		{"administradores", s.adminsStep},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	s.log.Info().Msg("seed complete")
	return nil
}

func isEmpty[T any](ctx context.Context, store SeedStore[T]) (bool, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func insertAll[T any](ctx context.Context, store SeedStore[T], docs []T) error {
	for i := range docs {
		if _, err := store.Insert(ctx, &docs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) supplies(ctx context.Context) error {
	empty, err := isEmpty(ctx, s.stores.Supplies)
	if err != nil || !empty {
		return err
	}
	s.log.Info().Msg("inserting supplies")
	return insertAll(ctx, s.stores.Supplies, []domain.Supply{
		{Name: "Harina", NetQuantity: 1000, NetPrice: 80},
		{Name: "Azúcar", NetQuantity: 500, NetPrice: 50},
	})
}

func (s *Seeder) categories(ctx context.Context) error {
	empty, err := isEmpty(ctx, s.stores.Categories)
	if err != nil || !empty {
		return err
	}
	s.log.Info().Msg("inserting categories")
	return insertAll(ctx, s.stores.Categories, []domain.Category{
		{Name: "Repostería", Description: "Dulces y pasteles"},
		{Name: "Panadería", Description: "Pan y otros productos de panadería"},
	})
}

func (s *Seeder) locations(ctx context.Context) error {
	empty, err := isEmpty(ctx, s.stores.Locations)
	if err != nil || !empty {
		return err
	}
	s.log.Info().Msg("inserting locations")
	return insertAll(ctx, s.stores.Locations, []domain.Location{
		{Description: "Sucursal Principal", Longitude: -99.1332, Latitude: 19.4326},
		{Description: "Sucursal Secundaria", Longitude: -98.9815, Latitude: 19.3967},
	})
}

func (s *Seeder) products(ctx context.Context) error {
	empty, err := isEmpty(ctx, s.stores.Products)
	if err != nil || !empty {
		return err
	}
	supplies, err := s.stores.Supplies.List(ctx)
	if err != nil {
		return err
	}
	categories, err := s.stores.Categories.List(ctx)
	if err != nil {
		return err
	}
	if len(supplies) < 2 || len(categories) < 2 {
		s.log.Warn().Msg("not enough supplies or categories, skipping products")
		return nil
	}

	s.log.Info().Msg("inserting products")
	return insertAll(ctx, s.stores.Products, []domain.Product{
		{
			Name:       "Pastel de chocolate",
			Stock:      20,
			FinalPrice: 150,
			ExpiresAt:  time.Date(2024, time.October, 20, 0, 0, 0, 0, time.UTC),
			Supplies:   []primitive.ObjectID{supplies[0].ID, supplies[1].ID},
			CategoryID: categories[0].ID,
		},
		{
			Name:       "Pan integral",
			Stock:      30,
			FinalPrice: 50,
			ExpiresAt:  time.Date(2024, time.October, 25, 0, 0, 0, 0, time.UTC),
			Supplies:   []primitive.ObjectID{supplies[0].ID},
			CategoryID: categories[1].ID,
		},
	})
}

func (s *Seeder) clientsStep(ctx context.Context) error {
	empty, err := isEmpty(ctx, s.stores.Clients)
	if err != nil || !empty {
		return err
	}
	s.log.Info().Msg("inserting clients")
	for _, c := range []domain.NewClient{
		{Name: "Juan", Surnames: "Pérez", Phone: "2281234567", BirthDate: time.Date(1990, time.June, 12, 0, 0, 0, 0, time.UTC), Email: "juan.perez@gmail.com", Password: "123456"},
		{Name: "María", Surnames: "López", Phone: "2282345678", BirthDate: time.Date(1985, time.August, 22, 0, 0, 0, 0, time.UTC), Email: "maria.lopez@gmail.com", Password: "abcdef"},
	} {
		if _, err := s.clients.Register(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) orders(ctx context.Context) error {
	empty, err := isEmpty(ctx, s.stores.Orders)
	if err != nil || !empty {
		return err
	}
	products, err := s.stores.Products.List(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		s.log.Warn().Msg("no products, skipping orders")
		return nil
	}
	clients, err := s.stores.Clients.List(ctx)
	if err != nil {
		return err
	}

	order := domain.Order{Products: []primitive.ObjectID{products[0].ID}, TotalPrice: 150, Clients: []primitive.ObjectID{}}
	if len(clients) > 0 {
		order.Clients = append(order.Clients, clients[0].ID)
	}
	s.log.Info().Msg("inserting orders")
	return insertAll(ctx, s.stores.Orders, []domain.Order{order})
}

func (s *Seeder) branches(ctx context.Context) error {
	empty, err := isEmpty(ctx, s.stores.Branches)
	if err != nil || !empty {
		return err
	}
	locations, err := s.stores.Locations.List(ctx)
	if err != nil {
		return err
	}
	if len(locations) == 0 {
		s.log.Warn().Msg("no locations, skipping branches")
		return nil
	}
	orders, err := s.stores.Orders.List(ctx)
	if err != nil {
		return err
	}

	branch := domain.Branch{Name: "Sucursal Principal", LocationID: locations[0].ID, Orders: []primitive.ObjectID{}}
	if len(orders) > 0 {
		branch.Orders = append(branch.Orders, orders[0].ID)
	}
	s.log.Info().Msg("inserting branches")
	return insertAll(ctx, s.stores.Branches, []domain.Branch{branch})
}

func (s *Seeder) adminsStep(ctx context.Context) error {
	empty, err := isEmpty(ctx, s.stores.Admins)
	if err != nil || !empty {
		return err
	}
	s.log.Info().Msg("inserting administrators")
	for _, a := range []domain.NewAdministrator{
		{Name: "Luis", Surnames: "Mendoza", Phone: "2286789012", Username: "admin1", Password: "admin123"},
		{Name: "Laura", Surnames: "Hernández", Phone: "2287890123", Username: "admin2", Password: "admin456"},
	} {
		if _, err := s.admins.Register(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
