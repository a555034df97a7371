package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is a geographic point a branch sits on.
type Location struct {
	ID          primitive.ObjectID `json:"_id"         bson:"_id,omitempty"`
	Description string             `json:"descripcion" bson:"descripcion"`
	Longitude   float64            `json:"longitud"    bson:"longitud"`
	Latitude    float64            `json:"latitud"     bson:"latitud"`
}

type Category struct {
	ID          primitive.ObjectID `json:"_id"                  bson:"_id,omitempty"`
	Name        string             `json:"nombreCategoria"      bson:"nombreCategoria"`
	Description string             `json:"descripcionCategoria" bson:"descripcionCategoria"`
}

// Supply is a raw ingredient bought in NetQuantity units for NetPrice.
type Supply struct {
	ID          primitive.ObjectID `json:"_id"          bson:"_id,omitempty"`
	Name        string             `json:"nombre"       bson:"nombre"`
	NetQuantity float64            `json:"cantidadNeta" bson:"cantidadNeta"`
	NetPrice    float64            `json:"precioNeto"   bson:"precioNeto"`
}

// UnitCost is the price of a single unit of the supply.
func (s *Supply) UnitCost() float64 {
	return s.NetPrice / s.NetQuantity
}

// SupplyUsage is one line of a costing request.
type SupplyUsage struct {
	SupplyID primitive.ObjectID
	Quantity float64
}

type Product struct {
	ID         primitive.ObjectID   `json:"_id"              bson:"_id,omitempty"`
	Name       string               `json:"nombreProducto"   bson:"nombreProducto"`
	Stock      int                  `json:"cantidadStock"    bson:"cantidadStock"`
	FinalPrice float64              `json:"precioFinal"      bson:"precioFinal"`
	ExpiresAt  time.Time            `json:"fechaVencimiento" bson:"fechaVencimiento"`
	Supplies   []primitive.ObjectID `json:"insumos"          bson:"insumos"`
	CategoryID primitive.ObjectID   `json:"catalogoProducto" bson:"catalogoProducto"`
}

// Order groups products bought by one or more clients. The "Cliente" field
// name is kept as stored by earlier versions of the service.
type Order struct {
	ID         primitive.ObjectID   `json:"_id"         bson:"_id,omitempty"`
	Products   []primitive.ObjectID `json:"productos"   bson:"productos"`
	TotalPrice float64              `json:"precioTotal" bson:"precioTotal"`
	Clients    []primitive.ObjectID `json:"Cliente"     bson:"Cliente"`
}

type Branch struct {
	ID         primitive.ObjectID   `json:"_id"       bson:"_id,omitempty"`
	Orders     []primitive.ObjectID `json:"pedidos"   bson:"pedidos"`
	Name       string               `json:"nombre"    bson:"nombre"`
	LocationID primitive.ObjectID   `json:"ubicacion" bson:"ubicacion"`
}

// BranchView is a Branch with its references resolved.
type BranchView struct {
	ID       primitive.ObjectID `json:"_id"`
	Orders   []Order            `json:"pedidos"`
	Name     string             `json:"nombre"`
	Location *Location          `json:"ubicacion"`
}
