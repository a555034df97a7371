package handler

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panaderia/backend/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"correo"`
	Username string `json:"usuario"`
	Password string `json:"contrasena"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type createClientRequest struct {
	Name      string `json:"nombre"          validate:"required"`
	Surnames  string `json:"apellidos"       validate:"required"`
	Phone     string `json:"telefono"        validate:"required"`
	BirthDate string `json:"fechaNacimiento" validate:"required"`
	Email     string `json:"correo"          validate:"required,email"`
	Password  string `json:"contrasena"      validate:"required,max=72"`
}

func (r createClientRequest) toDomain() (domain.NewClient, error) {
	birth, err := parseDate("fechaNacimiento", r.BirthDate)
	if err != nil {
		return domain.NewClient{}, err
	}
	return domain.NewClient{
		Name:      r.Name,
		Surnames:  r.Surnames,
		Phone:     r.Phone,
		BirthDate: birth,
		Email:     r.Email,
		Password:  r.Password,
	}, nil
}

type updateClientRequest struct {
	Name      *string `json:"nombre"          validate:"omitempty,min=1"`
	Surnames  *string `json:"apellidos"       validate:"omitempty,min=1"`
	Phone     *string `json:"telefono"        validate:"omitempty,min=1"`
	BirthDate *string `json:"fechaNacimiento"`
	Email     *string `json:"correo"          validate:"omitempty,email"`
	Password  *string `json:"contrasena"      validate:"omitempty,min=1,max=72"`
}

func (r updateClientRequest) toDomain() (domain.ClientPatch, error) {
	p := domain.ClientPatch{
		Name:     r.Name,
		Surnames: r.Surnames,
		Phone:    r.Phone,
		Email:    r.Email,
		Password: r.Password,
	}
	if r.BirthDate != nil {
		birth, err := parseDate("fechaNacimiento", *r.BirthDate)
		if err != nil {
			return domain.ClientPatch{}, err
		}
		p.BirthDate = &birth
	}
	return p, nil
}

type createAdministratorRequest struct {
	Name     string `json:"nombre"     validate:"required"`
	Surnames string `json:"apellidos"  validate:"required"`
	Username string `json:"usuario"    validate:"required"`
	Phone    string `json:"telefono"   validate:"required"`
	Password string `json:"contrasena" validate:"required,max=72"`
}

func (r createAdministratorRequest) toDomain() domain.NewAdministrator {
	return domain.NewAdministrator{
		Name:     r.Name,
		Surnames: r.Surnames,
		Username: r.Username,
		Phone:    r.Phone,
		Password: r.Password,
	}
}

type updateAdministratorRequest struct {
	Name     *string `json:"nombre"     validate:"omitempty,min=1"`
	Surnames *string `json:"apellidos"  validate:"omitempty,min=1"`
	Username *string `json:"usuario"    validate:"omitempty,min=1"`
	Phone    *string `json:"telefono"   validate:"omitempty,min=1"`
	Password *string `json:"contrasena" validate:"omitempty,min=1,max=72"`
}

func (r updateAdministratorRequest) toDomain() domain.AdministratorPatch {
	return domain.AdministratorPatch{
		Name:     r.Name,
		Surnames: r.Surnames,
		Username: r.Username,
		Phone:    r.Phone,
		Password: r.Password,
	}
}

type locationRequest struct {
	Description string  `json:"descripcion" validate:"required"`
	Longitude   float64 `json:"longitud"    validate:"gte=-180,lte=180"`
	Latitude    float64 `json:"latitud"     validate:"gte=-90,lte=90"`
}

func (r locationRequest) toDomain() (*domain.Location, error) {
	return &domain.Location{Description: r.Description, Longitude: r.Longitude, Latitude: r.Latitude}, nil
}

type categoryRequest struct {
	Name        string `json:"nombreCategoria"      validate:"required"`
	Description string `json:"descripcionCategoria"`
}

func (r categoryRequest) toDomain() (*domain.Category, error) {
	return &domain.Category{Name: r.Name, Description: r.Description}, nil
}

type supplyRequest struct {
	Name        string  `json:"nombre"       validate:"required"`
	NetQuantity float64 `json:"cantidadNeta" validate:"gt=0"`
	NetPrice    float64 `json:"precioNeto"   validate:"gte=0"`
}

func (r supplyRequest) toDomain() (*domain.Supply, error) {
	return &domain.Supply{Name: r.Name, NetQuantity: r.NetQuantity, NetPrice: r.NetPrice}, nil
}

type productRequest struct {
	Name       string   `json:"nombreProducto"   validate:"required"`
	Stock      int      `json:"cantidadStock"    validate:"gte=0"`
	FinalPrice float64  `json:"precioFinal"      validate:"gte=0"`
	ExpiresAt  string   `json:"fechaVencimiento" validate:"required"`
	Supplies   []string `json:"insumos"          validate:"dive,mongodb"`
	CategoryID string   `json:"catalogoProducto" validate:"required,mongodb"`
}

func (r productRequest) toDomain() (*domain.Product, error) {
	expires, err := parseDate("fechaVencimiento", r.ExpiresAt)
	if err != nil {
		return nil, err
	}
	supplies, err := parseIDs(r.Supplies)
	if err != nil {
		return nil, err
	}
	category, err := primitive.ObjectIDFromHex(r.CategoryID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return &domain.Product{
		Name:       r.Name,
		Stock:      r.Stock,
		FinalPrice: r.FinalPrice,
		ExpiresAt:  expires,
		Supplies:   supplies,
		CategoryID: category,
	}, nil
}

type orderRequest struct {
	Products   []string `json:"productos"   validate:"required,min=1,dive,mongodb"`
	TotalPrice float64  `json:"precioTotal" validate:"gte=0"`
	Clients    []string `json:"Cliente"     validate:"dive,mongodb"`
}

func (r orderRequest) toDomain() (*domain.Order, error) {
	products, err := parseIDs(r.Products)
	if err != nil {
		return nil, err
	}
	clients, err := parseIDs(r.Clients)
	if err != nil {
		return nil, err
	}
	return &domain.Order{Products: products, TotalPrice: r.TotalPrice, Clients: clients}, nil
}

type branchRequest struct {
	Orders     []string `json:"pedidos"   validate:"dive,mongodb"`
	Name       string   `json:"nombre"    validate:"required"`
	LocationID string   `json:"ubicacion" validate:"required,mongodb"`
}

func (r branchRequest) toDomain() (*domain.Branch, error) {
	orders, err := parseIDs(r.Orders)
	if err != nil {
		return nil, err
	}
	location, err := primitive.ObjectIDFromHex(r.LocationID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return &domain.Branch{Orders: orders, Name: r.Name, LocationID: location}, nil
}

type costingLine struct {
	SupplyID string  `json:"insumoId"          validate:"required,mongodb"`
	Quantity float64 `json:"cantidadUtilizada" validate:"gte=0"`
}

type costingRequest struct {
	Usages []costingLine `json:"insumosUtilizados" validate:"required,min=1,dive"`
}

func (r costingRequest) toDomain() ([]domain.SupplyUsage, error) {
	out := make([]domain.SupplyUsage, 0, len(r.Usages))
	for _, l := range r.Usages {
		id, err := primitive.ObjectIDFromHex(l.SupplyID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		out = append(out, domain.SupplyUsage{SupplyID: id, Quantity: l.Quantity})
	}
	return out, nil
}

type costingResponse struct {
	TotalCost float64 `json:"costoTotal"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ErrorBody is the envelope of every error response. Error carries
// diagnostics for internal faults only.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
