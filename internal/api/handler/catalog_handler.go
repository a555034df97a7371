package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/panaderia/backend/internal/api/metrics"
	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/core/ports"
)

// Resource holds the key and the user-facing messages of one catalog
// collection.
type Resource struct {
	// Key names the document in create, update and delete responses.
	Key string

	Created string
	Updated string
	Deleted string

	CreateFailed string
	ListFailed   string
	GetFailed    string
	UpdateFailed string
	DeleteFailed string
}

var (
	Locations = Resource{
		Key: "ubicacion", Created: "Ubicación creada", Updated: "Ubicación actualizada", Deleted: "Ubicación eliminada",
		CreateFailed: "Error al crear la ubicación", ListFailed: "Error al obtener las ubicaciones",
		GetFailed: "Error al obtener la ubicación", UpdateFailed: "Error al actualizar la ubicación",
		DeleteFailed: "Error al eliminar la ubicación",
	}
	Categories = Resource{
		Key: "categoria", Created: "Categoría creada", Updated: "Categoría actualizada", Deleted: "Categoría eliminada",
		CreateFailed: "Error al crear la categoría", ListFailed: "Error al obtener las categorías",
		GetFailed: "Error al obtener la categoría", UpdateFailed: "Error al actualizar la categoría",
		DeleteFailed: "Error al eliminar la categoría",
	}
	Supplies = Resource{
		Key: "insumo", Created: "Insumo creado", Updated: "Insumo actualizado", Deleted: "Insumo eliminado",
		CreateFailed: "Error al crear el insumo", ListFailed: "Error al obtener los insumos",
		GetFailed: "Error al obtener el insumo", UpdateFailed: "Error al actualizar el insumo",
		DeleteFailed: "Error al eliminar el insumo",
	}
	Products = Resource{
		Key: "producto", Created: "Producto creado", Updated: "Producto actualizado", Deleted: "Producto eliminado",
		CreateFailed: "Error al crear el producto", ListFailed: "Error al obtener los productos",
		GetFailed: "Error al obtener el producto", UpdateFailed: "Error al actualizar el producto",
		DeleteFailed: "Error al eliminar el producto",
	}
	Orders = Resource{
		Key: "pedido", Created: "Pedido creado", Updated: "Pedido actualizado", Deleted: "Pedido eliminado",
		CreateFailed: "Error al crear el pedido", ListFailed: "Error al obtener los pedidos",
		GetFailed: "Error al obtener el pedido", UpdateFailed: "Error al actualizar el pedido",
		DeleteFailed: "Error al eliminar el pedido",
	}
	Branches = Resource{
		Key: "sucursal", Created: "Sucursal creada", Updated: "Sucursal actualizada", Deleted: "Sucursal eliminada",
		CreateFailed: "Error al crear la sucursal", ListFailed: "Error al obtener las sucursales",
		GetFailed: "Error al obtener la sucursal", UpdateFailed: "Error al actualizar la sucursal",
		DeleteFailed: "Error al eliminar la sucursal",
	}
)

// request is a body that converts to a catalog document.
type request[T any] interface {
	toDomain() (*T, error)
}

// CatalogHandler serves create, list, get, update and delete for one
// collection. R is the request body type; updates are full replacements
// validated like creates.
type CatalogHandler[T any, R request[T]] struct {
	service ports.CatalogService[T]
	res     Resource
}

func NewCatalogHandler[T any, R request[T]](service ports.CatalogService[T], res Resource) *CatalogHandler[T, R] {
	return &CatalogHandler[T, R]{service: service, res: res}
}

func (h *CatalogHandler[T, R]) decode(c echo.Context) (*T, error) {
	var req R
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return req.toDomain()
}

// Create stores a new document. Resources under /insumos require an
// administrator token.
//
// @Summary      Create a catalog document
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "Documento"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  ErrorBody
// @Failure      404   {object}  ErrorBody
// @Failure      500   {object}  ErrorBody
// @Router       /ubicaciones [post]
// @Router       /categoriasProducto [post]
// @Router       /productos [post]
// @Router       /insumos [post]
// @Router       /sucursales [post]
func (h *CatalogHandler[T, R]) Create(c echo.Context) error {
	doc, err := h.decode(c)
	if err != nil {
		return err
	}
	created, err := h.service.Create(c.Request().Context(), doc)
	if err != nil {
		return fail(h.res.CreateFailed, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": h.res.Created, h.res.Key: created})
}

// @Summary      List catalog documents
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}   object
// @Failure      500  {object}  ErrorBody
// @Router       /ubicaciones [get]
// @Router       /categoriasProducto [get]
// @Router       /productos [get]
// @Router       /insumos [get]
// @Router       /pedidos [get]
func (h *CatalogHandler[T, R]) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return fail(h.res.ListFailed, err)
	}
	return c.JSON(http.StatusOK, list)
}

// @Summary      Get a catalog document
// @Tags         catalogo
// @Produce      json
// @Param        id   path      string  true  "ObjectID"
// @Success      200  {object}  object
// @Failure      400  {object}  ErrorBody
// @Failure      404  {object}  ErrorBody
// @Router       /ubicaciones/{id} [get]
// @Router       /categoriasProducto/{id} [get]
// @Router       /productos/{id} [get]
// @Router       /insumos/{id} [get]
// @Router       /pedidos/{id} [get]
func (h *CatalogHandler[T, R]) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	doc, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return fail(h.res.GetFailed, err)
	}
	return c.JSON(http.StatusOK, doc)
}

// Update replaces the whole document.
//
// @Summary      Replace a catalog document
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "ObjectID"
// @Param        body  body      object  true  "Documento"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  ErrorBody
// @Failure      404   {object}  ErrorBody
// @Router       /ubicaciones/{id} [put]
// @Router       /categoriasProducto/{id} [put]
// @Router       /productos/{id} [put]
// @Router       /insumos/{id} [put]
// @Router       /pedidos/{id} [put]
// @Router       /sucursales/{id} [put]
func (h *CatalogHandler[T, R]) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	doc, err := h.decode(c)
	if err != nil {
		return err
	}
	updated, err := h.service.Update(c.Request().Context(), id, doc)
	if err != nil {
		return fail(h.res.UpdateFailed, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": h.res.Updated, h.res.Key: updated})
}

// @Summary      Delete a catalog document
// @Tags         catalogo
// @Produce      json
// @Param        id   path      string  true  "ObjectID"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  ErrorBody
// @Failure      404  {object}  ErrorBody
// @Router       /ubicaciones/{id} [delete]
// @Router       /categoriasProducto/{id} [delete]
// @Router       /productos/{id} [delete]
// @Router       /insumos/{id} [delete]
// @Router       /pedidos/{id} [delete]
// @Router       /sucursales/{id} [delete]
func (h *CatalogHandler[T, R]) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	deleted, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(h.res.DeleteFailed, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": h.res.Deleted, h.res.Key: deleted})
}

func NewLocationHandler(service ports.CatalogService[domain.Location]) *CatalogHandler[domain.Location, locationRequest] {
	return NewCatalogHandler[domain.Location, locationRequest](service, Locations)
}

func NewCategoryHandler(service ports.CatalogService[domain.Category]) *CatalogHandler[domain.Category, categoryRequest] {
	return NewCatalogHandler[domain.Category, categoryRequest](service, Categories)
}

func NewProductHandler(service ports.CatalogService[domain.Product]) *CatalogHandler[domain.Product, productRequest] {
	return NewCatalogHandler[domain.Product, productRequest](service, Products)
}

// SupplyHandler adds costing to the supply CRUD.
type SupplyHandler struct {
	*CatalogHandler[domain.Supply, supplyRequest]
	service ports.SupplyService
}

func NewSupplyHandler(service ports.SupplyService) *SupplyHandler {
	return &SupplyHandler{
		CatalogHandler: NewCatalogHandler[domain.Supply, supplyRequest](service, Supplies),
		service:        service,
	}
}

// Cost totals the cost of the supplies used by a recipe.
//
// @Summary      Cost a recipe
// @Tags         insumos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      costingRequest  true  "Insumos utilizados"
// @Success      200   {object}  costingResponse
// @Failure      400   {object}  ErrorBody
// @Failure      404   {object}  ErrorBody
// @Router       /insumos/costeo [post]
func (h *SupplyHandler) Cost(c echo.Context) error {
	var req costingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	usages, err := req.toDomain()
	if err != nil {
		return err
	}
	total, err := h.service.Cost(c.Request().Context(), usages)
	if err != nil {
		return fail("Error al calcular el costo", err)
	}
	return c.JSON(http.StatusOK, costingResponse{TotalCost: total})
}

// OrderHandler counts stock rejections on top of the order CRUD.
type OrderHandler struct {
	*CatalogHandler[domain.Order, orderRequest]
}

func NewOrderHandler(service ports.CatalogService[domain.Order]) *OrderHandler {
	return &OrderHandler{CatalogHandler: NewCatalogHandler[domain.Order, orderRequest](service, Orders)}
}

// Create takes one unit of stock per product occurrence.
//
// @Summary      Create an order
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body  body      orderRequest  true  "Pedido"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  ErrorBody
// @Failure      404   {object}  ErrorBody
// @Failure      409   {object}  ErrorBody
// @Router       /pedidos [post]
func (h *OrderHandler) Create(c echo.Context) error {
	err := h.CatalogHandler.Create(c)
	if errors.Is(err, domain.ErrInsufficientStock) {
		metrics.StockRejectionsTotal.Inc()
	}
	return err
}

// BranchHandler serves branches with their orders and location resolved
// on reads.
type BranchHandler struct {
	*CatalogHandler[domain.Branch, branchRequest]
	service ports.BranchService
}

func NewBranchHandler(service ports.BranchService) *BranchHandler {
	return &BranchHandler{
		CatalogHandler: NewCatalogHandler[domain.Branch, branchRequest](service, Branches),
		service:        service,
	}
}

// @Summary      List branches with orders and location
// @Tags         sucursales
// @Produce      json
// @Success      200  {array}   domain.BranchView
// @Failure      500  {object}  ErrorBody
// @Router       /sucursales [get]
func (h *BranchHandler) List(c echo.Context) error {
	views, err := h.service.ListViews(c.Request().Context())
	if err != nil {
		return fail(Branches.ListFailed, err)
	}
	return c.JSON(http.StatusOK, views)
}

// @Summary      Get a branch with orders and location
// @Tags         sucursales
// @Produce      json
// @Param        id   path      string  true  "ObjectID"
// @Success      200  {object}  domain.BranchView
// @Failure      400  {object}  ErrorBody
// @Failure      404  {object}  ErrorBody
// @Router       /sucursales/{id} [get]
func (h *BranchHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	view, err := h.service.GetView(c.Request().Context(), id)
	if err != nil {
		return fail(Branches.GetFailed, err)
	}
	return c.JSON(http.StatusOK, view)
}
