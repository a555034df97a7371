package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panaderia/backend/internal/core/domain"
)

// stubCatalog records the last document it was handed.
type stubCatalog[T any] struct {
	last    *T
	lastID  primitive.ObjectID
	docs    []T
	err     error
	created func(*T) *T
}

func (s *stubCatalog[T]) Create(_ context.Context, doc *T) (*T, error) {
	s.last = doc
	if s.err != nil {
		return nil, s.err
	}
	if s.created != nil {
		return s.created(doc), nil
	}
	return doc, nil
}

func (s *stubCatalog[T]) List(context.Context) ([]T, error) {
	return s.docs, s.err
}

func (s *stubCatalog[T]) Get(_ context.Context, id primitive.ObjectID) (*T, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return &s.docs[0], nil
}

func (s *stubCatalog[T]) Update(_ context.Context, id primitive.ObjectID, doc *T) (*T, error) {
	s.lastID, s.last = id, doc
	if s.err != nil {
		return nil, s.err
	}
	return doc, nil
}

func (s *stubCatalog[T]) Delete(_ context.Context, id primitive.ObjectID) (*T, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return &s.docs[0], nil
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestCatalogHandler_Create(t *testing.T) {
	svc := &stubCatalog[domain.Location]{}
	h := NewCatalogHandler[domain.Location, locationRequest](svc, Locations)

	rec := httptest.NewRecorder()
	c := newEcho().NewContext(jsonRequest(http.MethodPost, "/ubicaciones", `{"descripcion":"Centro","longitud":-96.9,"latitud":19.5}`), rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.last == nil || svc.last.Description != "Centro" || svc.last.Latitude != 19.5 {
		t.Fatalf("unexpected document: %+v", svc.last)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Ubicación creada" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if _, ok := resp["ubicacion"].(map[string]any); !ok {
		t.Fatalf("expected ubicacion in response: %+v", resp)
	}
}

func TestCatalogHandler_Create_Validation(t *testing.T) {
	svc := &stubCatalog[domain.Supply]{}
	h := NewCatalogHandler[domain.Supply, supplyRequest](svc, Supplies)

	c := newEcho().NewContext(jsonRequest(http.MethodPost, "/insumos", `{"nombre":"Harina","cantidadNeta":0,"precioNeto":80}`), httptest.NewRecorder())

	err := h.Create(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Detail != "cantidadNeta debe ser mayor que 0" {
		t.Fatalf("unexpected detail: %q", ve.Detail)
	}
	if svc.last != nil {
		t.Fatalf("service must not be called")
	}
}

func TestCatalogHandler_Product_BadReference(t *testing.T) {
	svc := &stubCatalog[domain.Product]{}
	h := NewCatalogHandler[domain.Product, productRequest](svc, Products)

	body := `{"nombreProducto":"Pan","cantidadStock":3,"precioFinal":10,"fechaVencimiento":"2024-10-25","insumos":["nope"],"catalogoProducto":"` + primitive.NewObjectID().Hex() + `"}`
	err := h.Create(newEcho().NewContext(jsonRequest(http.MethodPost, "/productos", body), httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCatalogHandler_Product_ParsesDates(t *testing.T) {
	svc := &stubCatalog[domain.Product]{}
	h := NewCatalogHandler[domain.Product, productRequest](svc, Products)
	supply, category := primitive.NewObjectID(), primitive.NewObjectID()

	body := `{"nombreProducto":"Pan","cantidadStock":3,"precioFinal":10,"fechaVencimiento":"2024-10-25","insumos":["` +
		supply.Hex() + `"],"catalogoProducto":"` + category.Hex() + `"}`
	if err := h.Create(newEcho().NewContext(jsonRequest(http.MethodPost, "/productos", body), httptest.NewRecorder())); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	p := svc.last
	if p.ExpiresAt.Year() != 2024 || p.ExpiresAt.Day() != 25 {
		t.Fatalf("unexpected expiry: %v", p.ExpiresAt)
	}
	if len(p.Supplies) != 1 || p.Supplies[0] != supply || p.CategoryID != category {
		t.Fatalf("unexpected references: %+v", p)
	}
}

func TestCatalogHandler_InvalidID(t *testing.T) {
	svc := &stubCatalog[domain.Category]{}
	h := NewCatalogHandler[domain.Category, categoryRequest](svc, Categories)

	for name, run := range map[string]echo.HandlerFunc{"get": h.Get, "delete": h.Delete, "update": h.Update} {
		c := withID(newEcho().NewContext(jsonRequest(http.MethodPut, "/", `{"nombreCategoria":"x"}`), httptest.NewRecorder()), "123")
		if err := run(c); !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("%s: expected ErrInvalidID, got %v", name, err)
		}
	}
}

func TestCatalogHandler_NotFoundKeepsMessage(t *testing.T) {
	svc := &stubCatalog[domain.Category]{err: domain.NotFound(domain.MsgCategoryNotFound)}
	h := NewCatalogHandler[domain.Category, categoryRequest](svc, Categories)

	id := primitive.NewObjectID()
	err := h.Get(withID(newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()), id.Hex()))

	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Msg != domain.MsgCategoryNotFound {
		t.Fatalf("expected category not found, got %v", err)
	}
	if svc.lastID != id {
		t.Fatalf("wrong id passed to service")
	}
}

func TestCatalogHandler_UpdateAndDelete(t *testing.T) {
	id := primitive.NewObjectID()
	svc := &stubCatalog[domain.Category]{docs: []domain.Category{{ID: id, Name: "Panadería"}}}
	h := NewCatalogHandler[domain.Category, categoryRequest](svc, Categories)

	rec := httptest.NewRecorder()
	c := withID(newEcho().NewContext(jsonRequest(http.MethodPut, "/", `{"nombreCategoria":"Repostería"}`), rec), id.Hex())
	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK || decodeBody(t, rec)["message"] != "Categoría actualizada" {
		t.Fatalf("unexpected update response %d %s", rec.Code, rec.Body.String())
	}
	if svc.last.Name != "Repostería" || svc.lastID != id {
		t.Fatalf("unexpected update call: %+v", svc.last)
	}

	rec = httptest.NewRecorder()
	c = withID(newEcho().NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec), id.Hex())
	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Categoría eliminada" || resp["categoria"] == nil {
		t.Fatalf("unexpected delete response: %+v", resp)
	}
}

func TestCatalogHandler_InternalFault(t *testing.T) {
	svc := &stubCatalog[domain.Location]{err: errors.New("socket closed")}
	h := NewCatalogHandler[domain.Location, locationRequest](svc, Locations)

	err := h.List(newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
	var f *Failure
	if !errors.As(err, &f) || f.Message != Locations.ListFailed {
		t.Fatalf("expected Failure, got %v", err)
	}
}

type stubSupplies struct {
	stubCatalog[domain.Supply]
	usages []domain.SupplyUsage
	total  float64
}

func (s *stubSupplies) Cost(_ context.Context, usages []domain.SupplyUsage) (float64, error) {
	s.usages = usages
	return s.total, s.err
}

func TestSupplyHandler_Cost(t *testing.T) {
	svc := &stubSupplies{total: 30}
	h := NewSupplyHandler(svc)
	flour := primitive.NewObjectID()

	rec := httptest.NewRecorder()
	body := `{"insumosUtilizados":[{"insumoId":"` + flour.Hex() + `","cantidadUtilizada":250}]}`
	if err := h.Cost(newEcho().NewContext(jsonRequest(http.MethodPost, "/insumos/costeo", body), rec)); err != nil {
		t.Fatalf("cost: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decodeBody(t, rec)["costoTotal"]; got != 30.0 {
		t.Fatalf("unexpected costoTotal %v", got)
	}
	if len(svc.usages) != 1 || svc.usages[0].SupplyID != flour || svc.usages[0].Quantity != 250 {
		t.Fatalf("unexpected usages %+v", svc.usages)
	}
}

func TestSupplyHandler_Cost_Empty(t *testing.T) {
	h := NewSupplyHandler(&stubSupplies{})
	err := h.Cost(newEcho().NewContext(jsonRequest(http.MethodPost, "/insumos/costeo", `{"insumosUtilizados":[]}`), httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOrderHandler_InsufficientStock(t *testing.T) {
	svc := &stubCatalog[domain.Order]{err: domain.ErrInsufficientStock}
	h := NewOrderHandler(svc)

	body := `{"productos":["` + primitive.NewObjectID().Hex() + `"],"precioTotal":150,"Cliente":[]}`
	err := h.Create(newEcho().NewContext(jsonRequest(http.MethodPost, "/pedidos", body), httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

type stubBranches struct {
	stubCatalog[domain.Branch]
	views []domain.BranchView
}

func (s *stubBranches) ListViews(context.Context) ([]domain.BranchView, error) {
	return s.views, s.err
}

func (s *stubBranches) GetView(_ context.Context, id primitive.ObjectID) (*domain.BranchView, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return &s.views[0], nil
}

func TestBranchHandler_ReadsViews(t *testing.T) {
	id := primitive.NewObjectID()
	svc := &stubBranches{views: []domain.BranchView{{
		ID:       id,
		Name:     "Sucursal Principal",
		Orders:   []domain.Order{{ID: primitive.NewObjectID(), TotalPrice: 150}},
		Location: &domain.Location{Description: "Centro"},
	}}}
	h := NewBranchHandler(svc)

	rec := httptest.NewRecorder()
	if err := h.Get(withID(newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), id.Hex())); err != nil {
		t.Fatalf("get: %v", err)
	}
	resp := decodeBody(t, rec)
	loc, ok := resp["ubicacion"].(map[string]any)
	if !ok || loc["descripcion"] != "Centro" {
		t.Fatalf("location not populated: %+v", resp)
	}
	if orders, ok := resp["pedidos"].([]any); !ok || len(orders) != 1 {
		t.Fatalf("orders not populated: %+v", resp)
	}

	rec = httptest.NewRecorder()
	if err := h.List(newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBranchHandler_RequiresLocation(t *testing.T) {
	h := NewBranchHandler(&stubBranches{})
	err := h.Create(newEcho().NewContext(jsonRequest(http.MethodPost, "/sucursales", `{"nombre":"Norte","pedidos":[]}`), httptest.NewRecorder()))

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Detail != "ubicacion es obligatorio" {
		t.Fatalf("expected ubicacion validation error, got %v", err)
	}
}
