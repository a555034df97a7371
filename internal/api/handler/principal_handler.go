package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/panaderia/backend/internal/core/ports"
)

// ClientHandler serves /clientes.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create registers a client.
//
// @Summary      Register a client
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body  body      createClientRequest  true  "Cliente"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  ErrorBody
// @Failure      409   {object}  ErrorBody
// @Router       /clientes [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.toDomain()
	if err != nil {
		return err
	}
	created, err := h.service.Register(c.Request().Context(), in)
	if err != nil {
		return fail("Error al crear el cliente", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Cliente creado exitosamente", "cliente": created})
}

// List returns every client.
//
// @Summary      List clients
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Client
// @Failure      401  {object}  ErrorBody
// @Failure      403  {object}  ErrorBody
// @Router       /clientes [get]
func (h *ClientHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return fail("Error al obtener los clientes", err)
	}
	return c.JSON(http.StatusOK, list)
}

// @Summary      Get a client
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID"
// @Success      200  {object}  domain.Client
// @Failure      404  {object}  ErrorBody
// @Router       /clientes/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	client, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return fail("Error al obtener el cliente", err)
	}
	return c.JSON(http.StatusOK, client)
}

// Update applies the supplied fields to a client.
//
// @Summary      Update a client
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "ID"
// @Param        body  body      updateClientRequest  true  "Campos a modificar"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  ErrorBody
// @Router       /clientes/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req updateClientRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch, err := req.toDomain()
	if err != nil {
		return err
	}
	updated, err := h.service.Update(c.Request().Context(), id, patch)
	if err != nil {
		return fail("Error al actualizar el cliente", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Cliente actualizado exitosamente", "cliente": updated})
}

// @Summary      Delete a client
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  ErrorBody
// @Router       /clientes/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	deleted, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return fail("Error al eliminar el cliente", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Cliente eliminado exitosamente", "cliente": deleted})
}

// AdministratorHandler serves /administradores.
type AdministratorHandler struct {
	service ports.AdministratorService
}

func NewAdministratorHandler(service ports.AdministratorService) *AdministratorHandler {
	return &AdministratorHandler{service: service}
}

// @Summary      Create an administrator
// @Tags         administradores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAdministratorRequest  true  "Administrador"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  ErrorBody
// @Failure      409   {object}  ErrorBody
// @Router       /administradores [post]
func (h *AdministratorHandler) Create(c echo.Context) error {
	var req createAdministratorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	created, err := h.service.Register(c.Request().Context(), req.toDomain())
	if err != nil {
		return fail("Error al crear administrador", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Administrador creado", "administrador": created})
}

// @Summary      List administrators
// @Tags         administradores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Administrator
// @Router       /administradores [get]
func (h *AdministratorHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return fail("Error al obtener administradores", err)
	}
	return c.JSON(http.StatusOK, list)
}

// @Summary      Get an administrator
// @Tags         administradores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID"
// @Success      200  {object}  domain.Administrator
// @Failure      404  {object}  ErrorBody
// @Router       /administradores/{id} [get]
func (h *AdministratorHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	admin, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return fail("Error al obtener administrador", err)
	}
	return c.JSON(http.StatusOK, admin)
}

// @Summary      Update an administrator
// @Tags         administradores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "ID"
// @Param        body  body      updateAdministratorRequest  true  "Campos a modificar"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  ErrorBody
// @Router       /administradores/{id} [put]
func (h *AdministratorHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req updateAdministratorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	updated, err := h.service.Update(c.Request().Context(), id, req.toDomain())
	if err != nil {
		return fail("Error al actualizar administrador", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Administrador actualizado", "administrador": updated})
}

// @Summary      Delete an administrator
// @Tags         administradores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  ErrorBody
// @Router       /administradores/{id} [delete]
func (h *AdministratorHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	deleted, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return fail("Error al eliminar administrador", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Administrador eliminado", "administrador": deleted})
}
