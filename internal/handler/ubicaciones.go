package handler

import (
	"net/http"

	"huevopos/internal/dto"
	"huevopos/internal/service"

	"github.com/gin-gonic/gin"
)

type UbicacionesHandler struct{ svc service.UbicacionService }

func NewUbicacionesHandler(svc service.UbicacionService) *UbicacionesHandler {
	return &UbicacionesHandler{svc: svc}
}

func (h *UbicacionesHandler) Listar(c *gin.Context) {
	ubicaciones, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	actual, err := h.svc.Actual(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UbicacionesResponse{Ubicaciones: ubicaciones, Actual: actual})
}

// Agregar registers a new location. Duplicates and blanks are silently
// ignored — the full list is returned either way.
func (h *UbicacionesHandler) Agregar(c *gin.Context) {
	var req dto.AgregarUbicacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ubicaciones, err := h.svc.Agregar(c.Request.Context(), req.Nombre)
	if err != nil {
		respondError(c, err)
		return
	}
	actual, err := h.svc.Actual(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.UbicacionesResponse{Ubicaciones: ubicaciones, Actual: actual})
}

// Seleccionar switches the current location for new transactions.
func (h *UbicacionesHandler) Seleccionar(c *gin.Context) {
	var req dto.SeleccionarUbicacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Seleccionar(c.Request.Context(), req.Nombre); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
