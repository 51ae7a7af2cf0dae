package handler

import (
	"net/http"

	"huevopos/internal/dto"
	"huevopos/internal/service"

	"github.com/gin-gonic/gin"
)

type PrecioHandler struct{ svc service.PrecioService }

func NewPrecioHandler(svc service.PrecioService) *PrecioHandler {
	return &PrecioHandler{svc: svc}
}

// Obtener returns the current carton price (default when never saved).
func (h *PrecioHandler) Obtener(c *gin.Context) {
	precio, err := h.svc.Obtener(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PrecioResponse{Precio: precio})
}

// Guardar persists a new carton price. Tier prices (half carton, box)
// derive from it on every transaction — they are never stored.
func (h *PrecioHandler) Guardar(c *gin.Context) {
	var req dto.GuardarPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Guardar(c.Request.Context(), req.Precio); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PrecioResponse{Precio: req.Precio})
}
