package handler

import (
	"net/http"

	"huevopos/internal/apierror"
	"huevopos/internal/dto"
	"huevopos/internal/service"
	"huevopos/internal/worker"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct {
	svc        service.VentaService
	dispatcher *worker.Dispatcher
}

func NewVentasHandler(svc service.VentaService, dispatcher *worker.Dispatcher) *VentasHandler {
	return &VentasHandler{svc: svc, dispatcher: dispatcher}
}

// Crear creates a new sale session. The name is optional — when omitted
// the next sequential "Venta #NN" name is assigned.
func (h *VentasHandler) Crear(c *gin.Context) {
	var req dto.CrearVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	venta, err := h.svc.Crear(c.Request.Context(), req.Nombre)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, venta)
}

func (h *VentasHandler) Listar(c *gin.Context) {
	ventas, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ventas)
}

func (h *VentasHandler) Obtener(c *gin.Context) {
	venta, err := h.svc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, venta)
}

// Actual returns the currently selected sale session.
func (h *VentasHandler) Actual(c *gin.Context) {
	venta, err := h.svc.Actual(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, venta)
}

// Seleccionar switches the current sale session.
func (h *VentasHandler) Seleccionar(c *gin.Context) {
	var req dto.SeleccionarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Seleccionar(c.Request.Context(), req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegistrarTransaccion appends a sale transaction to the session ledger.
// Unit price is derived server-side from the stored carton price; a tender
// below the computed total is rejected and nothing is appended.
func (h *VentasHandler) RegistrarTransaccion(c *gin.Context) {
	var req dto.RegistrarTransaccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	venta, err := h.svc.RegistrarTransaccion(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, venta)
}

// RegistrarGasto appends an expense to the session ledger.
func (h *VentasHandler) RegistrarGasto(c *gin.Context) {
	var req dto.RegistrarGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	venta, err := h.svc.RegistrarGasto(c.Request.Context(), c.Param("id"), req.Monto, req.Descripcion)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, venta)
}

// Balance returns the derived totals for a session. Net funds are only
// revealed behind an explicit confirm — mirrors the double-check the
// operator goes through before money is shown on screen.
func (h *VentasHandler) Balance(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusPreconditionRequired, apierror.New("Confirmacion requerida: agregue confirm=true"))
		return
	}
	balance, err := h.svc.Balance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// Reporte returns the full session report: both ledgers (transactions
// newest first) plus derived totals.
func (h *VentasHandler) Reporte(c *gin.Context) {
	reporte, err := h.svc.Reporte(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reporte)
}

// ExportarReporte enqueues an async PDF export for the session, optionally
// emailed to the operator when an address is provided.
func (h *VentasHandler) ExportarReporte(c *gin.Context) {
	var req dto.ExportarReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ventaID := c.Param("id")

	// Validate the session exists before enqueueing
	if _, err := h.svc.Obtener(c.Request.Context(), ventaID); err != nil {
		respondError(c, err)
		return
	}

	payload := worker.ReporteJobPayload{VentaID: ventaID}
	if req.Email != "" {
		payload.Email = &req.Email
	}
	if err := h.dispatcher.EnqueueReporte(c.Request.Context(), payload); err != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("No se pudo encolar el reporte"))
		return
	}

	c.JSON(http.StatusAccepted, dto.ExportarReporteResponse{
		VentaID:  ventaID,
		Encolado: true,
		EmailTo:  req.Email,
	})
}
