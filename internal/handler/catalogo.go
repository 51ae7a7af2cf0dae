package handler

import (
	"net/http"

	"huevopos/internal/dto"
	"huevopos/internal/model"

	"github.com/gin-gonic/gin"
)

// Catalogo exposes the fixed UI catalogs: accepted bill denominations,
// sale tier types and expense suggestions.
func Catalogo(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CatalogoResponse{
		Billetes:   model.Billetes,
		TiposVenta: []string{model.TipoCarton, model.TipoMedioCarton, model.TipoCaja},
		TiposGasto: model.TiposGasto,
	})
}
