package infra

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huevopos/internal/dto"
	"huevopos/internal/model"
)

func TestRecortarNoParteRunas(t *testing.T) {
	assert.Equal(t, "Bodega", recortar("Bodega", 24))

	// Truncation counts runes, not bytes: the cut never lands mid-character.
	largo := strings.Repeat("Ñuñoa ", 10)
	corto := recortar(largo, 24)
	assert.Equal(t, 24, len([]rune(corto)))
	assert.Equal(t, string([]rune(largo)[:23])+"…", corto)

	exacto := strings.Repeat("ñ", 24)
	assert.Equal(t, exacto, recortar(exacto, 24))
}

func TestGenerateReportePDFConTextoAcentuado(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	reporte := &dto.ReporteResponse{
		VentaID:   "1",
		Nombre:    "Venta #01 (Ñuñoa)",
		CreatedAt: base,
		Transacciones: []model.Transaccion{
			{
				ID:             "100",
				Tipo:           model.TipoCarton,
				Cantidad:       3,
				PrecioUnitario: decimal.NewFromInt(4),
				Total:          decimal.NewFromInt(12),
				TotalRecibido:  decimal.NewFromInt(20),
				Cambio:         decimal.NewFromInt(8),
				Ubicacion:      strings.Repeat("Ñuñoa ", 10),
				Timestamp:      base,
			},
		},
		Gastos: []model.Gasto{
			{
				ID:          "200",
				Monto:       decimal.NewFromFloat(15.50),
				Descripcion: "Gasolina para camión " + strings.Repeat("ñ", 60),
				Timestamp:   base,
			},
		},
		TotalVentas: decimal.NewFromInt(12),
		TotalGastos: decimal.NewFromFloat(15.50),
		FondosNetos: decimal.NewFromFloat(-3.50),
	}

	path, err := GenerateReportePDF(reporte, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reporte_venta_1.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
