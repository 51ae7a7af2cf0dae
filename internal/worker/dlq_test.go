package worker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntradaDLQConservaLaVenta(t *testing.T) {
	payload, err := json.Marshal(EmailJobPayload{
		VentaID: "3",
		ToEmail: "operador@ejemplo.test",
		Subject: "Reporte de Venta #03",
	})
	require.NoError(t, err)

	entry := nuevaEntradaDLQ(QueueEmail, "email", "3", payload, "max attempts (3) exceeded: smtp down", 3)

	assert.Equal(t, QueueEmail, entry.OriginalQueue)
	assert.Equal(t, "3", entry.VentaID)
	assert.Equal(t, 3, entry.Attempts)

	// FailedAt is RFC 3339 UTC so entries sort and grep cleanly
	failedAt, err := time.Parse(time.RFC3339, entry.FailedAt)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, failedAt.Location())

	// The original payload survives untouched for a manual re-enqueue
	var recuperado EmailJobPayload
	require.NoError(t, json.Unmarshal(entry.Payload, &recuperado))
	assert.Equal(t, "operador@ejemplo.test", recuperado.ToEmail)
	assert.Equal(t, "3", recuperado.VentaID)
}
