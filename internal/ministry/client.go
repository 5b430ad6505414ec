package ministry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"

	"github.com/incluempleo/vinculo/inclusion/report"
	"github.com/incluempleo/vinculo/pkg/logx"
)

// connectivityError is the generic message returned on a simulated refusal.
// Real failures from the ministry endpoint carry no detail either.
const connectivityError = "Error de conexión con el servidor del Ministerio. Intente nuevamente."

// SimulatedClient stands in for the Ministerio de Trabajo submission API.
// It is a simulation: delivery blocks for the configured latency and
// succeeds with the configured probability. No network traffic happens.
type SimulatedClient struct {
	latency     time.Duration
	successRate float64
	rng         *rand.Rand
}

// NewSimulatedClient creates the simulated ministry client. Defaults match
// the documented procedure: 1 s latency, 95 % acceptance.
func NewSimulatedClient(latency time.Duration, successRate float64) *SimulatedClient {
	if latency <= 0 {
		latency = time.Second
	}
	if successRate <= 0 || successRate > 1 {
		successRate = 0.95
	}
	return &SimulatedClient{
		latency:     latency,
		successRate: successRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Submit delivers a report. Blocking; honors context cancellation during
// the simulated latency window.
func (c *SimulatedClient) Submit(ctx context.Context, r *report.HiringReport) (*report.MinistryResult, error) {
	select {
	case <-time.After(c.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if c.rng.Float64() >= c.successRate {
		logx.Warnf("Ministry submission refused for contract %s", r.ContractNumber)
		return &report.MinistryResult{
			Success: false,
			Error:   connectivityError,
		}, nil
	}

	receipt := c.receiptNumber()
	validation := sha256.Sum256([]byte(receipt))

	return &report.MinistryResult{
		Success:       true,
		ReceiptNumber: receipt,
		Response: map[string]any{
			"status":          "received",
			"timestamp":       time.Now().Format(time.RFC3339),
			"ministry_id":     receipt,
			"validation_code": hex.EncodeToString(validation[:])[:16],
			"message":         "Informe recibido correctamente por el Ministerio de Trabajo",
		},
	}, nil
}

// receiptNumber builds a MIN-YYYYMMDD-NNNNN radicado
func (c *SimulatedClient) receiptNumber() string {
	return fmt.Sprintf("MIN-%s-%05d", time.Now().Format("20060102"), 10000+c.rng.Intn(90000))
}
