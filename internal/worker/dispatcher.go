package worker

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const QueueRecalculoVendas = "jobs:caixa:recalculo-vendas"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RecalculoVendasPayload identifies the caixa whose sales total must be
// re-derived from the historical tables.
type RecalculoVendasPayload struct {
	CaixaID string `json:"caixa_id"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueRecalculoVendas schedules a caixa sales recompute. Called after a
// finalization commits; the archive never waits on it.
func (d *Dispatcher) EnqueueRecalculoVendas(ctx context.Context, caixaID uuid.UUID) error {
	return d.enqueue(ctx, QueueRecalculoVendas, "recalculo_vendas", RecalculoVendasPayload{
		CaixaID: caixaID.String(),
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}
