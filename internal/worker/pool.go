package worker

import (
	"context"
	"encoding/json"
	"time"

	"restopos/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CaixaRecalculador is implemented by service.CaixaService; the pool only
// needs the recompute entry point.
type CaixaRecalculador interface {
	RecalcularVendas(ctx context.Context, caixaID uuid.UUID) (*dto.CaixaResponse, error)
}

// Handlers bundles the dependencies the pool needs to process each job type.
type Handlers struct {
	Caixa CaixaRecalculador
}

// StartWorkerPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *Handlers, id int) {
	queues := []string{QueueRecalculoVendas}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case "recalculo_vendas":
		var payload RecalculoVendasPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, "payload inválido: "+err.Error(), 1)
			return
		}
		caixaID, err := uuid.Parse(payload.CaixaID)
		if err != nil {
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, "caixa_id inválido", 1)
			return
		}
		if _, err := handlers.Caixa.RecalcularVendas(ctx, caixaID); err != nil {
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), 1)
			return
		}
		log.Info().Str("caixa_id", payload.CaixaID).Msg("vendas do caixa recalculadas")
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
	}
}
