package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and applies the
// idempotent SQL patches GORM cannot express. TranslateError is enabled so
// unique-constraint violations surface as gorm.ErrDuplicatedKey — the
// registry relies on that to report identifier races as conflicts.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL for constraints the schema depends
// on. Each statement is guarded so re-running on a patched DB is a no-op.
// Table creation itself is managed by SQL migrations, not AutoMigrate.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// The registry's identifier uniqueness: one row per
		// (estabelecimento, identificador) at all times.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'ponto_atendimentos')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_ponto_identificador') THEN
		    CREATE UNIQUE INDEX idx_ponto_identificador
		        ON ponto_atendimentos (estabelecimento_id, identificador);
		  END IF;
		END $$`,
		// Partial index for resolving the single open caixa per establishment.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'caixas')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_caixas_aberto') THEN
		    CREATE UNIQUE INDEX idx_caixas_aberto
		        ON caixas (estabelecimento_id)
		        WHERE aberto;
		  END IF;
		END $$`,
		// Sales recompute reads pedidos_historico by caixa.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'pedido_historicos')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedido_historicos_caixa') THEN
		    CREATE INDEX idx_pedido_historicos_caixa
		        ON pedido_historicos (caixa_id);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
