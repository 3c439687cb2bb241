package repository

import (
	"context"

	"restopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PedidoRepository interface {
	Create(ctx context.Context, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	// FindByIDForUpdate loads the pedido row under SELECT ... FOR UPDATE so
	// concurrent adjustment/settlement calls serialize on the row lock.
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error)
	FindAbertoPorPonto(ctx context.Context, pontoID uuid.UUID) (*model.Pedido, error)
	Save(ctx context.Context, p *model.Pedido) error
	SaveTx(tx *gorm.DB, p *model.Pedido) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	MaxCodigo(ctx context.Context, caixaID uuid.UUID) (int, error)

	ListItens(ctx context.Context, pedidoID uuid.UUID) ([]model.PedidoItem, error)
	ListItensTx(tx *gorm.DB, pedidoID uuid.UUID) ([]model.PedidoItem, error)
	FindItem(ctx context.Context, itemID uuid.UUID) (*model.PedidoItem, error)
	SaveItem(ctx context.Context, item *model.PedidoItem) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ReplaceItensTx(tx *gorm.DB, pedidoID uuid.UUID, itens []model.PedidoItem) error
	DeleteItensTx(tx *gorm.DB, pedidoID uuid.UUID) error

	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) Create(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Itens").Preload("Pagamentos").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) FindAbertoPorPonto(ctx context.Context, pontoID uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Itens").Preload("Pagamentos").
		Where("ponto_atendimento_id = ? AND situacao IN ('aberto', 'pago')", pontoID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) Save(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Omit("Itens", "Pagamentos").Save(p).Error
}

func (r *pedidoRepo) SaveTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Omit("Itens", "Pagamentos").Save(p).Error
}

func (r *pedidoRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Pedido{}, "id = ?", id).Error
}

// MaxCodigo returns the highest numeric display code already allocated on the
// caixa; 0 when none. The next code is max+1, zero-padded by the service.
func (r *pedidoRepo) MaxCodigo(ctx context.Context, caixaID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(codigo::int), 0) FROM (
		        SELECT codigo FROM pedidos WHERE caixa_id = ? AND codigo <> ''
		        UNION ALL
		        SELECT codigo FROM pedido_historicos WHERE caixa_id = ? AND codigo <> ''
		     ) c`, caixaID, caixaID).
		Scan(&max).Error
	return max, err
}

// ─── Itens ───────────────────────────────────────────────────────────────────

func (r *pedidoRepo) ListItens(ctx context.Context, pedidoID uuid.UUID) ([]model.PedidoItem, error) {
	var itens []model.PedidoItem
	err := r.db.WithContext(ctx).Where("pedido_id = ?", pedidoID).Find(&itens).Error
	return itens, err
}

func (r *pedidoRepo) ListItensTx(tx *gorm.DB, pedidoID uuid.UUID) ([]model.PedidoItem, error) {
	var itens []model.PedidoItem
	err := tx.Where("pedido_id = ?", pedidoID).Find(&itens).Error
	return itens, err
}

func (r *pedidoRepo) FindItem(ctx context.Context, itemID uuid.UUID) (*model.PedidoItem, error) {
	var item model.PedidoItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *pedidoRepo) SaveItem(ctx context.Context, item *model.PedidoItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *pedidoRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PedidoItem{}, "id = ?", itemID).Error
}

// ReplaceItensTx implements the bulk-replace contract: every existing item of
// the pedido is deleted, then the (already merged) incoming set is inserted.
func (r *pedidoRepo) ReplaceItensTx(tx *gorm.DB, pedidoID uuid.UUID, itens []model.PedidoItem) error {
	if err := tx.Delete(&model.PedidoItem{}, "pedido_id = ?", pedidoID).Error; err != nil {
		return err
	}
	if len(itens) == 0 {
		return nil
	}
	return tx.Create(&itens).Error
}

func (r *pedidoRepo) DeleteItensTx(tx *gorm.DB, pedidoID uuid.UUID) error {
	return tx.Delete(&model.PedidoItem{}, "pedido_id = ?", pedidoID).Error
}
