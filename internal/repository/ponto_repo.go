package repository

import (
	"context"

	"restopos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PontoComTotal is a ponto row joined with its open pedido's total, when one
// exists. Used by the list endpoint to override the display status.
type PontoComTotal struct {
	model.PontoAtendimento
	ValorTotal *decimal.Decimal
}

type PontoRepository interface {
	Create(ctx context.Context, p *model.PontoAtendimento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PontoAtendimento, error)
	FindByIdentificador(ctx context.Context, estabelecimentoID uuid.UUID, identificador string) (*model.PontoAtendimento, error)
	Save(ctx context.Context, p *model.PontoAtendimento) error
	SaveTx(tx *gorm.DB, p *model.PontoAtendimento) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByEstabelecimento(ctx context.Context, estabelecimentoID uuid.UUID) ([]model.PontoAtendimento, error)
	ListComTotais(ctx context.Context, estabelecimentoID uuid.UUID) ([]PontoComTotal, error)
	CreateTx(tx *gorm.DB, p *model.PontoAtendimento) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type pontoRepo struct{ db *gorm.DB }

func NewPontoRepository(db *gorm.DB) PontoRepository { return &pontoRepo{db: db} }

func (r *pontoRepo) DB() *gorm.DB { return r.db }

func (r *pontoRepo) Create(ctx context.Context, p *model.PontoAtendimento) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pontoRepo) CreateTx(tx *gorm.DB, p *model.PontoAtendimento) error {
	return tx.Create(p).Error
}

func (r *pontoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PontoAtendimento, error) {
	var p model.PontoAtendimento
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pontoRepo) FindByIdentificador(ctx context.Context, estabelecimentoID uuid.UUID, identificador string) (*model.PontoAtendimento, error) {
	var p model.PontoAtendimento
	err := r.db.WithContext(ctx).
		Where("estabelecimento_id = ? AND identificador = ?", estabelecimentoID, identificador).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pontoRepo) Save(ctx context.Context, p *model.PontoAtendimento) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *pontoRepo) SaveTx(tx *gorm.DB, p *model.PontoAtendimento) error {
	return tx.Save(p).Error
}

func (r *pontoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PontoAtendimento{}, "id = ?", id).Error
}

func (r *pontoRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.PontoAtendimento{}, "id = ?", id).Error
}

func (r *pontoRepo) ListByEstabelecimento(ctx context.Context, estabelecimentoID uuid.UUID) ([]model.PontoAtendimento, error) {
	var pontos []model.PontoAtendimento
	err := r.db.WithContext(ctx).
		Where("estabelecimento_id = ?", estabelecimentoID).
		Order("identificador ASC").
		Find(&pontos).Error
	return pontos, err
}

func (r *pontoRepo) ListComTotais(ctx context.Context, estabelecimentoID uuid.UUID) ([]PontoComTotal, error) {
	var rows []PontoComTotal
	err := r.db.WithContext(ctx).
		Table("ponto_atendimentos AS p").
		Select("p.*, ped.total AS valor_total").
		Joins("LEFT JOIN pedidos ped ON ped.ponto_atendimento_id = p.id AND ped.situacao IN ('aberto', 'pago')").
		Where("p.estabelecimento_id = ?", estabelecimentoID).
		Order("p.identificador ASC").
		Scan(&rows).Error
	return rows, err
}
