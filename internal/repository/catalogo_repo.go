package repository

import (
	"context"

	"restopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogoRepository reads catalog data owned by external CRUD collaborators:
// products, payment methods and the attendance configuration. The core never
// writes through it.
type CatalogoRepository interface {
	FindProduto(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	FindFormaPagamento(ctx context.Context, id uuid.UUID) (*model.FormaPagamento, error)
	ListFormasPagamento(ctx context.Context, estabelecimentoID uuid.UUID) ([]model.FormaPagamento, error)
	FindConfigAtendimento(ctx context.Context, estabelecimentoID uuid.UUID) (*model.ConfigAtendimento, error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) FindProduto(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *catalogoRepo) FindFormaPagamento(ctx context.Context, id uuid.UUID) (*model.FormaPagamento, error) {
	var f model.FormaPagamento
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *catalogoRepo) ListFormasPagamento(ctx context.Context, estabelecimentoID uuid.UUID) ([]model.FormaPagamento, error) {
	var formas []model.FormaPagamento
	err := r.db.WithContext(ctx).
		Where("estabelecimento_id = ? AND ativo", estabelecimentoID).
		Order("nome ASC").
		Find(&formas).Error
	return formas, err
}

func (r *catalogoRepo) FindConfigAtendimento(ctx context.Context, estabelecimentoID uuid.UUID) (*model.ConfigAtendimento, error) {
	var cfg model.ConfigAtendimento
	err := r.db.WithContext(ctx).
		Where("estabelecimento_id = ?", estabelecimentoID).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
