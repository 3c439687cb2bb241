package service

// In-memory repository stubs. Tx-variant methods accept the nil *gorm.DB that
// runTx passes when no database is wired, so services run unchanged.

import (
	"context"
	"sort"
	"strconv"
	"time"

	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── PontoRepository ──────────────────────────────────────────────────────────

type stubPontoRepo struct {
	pontos map[uuid.UUID]*model.PontoAtendimento
	totais map[uuid.UUID]*decimal.Decimal // pontoID → open pedido total
}

func newStubPontoRepo() *stubPontoRepo {
	return &stubPontoRepo{
		pontos: make(map[uuid.UUID]*model.PontoAtendimento),
		totais: make(map[uuid.UUID]*decimal.Decimal),
	}
}

func (r *stubPontoRepo) DB() *gorm.DB { return nil }

func (r *stubPontoRepo) Create(_ context.Context, p *model.PontoAtendimento) error {
	for _, existente := range r.pontos {
		if existente.EstabelecimentoID == p.EstabelecimentoID && existente.Identificador == p.Identificador {
			return gorm.ErrDuplicatedKey
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.pontos[p.ID] = p
	return nil
}

func (r *stubPontoRepo) CreateTx(_ *gorm.DB, p *model.PontoAtendimento) error {
	return r.Create(context.Background(), p)
}

func (r *stubPontoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PontoAtendimento, error) {
	p, ok := r.pontos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPontoRepo) FindByIdentificador(_ context.Context, estabelecimentoID uuid.UUID, identificador string) (*model.PontoAtendimento, error) {
	for _, p := range r.pontos {
		if p.EstabelecimentoID == estabelecimentoID && p.Identificador == identificador {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPontoRepo) Save(_ context.Context, p *model.PontoAtendimento) error {
	r.pontos[p.ID] = p
	return nil
}

func (r *stubPontoRepo) SaveTx(_ *gorm.DB, p *model.PontoAtendimento) error {
	r.pontos[p.ID] = p
	return nil
}

func (r *stubPontoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.pontos, id)
	return nil
}

func (r *stubPontoRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.pontos, id)
	return nil
}

func (r *stubPontoRepo) ListByEstabelecimento(_ context.Context, estabelecimentoID uuid.UUID) ([]model.PontoAtendimento, error) {
	var pontos []model.PontoAtendimento
	for _, p := range r.pontos {
		if p.EstabelecimentoID == estabelecimentoID {
			pontos = append(pontos, *p)
		}
	}
	sort.Slice(pontos, func(i, j int) bool { return pontos[i].Identificador < pontos[j].Identificador })
	return pontos, nil
}

func (r *stubPontoRepo) ListComTotais(_ context.Context, estabelecimentoID uuid.UUID) ([]repository.PontoComTotal, error) {
	var rows []repository.PontoComTotal
	for _, p := range r.pontos {
		if p.EstabelecimentoID == estabelecimentoID {
			rows = append(rows, repository.PontoComTotal{PontoAtendimento: *p, ValorTotal: r.totais[p.ID]})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Identificador < rows[j].Identificador })
	return rows, nil
}

// ── PedidoRepository ─────────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
	itens   map[uuid.UUID]*model.PedidoItem
	// codigosArquivados feeds MaxCodigo with codes already consumed by
	// archived pedidos of the caixa.
	codigosArquivados map[uuid.UUID][]string
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{
		pedidos:           make(map[uuid.UUID]*model.Pedido),
		itens:             make(map[uuid.UUID]*model.PedidoItem),
		codigosArquivados: make(map[uuid.UUID][]string),
	}
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

func (r *stubPedidoRepo) Create(_ context.Context, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) FindAbertoPorPonto(_ context.Context, pontoID uuid.UUID) (*model.Pedido, error) {
	for _, p := range r.pedidos {
		if p.PontoAtendimentoID == pontoID && (p.Situacao == model.SituacaoAberto || p.Situacao == model.SituacaoPago) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPedidoRepo) Save(_ context.Context, p *model.Pedido) error {
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) SaveTx(_ *gorm.DB, p *model.Pedido) error {
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.pedidos, id)
	return nil
}

func (r *stubPedidoRepo) MaxCodigo(_ context.Context, caixaID uuid.UUID) (int, error) {
	max := 0
	considerar := func(codigo string) {
		if codigo == "" {
			return
		}
		if n, err := strconv.Atoi(codigo); err == nil && n > max {
			max = n
		}
	}
	for _, p := range r.pedidos {
		if p.CaixaID == caixaID {
			considerar(p.Codigo)
		}
	}
	for _, codigo := range r.codigosArquivados[caixaID] {
		considerar(codigo)
	}
	return max, nil
}

func (r *stubPedidoRepo) ListItens(_ context.Context, pedidoID uuid.UUID) ([]model.PedidoItem, error) {
	var itens []model.PedidoItem
	for _, item := range r.itens {
		if item.PedidoID == pedidoID {
			itens = append(itens, *item)
		}
	}
	sort.Slice(itens, func(i, j int) bool { return itens[i].ProdutoID.String() < itens[j].ProdutoID.String() })
	return itens, nil
}

func (r *stubPedidoRepo) ListItensTx(_ *gorm.DB, pedidoID uuid.UUID) ([]model.PedidoItem, error) {
	return r.ListItens(context.Background(), pedidoID)
}

func (r *stubPedidoRepo) FindItem(_ context.Context, itemID uuid.UUID) (*model.PedidoItem, error) {
	item, ok := r.itens[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *stubPedidoRepo) SaveItem(_ context.Context, item *model.PedidoItem) error {
	r.itens[item.ID] = item
	return nil
}

func (r *stubPedidoRepo) DeleteItem(_ context.Context, itemID uuid.UUID) error {
	delete(r.itens, itemID)
	return nil
}

func (r *stubPedidoRepo) ReplaceItensTx(_ *gorm.DB, pedidoID uuid.UUID, itens []model.PedidoItem) error {
	for id, item := range r.itens {
		if item.PedidoID == pedidoID {
			delete(r.itens, id)
		}
	}
	for i := range itens {
		if itens[i].ID == uuid.Nil {
			itens[i].ID = uuid.New()
		}
		copia := itens[i]
		r.itens[copia.ID] = &copia
	}
	return nil
}

func (r *stubPedidoRepo) DeleteItensTx(_ *gorm.DB, pedidoID uuid.UUID) error {
	for id, item := range r.itens {
		if item.PedidoID == pedidoID {
			delete(r.itens, id)
		}
	}
	return nil
}

// ── PagamentoRepository ──────────────────────────────────────────────────────

type stubPagamentoRepo struct {
	pagamentos map[uuid.UUID]*model.Pagamento
	seq        int
}

func newStubPagamentoRepo() *stubPagamentoRepo {
	return &stubPagamentoRepo{pagamentos: make(map[uuid.UUID]*model.Pagamento)}
}

func (r *stubPagamentoRepo) DB() *gorm.DB { return nil }

func (r *stubPagamentoRepo) CreateTx(_ *gorm.DB, p *model.Pagamento) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.seq++
	p.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	r.pagamentos[p.ID] = p
	return nil
}

func (r *stubPagamentoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pagamento, error) {
	p, ok := r.pagamentos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPagamentoRepo) ListByPedido(_ context.Context, pedidoID uuid.UUID) ([]model.Pagamento, error) {
	var pagos []model.Pagamento
	for _, p := range r.pagamentos {
		if p.PedidoID == pedidoID {
			pagos = append(pagos, *p)
		}
	}
	sort.Slice(pagos, func(i, j int) bool { return pagos[i].CreatedAt.Before(pagos[j].CreatedAt) })
	return pagos, nil
}

func (r *stubPagamentoRepo) ListByPedidoTx(_ *gorm.DB, pedidoID uuid.UUID) ([]model.Pagamento, error) {
	return r.ListByPedido(context.Background(), pedidoID)
}

func (r *stubPagamentoRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.pagamentos, id)
	return nil
}

func (r *stubPagamentoRepo) DeleteByPedidoTx(_ *gorm.DB, pedidoID uuid.UUID) error {
	for id, p := range r.pagamentos {
		if p.PedidoID == pedidoID {
			delete(r.pagamentos, id)
		}
	}
	return nil
}

func (r *stubPagamentoRepo) SumByPedidoTx(_ *gorm.DB, pedidoID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.pagamentos {
		if p.PedidoID == pedidoID {
			sum = sum.Add(p.Valor)
		}
	}
	return sum, nil
}

// ── CaixaRepository ──────────────────────────────────────────────────────────

type stubCaixaRepo struct {
	caixas        map[uuid.UUID]*model.Caixa
	movimentacoes []model.MovimentacaoCaixa
	// vendas mirrors SUM(valor_total) over the archived pedidos of each caixa.
	vendas map[uuid.UUID]decimal.Decimal
}

func newStubCaixaRepo() *stubCaixaRepo {
	return &stubCaixaRepo{
		caixas: make(map[uuid.UUID]*model.Caixa),
		vendas: make(map[uuid.UUID]decimal.Decimal),
	}
}

func (r *stubCaixaRepo) DB() *gorm.DB { return nil }

func (r *stubCaixaRepo) Create(_ context.Context, c *model.Caixa) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.caixas[c.ID] = c
	return nil
}

func (r *stubCaixaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caixa, error) {
	c, ok := r.caixas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCaixaRepo) FindAberto(_ context.Context, estabelecimentoID uuid.UUID) (*model.Caixa, error) {
	for _, c := range r.caixas {
		if c.EstabelecimentoID == estabelecimentoID && c.Aberto {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCaixaRepo) FindMaisRecente(_ context.Context, estabelecimentoID uuid.UUID) (*model.Caixa, error) {
	var recente *model.Caixa
	for _, c := range r.caixas {
		if c.EstabelecimentoID != estabelecimentoID {
			continue
		}
		if recente == nil || c.AbertoEm.After(recente.AbertoEm) {
			recente = c
		}
	}
	if recente == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return recente, nil
}

func (r *stubCaixaRepo) Save(_ context.Context, c *model.Caixa) error {
	r.caixas[c.ID] = c
	return nil
}

func (r *stubCaixaRepo) SaveTx(_ *gorm.DB, c *model.Caixa) error {
	r.caixas[c.ID] = c
	return nil
}

func (r *stubCaixaRepo) CreateMovimentacaoTx(_ *gorm.DB, m *model.MovimentacaoCaixa) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimentacoes = append(r.movimentacoes, *m)
	return nil
}

func (r *stubCaixaRepo) ListMovimentacoes(_ context.Context, caixaID uuid.UUID) ([]model.MovimentacaoCaixa, error) {
	var movs []model.MovimentacaoCaixa
	for _, m := range r.movimentacoes {
		if m.CaixaID == caixaID {
			movs = append(movs, m)
		}
	}
	return movs, nil
}

func (r *stubCaixaRepo) SumVendasHistorico(_ context.Context, caixaID uuid.UUID) (decimal.Decimal, error) {
	return r.vendas[caixaID], nil
}

// ── HistoricoRepository ──────────────────────────────────────────────────────

type stubHistoricoRepo struct {
	pedidos    map[uuid.UUID]*model.PedidoHistorico
	itens      []model.PedidoItemHistorico
	pagamentos []model.PagamentoHistorico

	// when set, the corresponding insert fails
	falhaItens      error
	falhaPagamentos error
}

func newStubHistoricoRepo() *stubHistoricoRepo {
	return &stubHistoricoRepo{pedidos: make(map[uuid.UUID]*model.PedidoHistorico)}
}

func (r *stubHistoricoRepo) CreatePedidoTx(_ *gorm.DB, h *model.PedidoHistorico) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	h.CreatedAt = time.Now()
	r.pedidos[h.ID] = h
	return nil
}

func (r *stubHistoricoRepo) CreateItensTx(_ *gorm.DB, itens []model.PedidoItemHistorico) error {
	if r.falhaItens != nil {
		return r.falhaItens
	}
	r.itens = append(r.itens, itens...)
	return nil
}

func (r *stubHistoricoRepo) CreatePagamentosTx(_ *gorm.DB, pagos []model.PagamentoHistorico) error {
	if r.falhaPagamentos != nil {
		return r.falhaPagamentos
	}
	r.pagamentos = append(r.pagamentos, pagos...)
	return nil
}

func (r *stubHistoricoRepo) FindPedido(_ context.Context, id uuid.UUID) (*model.PedidoHistorico, error) {
	h, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return h, nil
}

func (r *stubHistoricoRepo) ListByCaixa(_ context.Context, caixaID uuid.UUID) ([]model.PedidoHistorico, error) {
	var hs []model.PedidoHistorico
	for _, h := range r.pedidos {
		if h.CaixaID == caixaID {
			hs = append(hs, *h)
		}
	}
	return hs, nil
}

// ── CatalogoRepository ───────────────────────────────────────────────────────

type stubCatalogoRepo struct {
	produtos map[uuid.UUID]*model.Produto
	formas   map[uuid.UUID]*model.FormaPagamento
	config   *model.ConfigAtendimento
}

func newStubCatalogoRepo() *stubCatalogoRepo {
	return &stubCatalogoRepo{
		produtos: make(map[uuid.UUID]*model.Produto),
		formas:   make(map[uuid.UUID]*model.FormaPagamento),
	}
}

func (r *stubCatalogoRepo) FindProduto(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubCatalogoRepo) FindFormaPagamento(_ context.Context, id uuid.UUID) (*model.FormaPagamento, error) {
	f, ok := r.formas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubCatalogoRepo) ListFormasPagamento(_ context.Context, estabelecimentoID uuid.UUID) ([]model.FormaPagamento, error) {
	var formas []model.FormaPagamento
	for _, f := range r.formas {
		if f.EstabelecimentoID == estabelecimentoID && f.Ativo {
			formas = append(formas, *f)
		}
	}
	sort.Slice(formas, func(i, j int) bool { return formas[i].Nome < formas[j].Nome })
	return formas, nil
}

func (r *stubCatalogoRepo) FindConfigAtendimento(_ context.Context, estabelecimentoID uuid.UUID) (*model.ConfigAtendimento, error) {
	if r.config == nil || r.config.EstabelecimentoID != estabelecimentoID {
		return nil, gorm.ErrRecordNotFound
	}
	return r.config, nil
}

// novaForma registers an active payment method and returns its id.
func (r *stubCatalogoRepo) novaForma(estabelecimentoID uuid.UUID, nome string) uuid.UUID {
	id := uuid.New()
	r.formas[id] = &model.FormaPagamento{ID: id, EstabelecimentoID: estabelecimentoID, Nome: nome, Ativo: true}
	return id
}
