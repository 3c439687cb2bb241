package handler

import (
	"net/http"

	"restopos/internal/api"
	"restopos/internal/dto"
	"restopos/internal/middleware"
	"restopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre um novo caixa para o estabelecimento
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCaixaRequest true "Valor de abertura"
// @Success 201 {object} api.Envelope
// @Failure 409 {object} api.Envelope
// @Router /v1/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	estabelecimentoID, err := uuid.Parse(claims.EstabelecimentoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Err("estabelecimento inválido no token"))
		return
	}
	funcionarioID, _ := uuid.Parse(claims.FuncionarioID)

	resp, err := h.svc.Abrir(c.Request.Context(), estabelecimentoID, funcionarioID, req)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.OK("caixa aberto", resp))
}

// Fechar godoc
// @Summary Fecha o caixa registrando o valor contado e a diferença
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do caixa"
// @Param body body dto.FecharCaixaRequest true "Valor de fechamento"
// @Success 200 {object} api.Envelope
// @Router /v1/caixa/{id}/fechar [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.FecharCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	funcionarioID, _ := uuid.Parse(claims.FuncionarioID)

	resp, err := h.svc.Fechar(c.Request.Context(), id, funcionarioID, req)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("caixa fechado", resp))
}

// Status reports the most recent caixa: aberto, fechado or nenhum.
func (h *CaixaHandler) Status(c *gin.Context) {
	claims := middleware.GetClaims(c)
	estabelecimentoID, err := uuid.Parse(claims.EstabelecimentoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Err("estabelecimento inválido no token"))
		return
	}
	resp, err := h.svc.Status(c.Request.Context(), estabelecimentoID)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("status do caixa", resp))
}

func (h *CaixaHandler) RegistrarMovimentacao(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.MovimentacaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	funcionarioID, _ := uuid.Parse(claims.FuncionarioID)

	resp, err := h.svc.RegistrarMovimentacao(c.Request.Context(), id, funcionarioID, req)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.OK("movimentação registrada", resp))
}

func (h *CaixaHandler) ListarMovimentacoes(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarMovimentacoes(c.Request.Context(), id)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("movimentações do caixa", resp))
}

// RecalcularVendas re-derives the caixa sales total from the archive on
// demand; the worker runs the same recompute asynchronously.
func (h *CaixaHandler) RecalcularVendas(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.RecalcularVendas(c.Request.Context(), id)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("vendas recalculadas", resp))
}
