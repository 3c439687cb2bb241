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

type PedidoHandler struct{ svc service.PedidoService }

func NewPedidoHandler(svc service.PedidoService) *PedidoHandler { return &PedidoHandler{svc: svc} }

// Garantir godoc
// @Summary Retorna o pedido aberto do ponto, criando um se não existir
// @Tags pedidos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GarantirPedidoRequest true "Ponto de atendimento"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Router /v1/pedidos/garantir [post]
func (h *PedidoHandler) Garantir(c *gin.Context) {
	var req dto.GarantirPedidoRequest
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

	resp, err := h.svc.Garantir(c.Request.Context(), estabelecimentoID, funcionarioID, req)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("pedido garantido", resp))
}

func (h *PedidoHandler) BuscarPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.BuscarPorID(c.Request.Context(), id)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("pedido", resp))
}

func (h *PedidoHandler) BuscarPorPonto(c *gin.Context) {
	pontoID, ok := parseID(c, "pontoId")
	if !ok {
		return
	}
	resp, err := h.svc.BuscarPorPonto(c.Request.Context(), pontoID)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("pedido", resp))
}

func (h *PedidoHandler) Atualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("pedido atualizado", resp))
}

// Excluir removes the pedido with its items and payments and frees the point.
func (h *PedidoHandler) Excluir(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("pedido removido", nil))
}

// ── Itens ─────────────────────────────────────────────────────────────────────

// AplicarCarrinho godoc
// @Summary Substitui todos os itens do pedido pelo carrinho enviado
// @Tags pedidos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do pedido"
// @Param body body dto.AplicarCarrinhoRequest true "Carrinho completo"
// @Success 200 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Router /v1/pedidos/{id}/itens [put]
func (h *PedidoHandler) AplicarCarrinho(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AplicarCarrinhoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AplicarCarrinho(c.Request.Context(), id, req)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("carrinho aplicado", resp))
}

func (h *PedidoHandler) ListarItens(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarItens(c.Request.Context(), id)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("itens do pedido", resp))
}

func (h *PedidoHandler) LimparItens(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.LimparItens(c.Request.Context(), id); err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("itens removidos", nil))
}

func (h *PedidoHandler) AtualizarItem(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarItem(c.Request.Context(), itemID, req)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("item atualizado", resp))
}

func (h *PedidoHandler) ExcluirItem(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.ExcluirItem(c.Request.Context(), itemID); err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("item removido", nil))
}
