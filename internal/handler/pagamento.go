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

type PagamentoHandler struct{ svc service.PagamentoService }

func NewPagamentoHandler(svc service.PagamentoService) *PagamentoHandler {
	return &PagamentoHandler{svc: svc}
}

// Alocar godoc
// @Summary Aloca um pagamento avulso ao pedido
// @Tags pagamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do pedido"
// @Param body body dto.AlocarPagamentoRequest true "Forma e valor"
// @Success 200 {object} api.Envelope
// @Failure 409 {object} api.Envelope
// @Router /v1/pedidos/{id}/pagamentos [post]
func (h *PagamentoHandler) Alocar(c *gin.Context) {
	pedidoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AlocarPagamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	estabelecimentoID, err := uuid.Parse(claims.EstabelecimentoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Err("estabelecimento inválido no token"))
		return
	}
	resp, err := h.svc.Alocar(c.Request.Context(), estabelecimentoID, pedidoID, req)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("pagamento alocado", resp))
}

// AlocarLote godoc
// @Summary Substitui as alocações do pedido pelo lote enviado, com troco
// @Tags pagamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do pedido"
// @Param body body dto.AlocarLoteRequest true "Alocações"
// @Success 200 {object} api.Envelope
// @Router /v1/pedidos/{id}/pagamentos/lote [post]
func (h *PagamentoHandler) AlocarLote(c *gin.Context) {
	pedidoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AlocarLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	estabelecimentoID, err := uuid.Parse(claims.EstabelecimentoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Err("estabelecimento inválido no token"))
		return
	}
	resp, err := h.svc.AlocarLote(c.Request.Context(), estabelecimentoID, pedidoID, req)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("pagamentos alocados", resp))
}

func (h *PagamentoHandler) Desalocar(c *gin.Context) {
	pedidoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	pagamentoID, err := uuid.Parse(c.Param("pagamentoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Err("ID inválido"))
		return
	}
	resp, err := h.svc.Desalocar(c.Request.Context(), pedidoID, pagamentoID)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("pagamento desalocado", resp))
}

func (h *PagamentoHandler) Resumo(c *gin.Context) {
	pedidoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Resumo(c.Request.Context(), pedidoID)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("resumo de pagamento", resp))
}

func (h *PagamentoHandler) Listar(c *gin.Context) {
	pedidoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), pedidoID)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("pagamentos do pedido", resp))
}

func (h *PagamentoHandler) ListarFormas(c *gin.Context) {
	claims := middleware.GetClaims(c)
	estabelecimentoID, err := uuid.Parse(claims.EstabelecimentoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Err("estabelecimento inválido no token"))
		return
	}
	resp, err := h.svc.ListarFormas(c.Request.Context(), estabelecimentoID)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("formas de pagamento", resp))
}
