package handler

import (
	"net/http"

	"restopos/internal/api"
	"restopos/internal/service"

	"github.com/gin-gonic/gin"
)

type FinalizacaoHandler struct{ svc service.FinalizacaoService }

func NewFinalizacaoHandler(svc service.FinalizacaoService) *FinalizacaoHandler {
	return &FinalizacaoHandler{svc: svc}
}

// Finalizar godoc
// @Summary Encerra o pedido: arquiva no histórico e libera o ponto
// @Tags pedidos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do pedido"
// @Success 200 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Router /v1/pedidos/{id}/finalizar [post]
func (h *FinalizacaoHandler) Finalizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Finalizar(c.Request.Context(), id)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("pedido finalizado", resp))
}
