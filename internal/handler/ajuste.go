package handler

import (
	"net/http"

	"restopos/internal/api"
	"restopos/internal/dto"
	"restopos/internal/service"

	"github.com/gin-gonic/gin"
)

// AjusteHandler exposes the discount and surcharge slots of a pedido.
// The route decides the target; both share the same apply/read/remove cycle.
type AjusteHandler struct{ svc service.AjusteService }

func NewAjusteHandler(svc service.AjusteService) *AjusteHandler { return &AjusteHandler{svc: svc} }

func (h *AjusteHandler) aplicar(alvo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req dto.AjusteRequest
		if !bindAndValidate(c, &req) {
			return
		}
		resp, err := h.svc.Aplicar(c.Request.Context(), id, alvo, req)
		if err != nil {
			falha(c, err)
			return
		}
		c.JSON(http.StatusOK, api.OK("ajuste aplicado", resp))
	}
}

func (h *AjusteHandler) obter(alvo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		resp, err := h.svc.Obter(c.Request.Context(), id, alvo)
		if err != nil {
			falha(c, err)
			return
		}
		c.JSON(http.StatusOK, api.OK("ajuste", resp))
	}
}

func (h *AjusteHandler) remover(alvo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		resp, err := h.svc.Remover(c.Request.Context(), id, alvo)
		if err != nil {
			falha(c, err)
			return
		}
		c.JSON(http.StatusOK, api.OK("ajuste removido", resp))
	}
}

func (h *AjusteHandler) AplicarDesconto(c *gin.Context)  { h.aplicar(service.AlvoDesconto)(c) }
func (h *AjusteHandler) ObterDesconto(c *gin.Context)    { h.obter(service.AlvoDesconto)(c) }
func (h *AjusteHandler) RemoverDesconto(c *gin.Context)  { h.remover(service.AlvoDesconto)(c) }
func (h *AjusteHandler) AplicarAcrescimo(c *gin.Context) { h.aplicar(service.AlvoAcrescimo)(c) }
func (h *AjusteHandler) ObterAcrescimo(c *gin.Context)   { h.obter(service.AlvoAcrescimo)(c) }
func (h *AjusteHandler) RemoverAcrescimo(c *gin.Context) { h.remover(service.AlvoAcrescimo)(c) }
