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

type PontoHandler struct{ svc service.PontoService }

func NewPontoHandler(svc service.PontoService) *PontoHandler { return &PontoHandler{svc: svc} }

// CriarOuRetomar godoc
// @Summary Cria um ponto de atendimento ou retoma o existente pelo identificador
// @Tags pontos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarOuRetomarPontoRequest true "Identificador do ponto"
// @Success 200 {object} api.Envelope
// @Failure 409 {object} api.Envelope
// @Router /v1/pontos [post]
func (h *PontoHandler) CriarOuRetomar(c *gin.Context) {
	var req dto.CriarOuRetomarPontoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	estabelecimentoID, err := uuid.Parse(claims.EstabelecimentoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Err("estabelecimento inválido no token"))
		return
	}

	resp, err := h.svc.CriarOuRetomar(c.Request.Context(), estabelecimentoID, req)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("ponto de atendimento pronto", resp))
}

// Listar returns every point of the establishment with its display status
// and the open pedido's total, when any.
func (h *PontoHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	estabelecimentoID, err := uuid.Parse(claims.EstabelecimentoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Err("estabelecimento inválido no token"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), estabelecimentoID)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("pontos de atendimento", resp))
}

func (h *PontoHandler) BuscarPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.BuscarPorID(c.Request.Context(), id)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("ponto de atendimento", resp))
}

func (h *PontoHandler) BuscarPorIdentificador(c *gin.Context) {
	claims := middleware.GetClaims(c)
	estabelecimentoID, err := uuid.Parse(claims.EstabelecimentoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Err("estabelecimento inválido no token"))
		return
	}
	resp, err := h.svc.BuscarPorIdentificador(c.Request.Context(), estabelecimentoID, c.Param("identificador"))
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("ponto de atendimento", resp))
}

// AtualizarStatus godoc
// @Summary Transiciona o status do ponto (disponivel|aberta|ocupada|em_atendimento)
// @Tags pontos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do ponto"
// @Param body body dto.AtualizarStatusRequest true "Novo status"
// @Success 200 {object} api.Envelope
// @Router /v1/pontos/{id}/status [patch]
func (h *PontoHandler) AtualizarStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("status atualizado", resp))
}

func (h *PontoHandler) AtualizarNome(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarNomePontoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarNome(c.Request.Context(), id, req.Nome)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("nome atualizado", resp))
}

// Resetar clears the point name and returns it to disponivel.
func (h *PontoHandler) Resetar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Resetar(c.Request.Context(), id)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("ponto liberado", resp))
}

func (h *PontoHandler) Excluir(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("ponto removido", nil))
}

// Sincronizar godoc
// @Summary Reconcilia os pontos gerenciados com a configuração de atendimento
// @Tags pontos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Envelope
// @Router /v1/pontos/sincronizar [post]
func (h *PontoHandler) Sincronizar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	estabelecimentoID, err := uuid.Parse(claims.EstabelecimentoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Err("estabelecimento inválido no token"))
		return
	}
	resp, err := h.svc.Sincronizar(c.Request.Context(), estabelecimentoID)
	if err != nil {
		falha(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("pontos sincronizados", resp))
}
