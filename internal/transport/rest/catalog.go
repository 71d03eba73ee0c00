package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agendo/internal/domain"
)

// @Summary Cadastra serviço
// @Tags Serviços
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateServiceDTO true "Nome, preço e duração"
// @Success 201 {object} successResponseBody "ID do serviço"
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Router /service [post]
func (h *Handler) createService(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateServiceDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	id, err := h.services.Catalog.Create(c.Request.Context(), companyID, input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Dados do serviço
// @Tags Serviços
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "ID do serviço"
// @Success 200 {object} domain.Service
// @Failure 404 {object} errorResponseBody "Serviço não encontrado"
// @Router /service/{id} [get]
func (h *Handler) getServiceByID(c *gin.Context) {
	service, err := h.services.Catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !h.ownsResource(c, service.CompanyID) {
		return
	}

	successResponse(c, http.StatusOK, service)
}

// @Summary Atualiza serviço
// @Tags Serviços
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "ID do serviço"
// @Param input body domain.UpdateServiceDTO true "Campos a atualizar"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Router /service/{id} [patch]
func (h *Handler) updateService(c *gin.Context) {
	service, err := h.services.Catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}
	if !h.ownsResource(c, service.CompanyID) {
		return
	}

	var input domain.UpdateServiceDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	if err := h.services.Catalog.Update(c.Request.Context(), c.Param("id"), input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "serviço atualizado")
}

// @Summary Remove serviço
// @Description Desativa o serviço; o histórico de agendamentos permanece
// @Tags Serviços
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "ID do serviço"
// @Success 204 {object} nil
// @Failure 404 {object} errorResponseBody "Serviço não encontrado"
// @Router /service/{id} [delete]
func (h *Handler) deleteService(c *gin.Context) {
	service, err := h.services.Catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}
	if !h.ownsResource(c, service.CompanyID) {
		return
	}

	if err := h.services.Catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	noContentResponse(c)
}

// ownsResource confere que o recurso pertence à empresa do token; responde
// 403 e devolve false quando não pertence.
func (h *Handler) ownsResource(c *gin.Context, resourceCompanyID string) bool {
	companyID, err := getCompanyID(c)
	if err != nil {
		unauthorizedResponse(c)
		return false
	}
	if resourceCompanyID != companyID {
		forbiddenResponse(c)
		return false
	}
	return true
}
