package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agendo/internal/domain"
)

// @Summary Lista clientes
// @Tags Clientes
// @Security ApiKeyAuth
// @Produce json
// @Param query query string false "Busca por nome ou telefone"
// @Param page query int false "Página" default(1)
// @Param perPage query int false "Itens por página" default(20)
// @Success 200 {object} paginatedResponse
// @Router /customer [get]
func (h *Handler) getCustomers(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	page, perPage := pageParams(c, 20)

	filter := domain.CustomerFilter{
		CompanyID: &companyID,
		Query:     c.Query("query"),
		Limit:     perPage,
		Offset:    (page - 1) * perPage,
	}

	customers, total, err := h.services.Customer.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	paginatedSuccessResponse(c, customers, total, page, perPage)
}

// @Summary Cadastra cliente
// @Tags Clientes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateCustomerDTO true "Dados do cliente"
// @Success 201 {object} successResponseBody "ID do cliente"
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Router /customer [post]
func (h *Handler) createCustomer(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateCustomerDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	id, err := h.services.Customer.Create(c.Request.Context(), companyID, input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Dados do cliente
// @Description Inclui a marcação de bloqueio do telefone
// @Tags Clientes
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} errorResponseBody "Cliente não encontrado"
// @Router /customer/{id} [get]
func (h *Handler) getCustomerByID(c *gin.Context) {
	customer, err := h.services.Customer.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, customer)
}

// @Summary Atualiza cliente
// @Tags Clientes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "ID do cliente"
// @Param input body domain.UpdateCustomerDTO true "Campos a atualizar"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Router /customer/{id} [patch]
func (h *Handler) updateCustomer(c *gin.Context) {
	var input domain.UpdateCustomerDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	if err := h.services.Customer.Update(c.Request.Context(), c.Param("id"), input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "cliente atualizado")
}

// @Summary Bloqueia um telefone
// @Description Impede novos agendamentos para o número
// @Tags Bloqueios
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.BlockNumberDTO true "Telefone e motivo"
// @Success 201 {object} domain.BlockedNumber
// @Failure 400 {object} errorResponseBody "Número já bloqueado"
// @Router /invalid-block-numbers [post]
func (h *Handler) blockNumber(c *gin.Context) {
	var input domain.BlockNumberDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	blocked, err := h.services.Customer.BlockNumber(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, blocked)
}

// @Summary Desbloqueia um telefone
// @Tags Bloqueios
// @Security ApiKeyAuth
// @Produce json
// @Param phone path string true "Telefone bloqueado"
// @Success 204 {object} nil
// @Failure 400 {object} errorResponseBody "Número não está bloqueado"
// @Router /invalid-block-numbers/{phone} [delete]
func (h *Handler) unblockNumber(c *gin.Context) {
	if err := h.services.Customer.UnblockNumber(c.Request.Context(), c.Param("phone")); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	noContentResponse(c)
}
