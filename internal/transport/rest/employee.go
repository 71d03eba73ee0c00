package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agendo/internal/domain"
)

// @Summary Cadastra funcionário
// @Tags Funcionários
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateEmployeeDTO true "Nome do funcionário"
// @Success 201 {object} successResponseBody "ID do funcionário"
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Router /employee [post]
func (h *Handler) createEmployee(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateEmployeeDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	id, err := h.services.Employee.Create(c.Request.Context(), companyID, input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Dados do funcionário
// @Description Inclui a semana de trabalho configurada
// @Tags Funcionários
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "ID do funcionário"
// @Success 200 {object} domain.Employee
// @Failure 404 {object} errorResponseBody "Funcionário não encontrado"
// @Router /employee/{id} [get]
func (h *Handler) getEmployeeByID(c *gin.Context) {
	employee, err := h.services.Employee.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !h.ownsResource(c, employee.CompanyID) {
		return
	}

	successResponse(c, http.StatusOK, employee)
}

// @Summary Atualiza funcionário
// @Tags Funcionários
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "ID do funcionário"
// @Param input body domain.UpdateEmployeeDTO true "Campos a atualizar"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Router /employee/{id} [patch]
func (h *Handler) updateEmployee(c *gin.Context) {
	employee, err := h.services.Employee.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}
	if !h.ownsResource(c, employee.CompanyID) {
		return
	}

	var input domain.UpdateEmployeeDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	if err := h.services.Employee.Update(c.Request.Context(), c.Param("id"), input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "funcionário atualizado")
}

// @Summary Salva a semana de trabalho
// @Description Substitui todos os intervalos recorrentes do funcionário. A
// validação para no primeiro dia inválido e responde com o dia e o motivo.
// @Tags Funcionários
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "ID do funcionário"
// @Param input body domain.UpdateWorkWeeksDTO true "Semana completa"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Intervalo invertido ou sobreposto"
// @Router /employee/{id}/work-week [put]
func (h *Handler) updateWorkWeek(c *gin.Context) {
	employee, err := h.services.Employee.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}
	if !h.ownsResource(c, employee.CompanyID) {
		return
	}

	var input domain.UpdateWorkWeeksDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	if err := h.services.Employee.UpdateWorkWeek(c.Request.Context(), c.Param("id"), input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "semana de trabalho atualizada")
}
