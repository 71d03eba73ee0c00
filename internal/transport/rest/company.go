package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agendo/internal/domain"
)

// @Summary Dados da empresa
// @Tags Empresa
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "ID da empresa"
// @Success 200 {object} domain.Company
// @Failure 404 {object} errorResponseBody "Empresa não encontrada"
// @Router /company/{id} [get]
func (h *Handler) getCompany(c *gin.Context) {
	company, err := h.services.Company.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, company)
}

// @Summary Atualiza a empresa
// @Description Atualiza cadastro, horizonte de agendamento e granularidade de horários
// @Tags Empresa
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "ID da empresa"
// @Param input body domain.UpdateCompanyDTO true "Campos a atualizar"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Router /company/{id} [patch]
func (h *Handler) updateCompany(c *gin.Context) {
	var input domain.UpdateCompanyDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	if err := h.services.Company.Update(c.Request.Context(), c.Param("id"), input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "empresa atualizada")
}

// @Summary Foto da empresa
// @Description Envia a foto exibida no painel e no bot
// @Tags Empresa
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "ID da empresa"
// @Param photo formData file true "Imagem (JPEG, PNG ou GIF)"
// @Success 200 {object} successResponseBody "URL da foto"
// @Failure 400 {object} errorResponseBody "Arquivo inválido"
// @Router /company/{id}/photo [put]
func (h *Handler) uploadCompanyPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		badRequestResponse(c, "arquivo não enviado")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("erro ao abrir arquivo enviado", zap.Error(err))
		badRequestResponse(c, "erro ao ler arquivo")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("erro ao ler arquivo enviado", zap.Error(err))
		badRequestResponse(c, "erro ao ler arquivo")
		return
	}

	url, err := h.services.Company.UploadPhoto(c.Request.Context(), c.Param("id"), data, fileHeader.Filename)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"photoUrl": url,
	})
}

// @Summary Clientes da empresa
// @Tags Empresa
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "ID da empresa"
// @Param query query string false "Busca por nome ou telefone"
// @Param page query int false "Página" default(1)
// @Param perPage query int false "Itens por página" default(20)
// @Success 200 {object} paginatedResponse
// @Router /company/{id}/customer [get]
func (h *Handler) getCompanyCustomers(c *gin.Context) {
	companyID := c.Param("id")
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

// @Summary Serviços da empresa
// @Tags Empresa
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "ID da empresa"
// @Param query query string false "Busca por nome"
// @Success 200 {object} paginatedResponse
// @Router /company/{id}/service [get]
func (h *Handler) getCompanyServices(c *gin.Context) {
	companyID := c.Param("id")
	page, perPage := pageParams(c, 50)

	active := true
	filter := domain.ServiceFilter{
		CompanyID: &companyID,
		Query:     c.Query("query"),
		Active:    &active,
		Limit:     perPage,
		Offset:    (page - 1) * perPage,
	}

	services, total, err := h.services.Catalog.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	paginatedSuccessResponse(c, services, total, page, perPage)
}

// @Summary Funcionários da empresa
// @Tags Empresa
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "ID da empresa"
// @Success 200 {array} domain.Employee
// @Router /company/{id}/employee [get]
func (h *Handler) getCompanyEmployees(c *gin.Context) {
	companyID := c.Param("id")

	employees, err := h.services.Employee.List(c.Request.Context(), domain.EmployeeFilter{
		CompanyID: &companyID,
	})
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, employees)
}

// @Summary Cadastra cliente na empresa
// @Tags Empresa
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "ID da empresa"
// @Param input body domain.CreateCustomerDTO true "Dados do cliente"
// @Success 201 {object} successResponseBody "ID do cliente"
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Router /company/{id}/customer/create [post]
func (h *Handler) createCompanyCustomer(c *gin.Context) {
	var input domain.CreateCustomerDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	id, err := h.services.Customer.Create(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Remove cliente da empresa
// @Description Desfaz o vínculo; o cadastro do cliente permanece
// @Tags Empresa
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "ID da empresa"
// @Param customerId path string true "ID do cliente"
// @Success 204 {object} nil
// @Failure 400 {object} errorResponseBody "Cliente não vinculado"
// @Router /company/{id}/customer/{customerId} [delete]
func (h *Handler) removeCompanyCustomer(c *gin.Context) {
	if err := h.services.Customer.RemoveFromCompany(c.Request.Context(), c.Param("id"), c.Param("customerId")); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Relatório mensal
// @Description Fecha o mês: agendamentos concluídos agrupados por serviço
// @Tags Empresa
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "ID da empresa"
// @Param input body domain.MonthReportRequest true "Qualquer data do mês desejado"
// @Success 200 {object} domain.MonthReport
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Router /company/{id}/month-report [post]
func (h *Handler) getMonthReport(c *gin.Context) {
	var input domain.MonthReportRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	report, err := h.services.Company.MonthReport(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, report)
}

func pageParams(c *gin.Context, defaultPerPage int) (page, perPage int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err = strconv.Atoi(c.DefaultQuery("perPage", strconv.Itoa(defaultPerPage)))
	if err != nil || perPage <= 0 || perPage > 100 {
		perPage = defaultPerPage
	}
	return page, perPage
}
