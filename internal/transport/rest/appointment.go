package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agendo/internal/domain"
)

// @Summary Cria agendamento
// @Description Confere a disponibilidade do horário pedido e escolhe o
// funcionário entre os livres
// @Tags Agendamentos
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Cliente, serviços, data e horário"
// @Success 201 {object} successResponseBody "ID do agendamento"
// @Failure 400 {object} errorResponseBody "Horário indisponível ou cliente bloqueado"
// @Router /appointment [post]
func (h *Handler) createAppointment(c *gin.Context) {
	var input domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if input.CompanyID != companyID {
		forbiddenResponse(c)
		return
	}

	id, err := h.services.Appointment.Create(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Dados do agendamento
// @Tags Agendamentos
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "ID do agendamento"
// @Success 200 {object} domain.Appointment
// @Failure 404 {object} errorResponseBody "Agendamento não encontrado"
// @Router /appointment/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !h.ownsResource(c, appointment.CompanyID) {
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Remarca ou altera agendamento
// @Description Recalcula a disponibilidade ignorando o próprio agendamento
// @Tags Agendamentos
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "ID do agendamento"
// @Param input body domain.UpdateAppointmentDTO true "Campos a alterar"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Horário indisponível"
// @Router /appointment/{id} [patch]
func (h *Handler) updateAppointment(c *gin.Context) {
	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}
	if !h.ownsResource(c, appointment.CompanyID) {
		return
	}

	var input domain.UpdateAppointmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	if err := h.services.Appointment.Update(c.Request.Context(), c.Param("id"), input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "agendamento atualizado")
}

// @Summary Busca agendamentos
// @Description Período obrigatório; serviços e status opcionais
// @Tags Agendamentos
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.SearchAppointmentDTO true "Filtros"
// @Param limit query int false "Limite" default(100)
// @Param offset query int false "Deslocamento" default(0)
// @Success 200 {object} paginatedResponse
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Router /appointment/search [post]
func (h *Handler) searchAppointments(c *gin.Context) {
	var input domain.SearchAppointmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if input.CompanyID != companyID {
		forbiddenResponse(c)
		return
	}

	limit, offset := paginationParams(c, 100)

	appointments, total, err := h.services.Appointment.Search(c.Request.Context(), input, limit, offset)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, appointments, total, page, limit)
}

// @Summary Disponibilidade
// @Description Datas e horários livres para os serviços selecionados. Ao
// editar um agendamento, envie editingAppointmentId para liberar o horário
// que ele ocupa.
// @Tags Agendamentos
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.AvailabilityDTO true "Empresa e serviços"
// @Success 200 {array} domain.DateAvailability
// @Failure 400 {object} errorResponseBody "Serviços inválidos"
// @Router /appointment/availability [post]
func (h *Handler) getAvailability(c *gin.Context) {
	var input domain.AvailabilityDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if input.CompanyID != companyID {
		forbiddenResponse(c)
		return
	}

	availability, err := h.services.Appointment.Availability(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	successResponse(c, http.StatusOK, availability)
}

// @Summary Cancela agendamento
// @Description Somente agendamentos em aberto podem ser cancelados
// @Tags Agendamentos
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "ID do agendamento"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Agendamento já encerrado"
// @Router /appointment/{id}/cancel [put]
func (h *Handler) cancelAppointment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}
	if !h.ownsResource(c, appointment.CompanyID) {
		return
	}

	if err := h.services.Appointment.Cancel(c.Request.Context(), c.Param("id"), userID); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "agendamento cancelado")
}

// @Summary Conclui agendamento
// @Description Registra pagamento e desconto. O desconto, quando enviado,
// precisa de tipo definido, valor diferente de zero e dentro dos limites.
// @Tags Agendamentos
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "ID do agendamento"
// @Param input body domain.FinishAppointmentDTO true "Serviços, pagamento e desconto"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Desconto inválido"
// @Router /appointment/{id}/done [put]
func (h *Handler) finishAppointment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}
	if !h.ownsResource(c, appointment.CompanyID) {
		return
	}

	var input domain.FinishAppointmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	if err := h.services.Appointment.Done(c.Request.Context(), c.Param("id"), input, userID); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "agendamento concluído")
}
