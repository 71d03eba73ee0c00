package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agendo/internal/domain"
)

// @Summary Parâmetros do bot
// @Tags Bot
// @Security ApiKeyAuth
// @Produce json
// @Param companyId path string true "ID da empresa"
// @Success 200 {object} domain.BotParameters
// @Failure 404 {object} errorResponseBody "Empresa não encontrada"
// @Router /bot/{companyId} [get]
func (h *Handler) getBotParameters(c *gin.Context) {
	params, err := h.services.Bot.GetByCompanyID(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, params)
}

// @Summary Atualiza parâmetros do bot
// @Description Lembretes, permissões do fluxo e a antecedência mínima
// (restricao, em horas) para agendar
// @Tags Bot
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param companyId path string true "ID da empresa"
// @Param input body domain.UpdateBotParametersDTO true "Campos a atualizar"
// @Success 200 {object} domain.BotParameters
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Router /bot/{companyId} [put]
func (h *Handler) updateBotParameters(c *gin.Context) {
	var input domain.UpdateBotParametersDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	params, err := h.services.Bot.Update(c.Request.Context(), c.Param("companyId"), input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	successResponse(c, http.StatusOK, params)
}

type botFlowStartRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type botFlowServicesRequest struct {
	Phone      string   `json:"phone" binding:"required"`
	ServiceIDs []string `json:"serviceIds" binding:"required,min=1,dive,uuid"`
}

type botFlowDateRequest struct {
	Phone string `json:"phone" binding:"required"`
	Date  string `json:"date" binding:"required"`
}

type botFlowHourRequest struct {
	Phone string `json:"phone" binding:"required"`
	Hour  string `json:"hour" binding:"required"`
}

// @Summary Inicia conversa de agendamento
// @Tags Bot
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param companyId path string true "ID da empresa"
// @Param input body botFlowStartRequest true "Telefone do cliente"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Fluxo desabilitado ou número bloqueado"
// @Router /bot/{companyId}/flow/start [post]
func (h *Handler) startBotFlow(c *gin.Context) {
	var input botFlowStartRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "dados inválidos")
		return
	}

	if err := h.services.BotFlow.Start(c.Request.Context(), c.Param("companyId"), input.Phone); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "conversa iniciada")
}

// @Summary Escolhe os serviços da conversa
// @Description Consulta a disponibilidade e devolve as datas com horário
// livre. Trocar a seleção invalida data e horário já escolhidos.
// @Tags Bot
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param companyId path string true "ID da empresa"
// @Param input body botFlowServicesRequest true "Telefone e serviços"
// @Success 200 {array} string "Datas em DD/MM/YYYY"
// @Failure 400 {object} errorResponseBody "Conversa não iniciada"
// @Router /bot/{companyId}/flow/services [post]
func (h *Handler) chooseBotFlowServices(c *gin.Context) {
	var input botFlowServicesRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "dados inválidos")
		return
	}

	dates, err := h.services.BotFlow.ChooseServices(c.Request.Context(), c.Param("companyId"), input.Phone, input.ServiceIDs)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	successResponse(c, http.StatusOK, dates)
}

// @Summary Escolhe a data da conversa
// @Tags Bot
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param companyId path string true "ID da empresa"
// @Param input body botFlowDateRequest true "Telefone e data (DD/MM/YYYY)"
// @Success 200 {array} string "Horários em HH:MM"
// @Failure 400 {object} errorResponseBody "Disponibilidade ainda não verificada"
// @Router /bot/{companyId}/flow/date [post]
func (h *Handler) chooseBotFlowDate(c *gin.Context) {
	var input botFlowDateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "dados inválidos")
		return
	}

	hours, err := h.services.BotFlow.ChooseDate(c.Request.Context(), c.Param("companyId"), input.Phone, input.Date)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	successResponse(c, http.StatusOK, hours)
}

// @Summary Escolhe o horário da conversa
// @Tags Bot
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param companyId path string true "ID da empresa"
// @Param input body botFlowHourRequest true "Telefone e horário (HH:MM)"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Horário fora da lista"
// @Router /bot/{companyId}/flow/hour [post]
func (h *Handler) chooseBotFlowHour(c *gin.Context) {
	var input botFlowHourRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "dados inválidos")
		return
	}

	if err := h.services.BotFlow.ChooseHour(c.Request.Context(), c.Param("companyId"), input.Phone, input.Hour); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "horário selecionado")
}

// @Summary Confirma o agendamento da conversa
// @Tags Bot
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param companyId path string true "ID da empresa"
// @Param input body botFlowStartRequest true "Telefone do cliente"
// @Success 201 {object} successResponseBody "ID do agendamento"
// @Failure 400 {object} errorResponseBody "Seleção incompleta ou horário indisponível"
// @Router /bot/{companyId}/flow/confirm [post]
func (h *Handler) confirmBotFlow(c *gin.Context) {
	var input botFlowStartRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "dados inválidos")
		return
	}

	id, err := h.services.BotFlow.Confirm(c.Request.Context(), c.Param("companyId"), input.Phone)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Abandona a conversa
// @Tags Bot
// @Security ApiKeyAuth
// @Produce json
// @Param companyId path string true "ID da empresa"
// @Param phone query string true "Telefone do cliente"
// @Success 204 {object} nil
// @Router /bot/{companyId}/flow [delete]
func (h *Handler) abortBotFlow(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		badRequestResponse(c, "telefone não informado")
		return
	}

	h.services.BotFlow.Abort(c.Param("companyId"), phone)
	noContentResponse(c)
}
