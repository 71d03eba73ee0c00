package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agendo/internal/domain"
)

// @Summary Registro de empresa e usuário
// @Description Cria a empresa e o primeiro usuário administrador
// @Tags Autenticação
// @Accept json
// @Produce json
// @Param input body domain.RegisterRequest true "Dados de registro"
// @Success 201 {object} successResponseBody "Usuário criado"
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Failure 500 {object} errorResponseBody "Erro interno"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input domain.RegisterRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	id, err := h.services.Auth.Register(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Login
// @Description Autentica o usuário e devolve os tokens de acesso
// @Tags Autenticação
// @Accept json
// @Produce json
// @Param input body domain.LoginRequest true "Credenciais"
// @Success 200 {object} domain.Tokens "Tokens de acesso e atualização"
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Failure 401 {object} errorResponseBody "Credenciais inválidas"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input domain.LoginRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	tokens, err := h.services.Auth.Login(c.Request.Context(), input, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Atualização de tokens
// @Description Troca o refresh token por um novo par de tokens
// @Tags Autenticação
// @Accept json
// @Produce json
// @Param input body domain.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} domain.Tokens "Novos tokens"
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Failure 401 {object} errorResponseBody "Refresh token inválido"
// @Router /auth/refresh [post]
func (h *Handler) refreshTokens(c *gin.Context) {
	var input domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	tokens, err := h.services.Auth.RefreshTokens(c.Request.Context(), input.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Logout
// @Description Encerra a sessão e invalida o refresh token
// @Tags Autenticação
// @Accept json
// @Produce json
// @Param input body domain.RefreshTokenRequest true "Refresh token"
// @Success 204 {object} nil "Sessão encerrada"
// @Failure 400 {object} errorResponseBody "Erro de validação"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	var input domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("dados inválidos", zap.Error(err))
		badRequestResponse(c, "dados inválidos")
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), input.RefreshToken); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}
