package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	userIDCtx           = "user_id"
	companyIDCtx        = "company_id"
)

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		logger := h.logger.With(
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
		)

		if status >= 500 {
			logger.Error("erro do servidor")
		} else if status >= 400 {
			logger.Warn("erro do cliente")
		} else {
			logger.Info("requisição processada")
		}
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Content-Length, Accept-Encoding, Origin, Accept, User-Agent, X-Requested-With, Cache-Control, Referer")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		origin := c.Request.Header.Get("Origin")
		if origin != "" && c.Request.Header.Get("Authorization") != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		if header == "" {
			errorResponse(c, http.StatusUnauthorized, "cabeçalho de autorização vazio")
			c.Abort()
			return
		}

		headerParts := strings.Split(header, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			errorResponse(c, http.StatusUnauthorized, "formato inválido do cabeçalho de autorização")
			c.Abort()
			return
		}

		userID, companyID, err := h.services.Auth.ParseToken(c.Request.Context(), headerParts[1])
		if err != nil {
			errorResponse(c, http.StatusUnauthorized, "token inválido ou expirado")
			c.Abort()
			return
		}

		c.Set(userIDCtx, userID)
		c.Set(companyIDCtx, companyID)

		c.Next()
	}
}

// companyAccessMiddleware garante que o :id da rota é a empresa do token. Um
// usuário nunca enxerga dados de outra empresa.
func (h *Handler) companyAccessMiddleware(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, err := getCompanyID(c)
		if err != nil {
			unauthorizedResponse(c)
			c.Abort()
			return
		}

		if c.Param(param) != companyID {
			forbiddenResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get(userIDCtx)
	if !exists {
		return "", errors.New("usuário não autenticado")
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", errors.New("identificador de usuário inválido")
	}

	return id, nil
}

func getCompanyID(c *gin.Context) (string, error) {
	companyID, exists := c.Get(companyIDCtx)
	if !exists {
		return "", errors.New("usuário não autenticado")
	}

	id, ok := companyID.(string)
	if !ok || id == "" {
		return "", errors.New("identificador de empresa inválido")
	}

	return id, nil
}
