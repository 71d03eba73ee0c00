package rest

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"agendo/config"
	"agendo/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())
	router.Use(h.corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		user := api.Group("/user")
		user.Use(h.authMiddleware())
		{
			user.GET("/me", h.getCurrentUser)
			user.PATCH("/me", h.updateCurrentUser)
			user.PUT("/me/password", h.updatePassword)
			user.GET("", h.getCompanyUsers)
		}

		company := api.Group("/company")
		company.Use(h.authMiddleware())
		{
			scoped := company.Group("/:id", h.companyAccessMiddleware("id"))
			{
				scoped.GET("", h.getCompany)
				scoped.PATCH("", h.updateCompany)
				scoped.PUT("/photo", h.uploadCompanyPhoto)
				scoped.GET("/customer", h.getCompanyCustomers)
				scoped.GET("/service", h.getCompanyServices)
				scoped.GET("/employee", h.getCompanyEmployees)
				scoped.POST("/customer/create", h.createCompanyCustomer)
				scoped.DELETE("/customer/:customerId", h.removeCompanyCustomer)
				scoped.POST("/month-report", h.getMonthReport)
			}
		}

		customer := api.Group("/customer")
		customer.Use(h.authMiddleware())
		{
			customer.GET("", h.getCustomers)
			customer.POST("", h.createCustomer)
			customer.GET("/:id", h.getCustomerByID)
			customer.PATCH("/:id", h.updateCustomer)
		}

		blockList := api.Group("/invalid-block-numbers")
		blockList.Use(h.authMiddleware())
		{
			blockList.POST("", h.blockNumber)
			blockList.DELETE("/:phone", h.unblockNumber)
		}

		catalog := api.Group("/service")
		catalog.Use(h.authMiddleware())
		{
			catalog.POST("", h.createService)
			catalog.GET("/:id", h.getServiceByID)
			catalog.PATCH("/:id", h.updateService)
			catalog.DELETE("/:id", h.deleteService)
		}

		employee := api.Group("/employee")
		employee.Use(h.authMiddleware())
		{
			employee.POST("", h.createEmployee)
			employee.GET("/:id", h.getEmployeeByID)
			employee.PATCH("/:id", h.updateEmployee)
			employee.PUT("/:id/work-week", h.updateWorkWeek)
		}

		appointment := api.Group("/appointment")
		appointment.Use(h.authMiddleware())
		{
			appointment.POST("", h.createAppointment)
			appointment.GET("/:id", h.getAppointmentByID)
			appointment.PATCH("/:id", h.updateAppointment)
			appointment.POST("/search", h.searchAppointments)
			appointment.POST("/availability", h.getAvailability)
			appointment.PUT("/:id/cancel", h.cancelAppointment)
			appointment.PUT("/:id/done", h.finishAppointment)
		}

		bot := api.Group("/bot")
		bot.Use(h.authMiddleware())
		{
			scoped := bot.Group("/:companyId", h.companyAccessMiddleware("companyId"))
			{
				scoped.GET("", h.getBotParameters)
				scoped.PUT("", h.updateBotParameters)

				flow := scoped.Group("/flow")
				{
					flow.POST("/start", h.startBotFlow)
					flow.POST("/services", h.chooseBotFlowServices)
					flow.POST("/date", h.chooseBotFlowDate)
					flow.POST("/hour", h.chooseBotFlowHour)
					flow.POST("/confirm", h.confirmBotFlow)
					flow.DELETE("", h.abortBotFlow)
				}
			}
		}
	}
}
