// Package server 对外 HTTP API 层：参数绑定 + 路由注册 + 错误码映射，
// 业务规则全部下沉到各领域 Service。
package server

import (
	"github.com/GarageLink/GarageLink/internal/common/logger"
	"github.com/GarageLink/GarageLink/internal/customer"
	"github.com/GarageLink/GarageLink/internal/media"
	"github.com/GarageLink/GarageLink/internal/repair"
	"github.com/GarageLink/GarageLink/internal/search"
	"github.com/GarageLink/GarageLink/internal/user"
	"github.com/GarageLink/GarageLink/internal/vehicle"
	"github.com/gin-gonic/gin"
)

// Handlers 聚合全部领域服务，供路由注册使用。
type Handlers struct {
	log logger.Logger

	customers *customer.Service
	vehicles  *vehicle.Service
	repairs   *repair.Service
	attaches  *media.Service
	users     *user.Service
	searcher  *search.Service
}

func NewHandlers(
	log logger.Logger,
	customers *customer.Service,
	vehicles *vehicle.Service,
	repairs *repair.Service,
	attaches *media.Service,
	users *user.Service,
	searcher *search.Service,
) *Handlers {
	return &Handlers{
		log:       log,
		customers: customers,
		vehicles:  vehicles,
		repairs:   repairs,
		attaches:  attaches,
		users:     users,
		searcher:  searcher,
	}
}

// Register 注册全部业务路由（/api/v1 前缀）。
func (h *Handlers) Register(e *gin.Engine) error {
	v1 := e.Group("/api/v1")

	v1.POST("/auth/login", h.login)

	v1.POST("/users", h.createUser)
	v1.GET("/users", h.listUsers)

	v1.POST("/customers", h.createCustomer)
	v1.GET("/customers", h.listCustomers)
	v1.GET("/customers/:id", h.getCustomer)
	v1.PUT("/customers/:id", h.updateCustomer)
	v1.DELETE("/customers/:id", h.deleteCustomer)
	v1.GET("/customers/:id/vehicles", h.listCustomerVehicles)

	v1.POST("/vehicles", h.createVehicle)
	v1.GET("/vehicles", h.listVehicles)
	v1.GET("/vehicles/:id", h.getVehicle)
	v1.PUT("/vehicles/:id", h.updateVehicle)
	v1.DELETE("/vehicles/:id", h.deleteVehicle)

	v1.POST("/orders", h.createOrder)
	v1.GET("/orders", h.listOrders)
	v1.GET("/orders/:id", h.getOrder)
	v1.POST("/orders/:id/status", h.updateOrderStatus)
	v1.PUT("/orders/:id/final-cost", h.setOrderFinalCost)

	v1.POST("/orders/:id/attachments", h.uploadAttachment)
	v1.GET("/orders/:id/attachments", h.listAttachments)
	v1.GET("/attachments/:id", h.downloadAttachment)
	v1.DELETE("/attachments/:id", h.deleteAttachment)

	v1.GET("/search", h.doSearch)

	return nil
}
