package server

import (
	"net/http"
	"time"

	"github.com/GarageLink/GarageLink/internal/repair"
	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	VehicleID     string `json:"vehicle_id" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Mechanic      string `json:"mechanic"`
	Currency      string `json:"currency"`
	EstimatedCost int64  `json:"estimated_cost"`
}

func (h *Handlers) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "vehicle_id and title required")
		return
	}
	out, err := h.repairs.CreateOrder(c.Request.Context(), repair.CreateOrderInput{
		VehicleID:     req.VehicleID,
		Title:         req.Title,
		Description:   req.Description,
		Mechanic:      req.Mechanic,
		Currency:      req.Currency,
		EstimatedCost: req.EstimatedCost,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handlers) getOrder(c *gin.Context) {
	out, err := h.repairs.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) listOrders(c *gin.Context) {
	offset, limit := pageParams(c)
	items, total, err := h.repairs.ListOrders(c.Request.Context(), repair.ListOrdersFilter{
		VehicleID: c.Query("vehicle_id"),
		Status:    repair.Status(c.Query("status")),
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handlers) updateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status required")
		return
	}
	out, err := h.repairs.UpdateStatus(c.Request.Context(), c.Param("id"), repair.Status(req.Status), time.Now())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type finalCostRequest struct {
	FinalCost *int64 `json:"final_cost" binding:"required"`
}

func (h *Handlers) setOrderFinalCost(c *gin.Context) {
	var req finalCostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FinalCost == nil {
		badRequest(c, "final_cost required")
		return
	}
	out, err := h.repairs.SetFinalCost(c.Request.Context(), c.Param("id"), *req.FinalCost)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
