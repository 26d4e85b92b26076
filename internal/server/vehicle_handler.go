package server

import (
	"net/http"

	"github.com/GarageLink/GarageLink/internal/vehicle"
	"github.com/gin-gonic/gin"
)

type vehicleRequest struct {
	CustomerID  string `json:"customer_id"`
	PlateNumber string `json:"plate_number"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	Notes       string `json:"notes"`
}

func (h *Handlers) createVehicle(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	out, err := h.vehicles.Create(c.Request.Context(), vehicle.CreateInput{
		CustomerID:  req.CustomerID,
		PlateNumber: req.PlateNumber,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Notes:       req.Notes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handlers) getVehicle(c *gin.Context) {
	out, err := h.vehicles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) updateVehicle(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	out, err := h.vehicles.Update(c.Request.Context(), c.Param("id"), vehicle.UpdateInput{
		CustomerID:  req.CustomerID,
		PlateNumber: req.PlateNumber,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Notes:       req.Notes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) deleteVehicle(c *gin.Context) {
	if err := h.vehicles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) listVehicles(c *gin.Context) {
	offset, limit := pageParams(c)
	items, total, err := h.vehicles.List(c.Request.Context(), c.Query("customer_id"), offset, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}
