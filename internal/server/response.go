package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GarageLink/GarageLink/internal/common/middleware"
	"github.com/GarageLink/GarageLink/internal/customer"
	"github.com/GarageLink/GarageLink/internal/media"
	"github.com/GarageLink/GarageLink/internal/repair"
	"github.com/GarageLink/GarageLink/internal/search"
	"github.com/GarageLink/GarageLink/internal/user"
	"github.com/GarageLink/GarageLink/internal/vehicle"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// httpStatusOf 把领域错误映射为 HTTP 状态码，未识别的一律 500。
func httpStatusOf(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, search.ErrEmptyTerm),
		errors.Is(err, customer.ErrInvalidInput),
		errors.Is(err, vehicle.ErrInvalidInput),
		errors.Is(err, repair.ErrInvalidInput),
		errors.Is(err, user.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, customer.ErrPhoneConflict),
		errors.Is(err, vehicle.ErrPlateConflict),
		errors.Is(err, user.ErrUsernameConflict),
		errors.Is(err, repair.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, middleware.ErrCircuitOpen):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail 写出错误响应；500 不泄露内部细节，只记日志。
func (h *Handlers) fail(c *gin.Context, err error) {
	status := httpStatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if h.log != nil {
			h.log.Errorf("http %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		}
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// pageParams 解析 offset/limit 查询参数，缺省 0/20。
func pageParams(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	return offset, limit
}
