package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/GarageLink/GarageLink/internal/common/middleware"
	"github.com/GarageLink/GarageLink/internal/customer"
	"github.com/GarageLink/GarageLink/internal/media"
	"github.com/GarageLink/GarageLink/internal/repair"
	"github.com/GarageLink/GarageLink/internal/search"
	"github.com/GarageLink/GarageLink/internal/user"
	"github.com/GarageLink/GarageLink/internal/vehicle"
	"gorm.io/gorm"
)

func TestHTTPStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{search.ErrEmptyTerm, http.StatusBadRequest},
		{customer.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("%w: name and phone required", customer.ErrInvalidInput), http.StatusBadRequest},
		{vehicle.ErrPlateConflict, http.StatusConflict},
		{customer.ErrPhoneConflict, http.StatusConflict},
		{user.ErrUsernameConflict, http.StatusConflict},
		{fmt.Errorf("%w: open -> delivered", repair.ErrInvalidTransition), http.StatusConflict},
		{user.ErrInvalidCredentials, http.StatusUnauthorized},
		{media.ErrTooLarge, http.StatusRequestEntityTooLarge},
		{middleware.ErrCircuitOpen, http.StatusServiceUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := httpStatusOf(c.err); got != c.want {
			t.Fatalf("httpStatusOf(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
