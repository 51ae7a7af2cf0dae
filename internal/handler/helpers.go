package handler

import (
	"errors"
	"net/http"
	"reflect"

	"huevopos/internal/apierror"
	"huevopos/internal/repository"
	"huevopos/internal/service"
	"huevopos/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps domain errors to HTTP status codes.
// Storage failures surface as 503 so clients can distinguish "you sent
// garbage" from "the store is down and nothing was recorded".
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrVentaNoEncontrada),
		errors.Is(err, service.ErrUbicacionNoEncontrada):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrTransaccionInvalida),
		errors.Is(err, service.ErrGastoInvalido),
		errors.Is(err, service.ErrPrecioInvalido):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case store.IsStorageError(err):
		c.JSON(http.StatusServiceUnavailable, apierror.New("Error de almacenamiento"))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	}
}
