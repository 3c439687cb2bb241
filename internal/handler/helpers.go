package handler

import (
	"errors"
	"net/http"
	"reflect"

	"restopos/internal/api"
	"restopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
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
		c.JSON(http.StatusBadRequest, api.Err("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, api.NewValidation(fields))
		return false
	}
	return true
}

// parseID reads a UUID path parameter, writing the 400 response on failure.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Err("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// falha maps service sentinel errors onto HTTP statuses. Anything not a
// sentinel is pushed to the error middleware, which logs it and answers 500
// without leaking the message.
func falha(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidacao):
		c.JSON(http.StatusBadRequest, api.Err(err.Error()))
	case errors.Is(err, service.ErrNaoEncontrado):
		c.JSON(http.StatusNotFound, api.Err(err.Error()))
	case errors.Is(err, service.ErrConflito):
		c.JSON(http.StatusConflict, api.Err(err.Error()))
	case errors.Is(err, service.ErrPreCondicao):
		c.JSON(http.StatusBadRequest, api.Err(err.Error()))
	default:
		_ = c.Error(err)
	}
}
