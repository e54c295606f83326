package http

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	vo "iops/internal/domain/user/valueobjects"
)

// registerValidations adds custom binding rules to gin's validator engine.
func registerValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine type %T", binding.Validator.Engine())
	}

	return v.RegisterValidation("tiername", func(fl validator.FieldLevel) bool {
		return vo.Tier(fl.Field().String()).IsValid()
	})
}
