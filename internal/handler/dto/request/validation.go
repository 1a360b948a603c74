package request

import (
	"sync"

	"wallet-screening/internal/domain/credential"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by the request DTOs.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
			_, err := credential.ParseTier(fl.Field().String())
			return err == nil
		})
	})
}
