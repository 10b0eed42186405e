package server

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs custom binding validators on gin's
// validator engine. Safe to call from concurrent server setups.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		// timeofday accepts HH:MM and HH:MM:SS wall clock values.
		_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			for _, layout := range []string{"15:04:05", "15:04"} {
				if _, err := time.Parse(layout, s); err == nil {
					return true
				}
			}
			return false
		})
	})
}
