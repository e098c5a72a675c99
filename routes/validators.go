package routes

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// notFuture accepts YYYY-MM-DD dates up to and including today. Lost and
// found dates in the past are fine; dates that have not happened yet are not.
func notFuture(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return false
	}
	return !parsed.After(time.Now())
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("notfuture", notFuture)
	}
}
