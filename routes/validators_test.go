package routes

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFuture(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("notfuture", notFuture))

	assert.NoError(t, v.Var("2020-01-01", "notfuture"))
	assert.NoError(t, v.Var(time.Now().Format("2006-01-02"), "notfuture"))
	assert.NoError(t, v.Var("", "notfuture"))

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	assert.Error(t, v.Var(tomorrow, "notfuture"))
	assert.Error(t, v.Var("not-a-date", "notfuture"))
}
