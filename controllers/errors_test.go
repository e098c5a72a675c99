package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lostfound-hub/api-go/lifecycle"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w.Code
}

func kindErr(kind lifecycle.Kind) error {
	return &lifecycle.Error{Kind: kind, Message: "boom"}
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", lifecycle.ErrNotFound, http.StatusNotFound},
		{"validation", kindErr(lifecycle.KindValidation), http.StatusBadRequest},
		{"too many images", kindErr(lifecycle.KindTooManyImages), http.StatusBadRequest},
		{"permission", kindErr(lifecycle.KindPermission), http.StatusForbidden},
		{"self claim", kindErr(lifecycle.KindSelfClaim), http.StatusForbidden},
		{"invalid state", kindErr(lifecycle.KindInvalidState), http.StatusConflict},
		{"wrong item type", kindErr(lifecycle.KindWrongItemType), http.StatusConflict},
		{"already returned", kindErr(lifecycle.KindAlreadyReturned), http.StatusConflict},
		{"already claimed", kindErr(lifecycle.KindAlreadyClaimed), http.StatusConflict},
		{"duplicate approved", kindErr(lifecycle.KindDuplicateApproved), http.StatusConflict},
		{"duplicate pending", kindErr(lifecycle.KindDuplicatePending), http.StatusConflict},
		{"no approved claim", kindErr(lifecycle.KindNoApprovedClaim), http.StatusConflict},
		{"conflict", kindErr(lifecycle.KindConflict), http.StatusConflict},
		{"storage", kindErr(lifecycle.KindStorage), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(t, tc.err))
		})
	}
}
