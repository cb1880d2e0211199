package gemini

import (
	"errors"
	"testing"

	"google.golang.org/api/googleapi"

	adskip "github.com/heibot/adskip"
)

func TestWrapAPIError(t *testing.T) {
	rateLimited := wrapAPIError(&googleapi.Error{Code: 429, Message: "quota exceeded"})
	if !errors.Is(rateLimited, adskip.ErrRateLimited) {
		t.Errorf("429 error = %v, want ErrRateLimited in chain", rateLimited)
	}
	if !adskip.IsRetryable(rateLimited) {
		t.Error("429 error not retryable")
	}

	authErr := wrapAPIError(&googleapi.Error{Code: 403, Message: "forbidden"})
	if !adskip.IsAuthError(authErr) {
		t.Errorf("403 error = %v, want auth category", authErr)
	}
	if adskip.IsRetryable(authErr) {
		t.Error("403 error marked retryable")
	}
}
