package infrastructure

import (
	"errors"
	"testing"

	"github.com/DRSN-tech/order-service/pkg/e"
)

func TestGetExtensionFromMIME(t *testing.T) {
	cases := []struct {
		mime string
		want string
	}{
		{"image/jpeg", "jpg"},
		{"image/jpg", "jpg"},
		{"image/png", "png"},
		{"image/webp", "webp"},
	}

	for _, tc := range cases {
		got, err := GetExtensionFromMIME(tc.mime)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.mime, err)
		}
		if got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.mime, tc.want, got)
		}
	}

	if _, err := GetExtensionFromMIME("application/pdf"); !errors.Is(err, e.ErrUnsupportedMediaType) {
		t.Errorf("expected ErrUnsupportedMediaType, got: %v", err)
	}
}
