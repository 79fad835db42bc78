//go:build !mobile

package utils

import "testing"

func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("AFRAICA_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}
	t.Setenv("AFRAICA_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("AFRAICA_MOBILE_EMULATE=1 should force mobile mode")
	}
}

func TestEnsureStorageDir_Desktop(t *testing.T) {
	dir, err := EnsureStorageDir("afraica")
	if err != nil || dir != "" {
		t.Errorf("EnsureStorageDir() = %q, %v; want empty path on desktop", dir, err)
	}
}
