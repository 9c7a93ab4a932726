package postgres

import (
	"testing"

	"github.com/kozaktomas/face-index/internal/config"
)

func TestGlobalPool(t *testing.T) {
	defer SetGlobalPool(nil)

	SetGlobalPool(nil)
	if IsAvailable() {
		t.Error("IsAvailable = true with no pool registered")
	}
	if GetGlobalPool() != nil {
		t.Error("GetGlobalPool returned a pool before registration")
	}

	p := &Pool{}
	SetGlobalPool(p)
	if !IsAvailable() {
		t.Error("IsAvailable = false after registration")
	}
	if GetGlobalPool() != p {
		t.Error("GetGlobalPool did not return the registered pool")
	}
}

func TestNewPoolRequiresURL(t *testing.T) {
	if _, err := NewPool(&config.DatabaseConfig{}); err == nil {
		t.Error("NewPool with an empty URL succeeded; want an error")
	}
	if err := Initialize(nil); err == nil {
		t.Error("Initialize(nil) succeeded; want an error")
	}
}
