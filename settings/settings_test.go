package settings

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sufra-dev/sufra/models"
	"github.com/sufra-dev/sufra/storage"
)

func newTestStore(t *testing.T) (*Store, storage.Store) {
	t.Helper()
	fs, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return NewStore(fs), fs
}

func TestGet_PersistsDefaultWhenAbsent(t *testing.T) {
	s, fs := newTestStore(t)

	cfg, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	def := models.DefaultSettings()
	if cfg.RestaurantName != def.RestaurantName || !cfg.DeliveryFee.Equal(def.DeliveryFee) {
		t.Errorf("expected the default settings, got %+v", cfg)
	}

	// the default must now be durable so subsequent reads are stable
	var stored models.SiteSettings
	if err := fs.Get("siteSettings", &stored); err != nil {
		t.Fatalf("default was not persisted: %v", err)
	}
}

func TestSetGet_Roundtrip(t *testing.T) {
	s, _ := newTestStore(t)

	cfg := models.DefaultSettings()
	cfg.RestaurantName = "New Name"
	cfg.DeliveryFee = decimal.RequireFromString("3.25")
	if err := s.Set(cfg); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.RestaurantName != "New Name" || !got.DeliveryFee.Equal(cfg.DeliveryFee) {
		t.Errorf("Get = %+v, expected the saved settings", got)
	}
}

func TestGet_MalformedValueRestoresDefault(t *testing.T) {
	s, fs := newTestStore(t)

	if err := fs.Put("siteSettings", []int{1, 2, 3}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	cfg, err := s.Get()
	if err != nil {
		t.Fatalf("Get after malformed value: %v", err)
	}
	if cfg.RestaurantName != models.DefaultSettings().RestaurantName {
		t.Errorf("expected defaults after malformed value, got %+v", cfg)
	}

	var healed models.SiteSettings
	if err := fs.Get("siteSettings", &healed); err != nil {
		t.Fatalf("healed value still unreadable: %v", err)
	}
}
