package service

import (
	"context"
	"strings"
	"testing"

	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/pkg/apperror"
)

func TestSetCashierPinStoresHashOnly(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo)

	if err := svc.SetCashierPin(context.Background(), "4321"); err != nil {
		t.Fatalf("set pin: %v", err)
	}

	stored, _ := repo.Get(context.Background(), entity.SettingCashierPin)
	if stored == nil {
		t.Fatal("expected pin setting to exist")
	}
	if !stored.Secret {
		t.Error("pin setting must be marked secret")
	}
	if stored.Value == "4321" || !strings.HasPrefix(stored.Value, "$2") {
		t.Errorf("expected bcrypt hash, got %q", stored.Value)
	}

	if err := svc.VerifyCashierPin(context.Background(), "4321"); err != nil {
		t.Errorf("correct pin rejected: %v", err)
	}
	if err := svc.VerifyCashierPin(context.Background(), "0000"); err != apperror.ErrInvalidPin {
		t.Errorf("expected ErrInvalidPin, got %v", err)
	}
}

func TestSetCashierPinTooShort(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo())

	if err := svc.SetCashierPin(context.Background(), "12"); err == nil {
		t.Fatal("expected error for short pin")
	}
}

func TestVerifyCashierPinNotConfigured(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo())

	if err := svc.VerifyCashierPin(context.Background(), "1234"); err != apperror.ErrPinNotConfigured {
		t.Fatalf("expected ErrPinNotConfigured, got %v", err)
	}
}

func TestSetSettingRejectsPinKey(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo())

	if _, err := svc.SetSetting(context.Background(), entity.SettingCashierPin, "1234"); err == nil {
		t.Fatal("expected pin writes through SetSetting to be rejected")
	}
}

func TestSecretSettingsAreMasked(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo)

	_ = repo.Set(context.Background(), &entity.Setting{Key: "smtp_password", Value: "hunter2", Secret: true})
	_ = repo.Set(context.Background(), &entity.Setting{Key: entity.SettingClubName, Value: "Velo Club"})

	setting, err := svc.GetSetting(context.Background(), "smtp_password")
	if err != nil {
		t.Fatalf("get setting: %v", err)
	}
	if setting.Value == "hunter2" {
		t.Error("secret value leaked through GetSetting")
	}

	settings, err := svc.ListSettings(context.Background())
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	for _, s := range settings {
		if s.Secret && s.Value == "hunter2" {
			t.Error("secret value leaked through ListSettings")
		}
		if s.Key == entity.SettingClubName && s.Value != "Velo Club" {
			t.Errorf("plain setting should not be masked, got %q", s.Value)
		}
	}
}
