package printer

import "testing"

func TestNewPrinterFromConfig(t *testing.T) {
	tests := []struct {
		name        string
		printerType string
		usbPath     string
		address     string
		wantErr     bool
	}{
		{"usb with path", "usb", "/dev/usb/lp0", "", false},
		{"usb without path", "usb", "", "", true},
		{"network with address", "network", "", "192.168.1.50:9100", false},
		{"network without address", "network", "", "", true},
		{"none", "none", "", "", false},
		{"empty type means none", "", "", "", false},
		{"unsupported type", "laser", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPrinterFromConfig(tt.printerType, tt.usbPath, tt.address)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p == nil {
				t.Fatal("expected a printer")
			}
		})
	}
}

func TestNullPrinterDiscardsOutput(t *testing.T) {
	p := NewNullPrinter()
	if err := p.Print([]byte("receipt")); err != nil {
		t.Fatalf("null printer must accept any job: %v", err)
	}
	if p.IsConnected() {
		t.Error("null printer must never report connected")
	}
	if err := p.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}
