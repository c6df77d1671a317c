package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Printer delivers rendered ESC/POS bytes to a thermal receipt printer.
// Drivers hold no open handle between jobs; each Print stands alone so a
// printer that was unplugged mid-shift recovers on the next receipt.
type Printer interface {
	// Print sends one complete document to the device.
	Print(data []byte) error
	// Close releases any resources held by the driver.
	Close() error
	// IsConnected reports whether the device is currently reachable.
	IsConnected() bool
}

const (
	dialTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	pingTimeout  = 2 * time.Second
)

// usbPrinter writes to a character device such as /dev/usb/lp0.
type usbPrinter struct {
	device string
}

// NewUSBPrinter returns a driver for a directly attached printer exposed as
// a device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{device: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.device, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.device, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.device, err)
	}
	return nil
}

// Close is a no-op; the device is opened per job.
func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.device)
	return err == nil
}

// tcpPrinter drives a network printer speaking raw port 9100.
type tcpPrinter struct {
	addr string
}

// NewNetworkPrinter returns a driver that dials the printer over TCP. The
// address carries the port, e.g. "192.168.1.50:9100".
func NewNetworkPrinter(address string) Printer {
	return &tcpPrinter{addr: address}
}

func (p *tcpPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", p.addr, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.addr, err)
	}
	return nil
}

// Close is a no-op; a connection is dialed per job.
func (p *tcpPrinter) Close() error { return nil }

func (p *tcpPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.addr, pingTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// noopPrinter swallows every job. Receipts stay available as JSON previews
// even when no hardware is attached.
type noopPrinter struct{}

// NewNullPrinter returns a driver that discards output, for deployments
// without a physical printer.
func NewNullPrinter() Printer { return &noopPrinter{} }

func (noopPrinter) Print(data []byte) error { return nil }
func (noopPrinter) Close() error            { return nil }
func (noopPrinter) IsConnected() bool       { return false }

// NewPrinterFromConfig selects a driver from configuration. Recognized types
// are "usb", "network" and "none"; an empty type means none.
func NewPrinterFromConfig(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: usb type needs a device path")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: network type needs an address")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unsupported type %q", printerType)
	}
}
