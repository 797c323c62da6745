package battery

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/bryanchriswhite/quebar/internal/logger"
)

// UPower D-Bus constants
const (
	upowerService         = "org.freedesktop.UPower"
	upowerPath            = "/org/freedesktop/UPower"
	upowerEnumerateMethod = "org.freedesktop.UPower.EnumerateDevices"
	deviceInterface       = "org.freedesktop.UPower.Device"

	// Type property value for battery devices
	deviceTypeBattery uint32 = 2
)

// UPowerSource reads battery charge from UPower over the system bus.
type UPowerSource struct {
	conn *dbus.Conn
}

// NewUPowerSource connects to the system bus and verifies UPower is present.
func NewUPowerSource() (*UPowerSource, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}

	var names []string
	if err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to list D-Bus names: %w", err)
	}

	found := false
	for _, name := range names {
		if name == upowerService {
			found = true
			break
		}
	}
	if !found {
		conn.Close()
		return nil, fmt.Errorf("UPower service not found on D-Bus")
	}

	return &UPowerSource{conn: conn}, nil
}

// Close closes the D-Bus connection.
func (s *UPowerSource) Close() error {
	return s.conn.Close()
}

// Ratio returns the charge ratio of the first battery device UPower
// reports. ok is false when no battery exists or any D-Bus call fails;
// the sampler then keeps the last known value on screen.
func (s *UPowerSource) Ratio() (float64, bool) {
	var devices []dbus.ObjectPath
	obj := s.conn.Object(upowerService, upowerPath)
	if err := obj.Call(upowerEnumerateMethod, 0).Store(&devices); err != nil {
		logger.WithComponent("battery").Debug().Err(err).Msg("failed to enumerate power devices")
		return 0, false
	}

	for _, path := range devices {
		dev := s.conn.Object(upowerService, path)

		typeVar, err := dev.GetProperty(deviceInterface + ".Type")
		if err != nil {
			continue
		}
		devType, ok := typeVar.Value().(uint32)
		if !ok || devType != deviceTypeBattery {
			continue
		}

		pctVar, err := dev.GetProperty(deviceInterface + ".Percentage")
		if err != nil {
			logger.WithComponent("battery").Debug().Err(err).Msg("failed to read battery percentage")
			return 0, false
		}
		pct, ok := pctVar.Value().(float64)
		if !ok {
			return 0, false
		}
		return pct / 100, true
	}

	return 0, false
}
