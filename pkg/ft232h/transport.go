package ft232h

import (
	"fmt"
	"time"

	"github.com/yunginnanet/ft232h"

	"github.com/yunginnanet/ads1263/pkg/ads1263"
)

// drdyPollLimit bounds the busy-poll in WaitDRDY.
const drdyPollLimit = 4000000

// SetRSTPin configures the given C-bus pin as the ADS1263 reset line,
// initially high (device running).
func (ft *FT232H) SetRSTPin(pin uint) error {
	ft.rstPin = ft232h.CPin(pin)
	return ft.GPIO.ConfigPin(ft.rstPin, ft232h.Output, true)
}

// SetCSPin configures the given C-bus pin as the chip select line,
// initially high (deselected).
func (ft *FT232H) SetCSPin(pin uint) error {
	ft.csPin = ft232h.CPin(pin)
	return ft.GPIO.ConfigPin(ft.csPin, ft232h.Output, true)
}

// SetDRDYPin configures the given C-bus pin as the data-ready input.
func (ft *FT232H) SetDRDYPin(pin uint) error {
	ft.drdyPin = ft232h.CPin(pin)
	return ft.GPIO.ConfigPin(ft.drdyPin, ft232h.Input, true)
}

// SetRST drives the reset line.
func (ft *FT232H) SetRST(high bool) error {
	if ft.rstPin == 0 {
		return fmt.Errorf("RST pin not set")
	}
	if err := ft.FT232H.GPIO.Set(ft.rstPin, high); err != nil {
		return fmt.Errorf("failed to set RST pin: %w", err)
	}
	return nil
}

// SetCS drives the chip select line.
func (ft *FT232H) SetCS(high bool) error {
	if ft.csPin == 0 {
		return fmt.Errorf("CS pin not set")
	}
	if err := ft.FT232H.GPIO.Set(ft.csPin, high); err != nil {
		return fmt.Errorf("failed to set CS pin: %w", err)
	}
	return nil
}

// WriteByte clocks one byte out over SPI.
func (ft *FT232H) WriteByte(b byte) error {
	_, err := ft.SPI.Write([]byte{b}, false, false)
	return err
}

// ReadByte clocks one byte in over SPI.
func (ft *FT232H) ReadByte() (byte, error) {
	buf, err := ft.SPI.Read(1, false, false)
	if err != nil {
		return 0, err
	}
	if len(buf) < 1 {
		return 0, fmt.Errorf("short SPI read")
	}
	return buf[0], nil
}

// ReadDRDY samples the data-ready line. true = high = not ready.
func (ft *FT232H) ReadDRDY() (bool, error) {
	if ft.drdyPin == 0 {
		return false, fmt.Errorf("DRDY pin not set")
	}
	hl, err := ft.FT232H.GPIO.Get(ft.drdyPin)
	if err != nil {
		return false, fmt.Errorf("failed to read DRDY pin: %w", err)
	}
	return hl, nil
}

// Delay blocks for the given duration.
func (ft *FT232H) Delay(d time.Duration) {
	time.Sleep(d)
}

// WaitDRDY busy-polls the DRDY line until it drops, bounded by an iteration
// count. Returns [ads1263.ErrDRDYTimeout] if the line never drops.
func (ft *FT232H) WaitDRDY() error {
	for i := 0; i < drdyPollLimit; i++ {
		hl, err := ft.ReadDRDY()
		if err != nil {
			return err
		}
		if !hl {
			return nil
		}
	}
	return ads1263.ErrDRDYTimeout
}

// WaitDRDYTimeout polls the DRDY line with short sleeps until the wall-clock
// timeout elapses. Returns [ads1263.ErrDRDYTimeout] on expiry.
func (ft *FT232H) WaitDRDYTimeout(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		hl, err := ft.ReadDRDY()
		if err != nil {
			return err
		}
		if !hl {
			return nil
		}
		time.Sleep(10 * time.Microsecond)
	}
	return fmt.Errorf("%w after %s", ads1263.ErrDRDYTimeout, timeout)
}

// Close returns the RST and CS lines to a safe low level and releases the
// SPI interface.
func (ft *FT232H) Close() error {
	if ft.rstPin != 0 {
		_ = ft.FT232H.GPIO.Set(ft.rstPin, false)
	}
	if ft.csPin != 0 {
		_ = ft.FT232H.GPIO.Set(ft.csPin, false)
	}
	return ft.SPI.Close()
}

var _ ads1263.Transport = (*FT232H)(nil)
