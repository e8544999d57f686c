// Package rpihal implements the ADS1263 serial transport for a Raspberry Pi
// carrying the Waveshare High-Precision AD HAT, using the kernel spidev
// interface and GPIO lines through periph.io.
package rpihal

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/yunginnanet/ads1263/pkg/ads1263"
)

// drdyPollLimit bounds the busy-poll in WaitDRDY.
const drdyPollLimit = 4000000

// PinConfig names the GPIO lines wired to the AD HAT. Defaults match the
// Waveshare board (BCM numbering).
type PinConfig struct {
	RST  string // reset line
	CS   string // chip select line
	DRDY string // data ready line
}

// DefaultPinConfig returns the Waveshare AD HAT wiring.
func DefaultPinConfig() PinConfig {
	return PinConfig{
		RST:  "GPIO18",
		CS:   "GPIO22",
		DRDY: "GPIO17",
	}
}

// SPIConfig describes the SPI port settings.
type SPIConfig struct {
	// Port is the spireg port name; empty selects the first available port.
	Port string
	// Clock is the bus speed.
	Clock physic.Frequency
	// Mode is the SPI mode. The ADS1263 uses Mode1 (CPOL=0, CPHA=1).
	Mode spi.Mode
}

// DefaultSPIConfig returns 1 MHz, Mode1 on the first SPI port.
func DefaultSPIConfig() SPIConfig {
	return SPIConfig{
		Port:  "",
		Clock: 1 * physic.MegaHertz,
		Mode:  spi.Mode1,
	}
}

// HAL is the periph.io-backed transport. The chip select is a plain GPIO
// line, not the controller's chip enable; the HAT routes CS to BCM22.
type HAL struct {
	port spi.PortCloser
	conn spi.Conn

	rst  gpio.PinIO
	cs   gpio.PinIO
	drdy gpio.PinIO
}

// New opens the SPI port and GPIO lines with default configuration.
func New() (*HAL, error) {
	return NewWithConfig(DefaultPinConfig(), DefaultSPIConfig())
}

// NewWithConfig opens the SPI port and GPIO lines. The reset line starts
// high (device running) and chip select starts high (deselected).
func NewWithConfig(pins PinConfig, cfg SPIConfig) (*HAL, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	h := &HAL{}

	if h.rst = gpioreg.ByName(pins.RST); h.rst == nil {
		return nil, fmt.Errorf("no such pin: %s", pins.RST)
	}
	if h.cs = gpioreg.ByName(pins.CS); h.cs == nil {
		return nil, fmt.Errorf("no such pin: %s", pins.CS)
	}
	if h.drdy = gpioreg.ByName(pins.DRDY); h.drdy == nil {
		return nil, fmt.Errorf("no such pin: %s", pins.DRDY)
	}

	if err := h.rst.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("failed to configure RST pin: %w", err)
	}
	if err := h.cs.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("failed to configure CS pin: %w", err)
	}
	if err := h.drdy.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("failed to configure DRDY pin: %w", err)
	}

	port, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port: %w", err)
	}

	conn, err := port.Connect(cfg.Clock, cfg.Mode, 8)
	if err != nil {
		return nil, fmt.Errorf("failed to connect SPI: %w", err)
	}

	h.port = port
	h.conn = conn
	return h, nil
}

// SetRST drives the reset line.
func (h *HAL) SetRST(high bool) error {
	return h.rst.Out(gpio.Level(high))
}

// SetCS drives the chip select line.
func (h *HAL) SetCS(high bool) error {
	return h.cs.Out(gpio.Level(high))
}

// WriteByte clocks one byte out, discarding the returned byte.
func (h *HAL) WriteByte(b byte) error {
	var rx [1]byte
	return h.conn.Tx([]byte{b}, rx[:])
}

// ReadByte clocks 0x00 out and returns the byte clocked in.
func (h *HAL) ReadByte() (byte, error) {
	var rx [1]byte
	if err := h.conn.Tx([]byte{0x00}, rx[:]); err != nil {
		return 0, err
	}
	return rx[0], nil
}

// ReadDRDY samples the data-ready line. true = high = not ready.
func (h *HAL) ReadDRDY() (bool, error) {
	return bool(h.drdy.Read()), nil
}

// Delay blocks for the given duration.
func (h *HAL) Delay(d time.Duration) {
	time.Sleep(d)
}

// WaitDRDY busy-polls the DRDY line until it drops, bounded by an iteration
// count. Returns [ads1263.ErrDRDYTimeout] if the line never drops.
func (h *HAL) WaitDRDY() error {
	for i := 0; i < drdyPollLimit; i++ {
		if h.drdy.Read() == gpio.Low {
			return nil
		}
	}
	return ads1263.ErrDRDYTimeout
}

// WaitDRDYTimeout polls the DRDY line with short sleeps until the wall-clock
// timeout elapses. Returns [ads1263.ErrDRDYTimeout] on expiry.
func (h *HAL) WaitDRDYTimeout(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if h.drdy.Read() == gpio.Low {
			return nil
		}
		time.Sleep(10 * time.Microsecond)
	}
	return fmt.Errorf("%w after %s", ads1263.ErrDRDYTimeout, timeout)
}

// Close returns the RST and CS lines to a safe low level and releases the
// SPI port.
func (h *HAL) Close() error {
	_ = h.rst.Out(gpio.Low)
	_ = h.cs.Out(gpio.Low)
	return h.port.Close()
}

var _ ads1263.Transport = (*HAL)(nil)
