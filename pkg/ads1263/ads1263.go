package ads1263

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Transport is the minimal hardware link the driver needs: the three discrete
// control lines (reset, chip select, data ready), single-byte transfers over
// the serial bus, delays, and a bounded wait for the DRDY line.
type Transport interface {
	// SetRST drives the reset line. true = high (device running).
	SetRST(high bool) error

	// SetCS drives the chip select line. true = high (deselected).
	SetCS(high bool) error

	// WriteByte clocks one byte out, discarding the byte clocked in.
	WriteByte(b byte) error

	// ReadByte clocks 0x00 out and returns the byte clocked in.
	ReadByte() (byte, error)

	// ReadDRDY samples the data-ready line. true = high = conversion not ready.
	ReadDRDY() (bool, error)

	// Delay blocks for the given duration.
	Delay(d time.Duration)

	// WaitDRDY busy-polls until DRDY is low, bounded by an iteration count.
	// Returns ErrDRDYTimeout if the line never drops.
	WaitDRDY() error

	// WaitDRDYTimeout polls DRDY with short sleeps until the wall-clock
	// timeout elapses. Returns ErrDRDYTimeout if the line never drops.
	WaitDRDYTimeout(timeout time.Duration) error

	// Close releases the link, returning RST and CS to a safe inactive level.
	Close() error
}

var (
	// ErrInvalidChipID is returned by InitADC1/InitADC2 when the identity
	// register does not carry the ADS1263 part number.
	ErrInvalidChipID = errors.New("invalid chip ID")

	// ErrDRDYTimeout is returned by Transport DRDY waits that hit their bound.
	ErrDRDYTimeout = errors.New("timeout waiting for DRDY")

	// ErrStatusPollTimeout is returned when the in-frame status bit never
	// reports a valid conversion. Usually means miswired hardware.
	ErrStatusPollTimeout = errors.New("timeout polling data frame status")
)

// ChannelRangeError reports a channel index outside the current input mode's
// legal range. No register write is attempted.
type ChannelRangeError struct {
	Channel uint8
	Max     uint8
}

func (e *ChannelRangeError) Error() string {
	return fmt.Sprintf("invalid channel: %d (max: %d)", e.Channel, e.Max)
}

// ADS1263 provides high-level control over a TI ADS1263 dual delta-sigma ADC.
//
// The driver owns its Transport for its lifetime. All operations are
// synchronous and serialized; the only session state is the input mode.
type ADS1263 struct {
	mu sync.Mutex
	tr Transport

	mode InputMode

	// Last read or written register states (for reference or debugging)
	regLR [NumRegisters]byte // "Last Read"  register data
	regLW [NumRegisters]byte // "Last Write" register data

	log zerolog.Logger
}

// NewADS1263 constructs an ADS1263 driver over the given Transport.
// The driver starts in single-ended mode with logging disabled.
func NewADS1263(tr Transport) *ADS1263 {
	return &ADS1263{
		tr:   tr,
		mode: SingleEnded,
		log:  zerolog.Nop(),
	}
}

// SetLogger installs a logger for the driver's diagnostics (verified-write
// mismatches, checksum failures, chip ID verification).
func (adc *ADS1263) SetLogger(log zerolog.Logger) {
	adc.mu.Lock()
	adc.log = log
	adc.mu.Unlock()
}

// SetMode selects single-ended or differential channel mapping.
// The mode persists across reads until changed; the device mux register is
// rewritten on every read regardless.
func (adc *ADS1263) SetMode(mode InputMode) {
	adc.mu.Lock()
	adc.mode = mode
	adc.log.Info().Stringer("mode", mode).Msg("input mode set")
	adc.mu.Unlock()
}

// Mode returns the current input mode.
func (adc *ADS1263) Mode() InputMode {
	adc.mu.Lock()
	m := adc.mode
	adc.mu.Unlock()
	return m
}

// reset performs a full hardware reset cycle on the RST pin. The 300 ms
// holds are generous on purpose; the chip's reset behavior is
// timing-sensitive and shortening them risks an unready device.
func (adc *ADS1263) reset() error {
	adc.log.Debug().Msg("performing hardware reset")
	if err := adc.tr.SetRST(true); err != nil {
		return err
	}
	adc.tr.Delay(300 * time.Millisecond)
	if err := adc.tr.SetRST(false); err != nil {
		return err
	}
	adc.tr.Delay(300 * time.Millisecond)
	if err := adc.tr.SetRST(true); err != nil {
		return err
	}
	adc.tr.Delay(300 * time.Millisecond)
	return nil
}

// Reset performs a hardware reset cycle using the RST pin.
func (adc *ADS1263) Reset() error {
	adc.mu.Lock()
	err := adc.reset()
	adc.mu.Unlock()
	return err
}

// ReadChipID reads the part-number field of the ID register.
// The ADS1263 reports 1.
func (adc *ADS1263) ReadChipID() (byte, error) {
	adc.mu.Lock()
	id, err := adc.readRegister(RegID)
	adc.mu.Unlock()
	if err != nil {
		return 0, err
	}
	// part number field occupies the top 3 bits
	return id >> 5, nil
}

// verifyChipID fails closed when the identity register does not match.
// Callers must hold adc.mu.
func (adc *ADS1263) verifyChipID() error {
	id, err := adc.readRegister(RegID)
	if err != nil {
		return err
	}
	id >>= 5
	if id != expectedChipID {
		adc.log.Error().Uint8("id", id).Msg("chip ID mismatch")
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidChipID, expectedChipID, id)
	}
	adc.log.Info().Uint8("id", id).Msg("chip ID verified")
	return nil
}

// configADC1 applies the ADC1 register set: MODE2 (PGA bypass | gain | data
// rate), REFMUX, MODE0 (conversion delay), MODE1 (digital filter). All four
// writes go through the verified-write path.
func (adc *ADS1263) configADC1(gain Gain, drate DataRate, delay Delay) error {
	// MODE2: PGA bypassed (0x80) | gain | data rate
	mode2 := 0x80 | (byte(gain) << 4) | byte(drate)
	if err := adc.writeRegisterVerified(RegMODE2, mode2, "REG_MODE2"); err != nil {
		return err
	}

	if err := adc.writeRegisterVerified(RegREFMUX, byte(REF_AVDD_AVSS), "REG_REFMUX"); err != nil {
		return err
	}

	if err := adc.writeRegisterVerified(RegMODE0, byte(delay), "REG_MODE0"); err != nil {
		return err
	}

	// FIR filter for best 50/60 Hz rejection
	return adc.writeRegisterVerified(RegMODE1, byte(FILTER_FIR), "REG_MODE1")
}

// configADC2 applies the ADC2 register set: ADC2CFG (reference | data rate |
// gain) and MODE0 (conversion delay), both through the verified-write path.
func (adc *ADS1263) configADC2(gain ADC2Gain, drate ADC2DataRate, delay Delay) error {
	// ADC2CFG: AVDD/AVSS reference (0x20) | data rate | gain
	cfg := 0x20 | (byte(drate) << 6) | byte(gain)
	if err := adc.writeRegisterVerified(RegADC2CFG, cfg, "REG_ADC2CFG"); err != nil {
		return err
	}

	return adc.writeRegisterVerified(RegMODE0, byte(delay), "REG_MODE0")
}

// InitADC1 resets the device, verifies the chip ID, configures ADC1 at the
// given data rate, and starts continuous conversions.
//
// Returns ErrInvalidChipID without starting conversions if the identity
// register does not match.
func (adc *ADS1263) InitADC1(drate DataRate) error {
	adc.mu.Lock()
	defer adc.mu.Unlock()

	if err := adc.reset(); err != nil {
		return err
	}

	if err := adc.verifyChipID(); err != nil {
		return err
	}

	if err := adc.sendCommand(CMDSTOP1); err != nil {
		return err
	}
	if err := adc.configADC1(GAIN_1, drate, DELAY_35US); err != nil {
		return err
	}
	if err := adc.sendCommand(CMDSTART1); err != nil {
		return err
	}

	adc.log.Info().Uint8("drate", byte(drate)).Msg("ADC1 initialized")
	return nil
}

// InitADC2 resets the device, verifies the chip ID, and configures ADC2 at
// the given data rate. ADC2 is not started here; it is started per-read
// because its acquisition model is on-demand.
func (adc *ADS1263) InitADC2(drate ADC2DataRate) error {
	adc.mu.Lock()
	defer adc.mu.Unlock()

	if err := adc.reset(); err != nil {
		return err
	}

	if err := adc.verifyChipID(); err != nil {
		return err
	}

	if err := adc.sendCommand(CMDSTOP2); err != nil {
		return err
	}
	if err := adc.configADC2(ADC2_GAIN_1, drate, DELAY_35US); err != nil {
		return err
	}

	adc.log.Info().Uint8("drate", byte(drate)).Msg("ADC2 initialized")
	return nil
}

// StartADC1 starts continuous ADC1 conversions.
func (adc *ADS1263) StartADC1() error {
	adc.mu.Lock()
	err := adc.sendCommand(CMDSTART1)
	adc.mu.Unlock()
	return err
}

// StopADC1 stops ADC1 conversions.
func (adc *ADS1263) StopADC1() error {
	adc.mu.Lock()
	err := adc.sendCommand(CMDSTOP1)
	adc.mu.Unlock()
	return err
}

// StartADC2 starts ADC2 conversions.
func (adc *ADS1263) StartADC2() error {
	adc.mu.Lock()
	err := adc.sendCommand(CMDSTART2)
	adc.mu.Unlock()
	return err
}

// StopADC2 stops ADC2 conversions.
func (adc *ADS1263) StopADC2() error {
	adc.mu.Lock()
	err := adc.sendCommand(CMDSTOP2)
	adc.mu.Unlock()
	return err
}

// Close stops both converters and releases the transport. The transport
// returns the control lines to a safe level on every exit path.
func (adc *ADS1263) Close() error {
	adc.mu.Lock()
	err := adc.sendCommand(CMDSTOP1)
	err = errors.Join(err, adc.sendCommand(CMDSTOP2))
	err = errors.Join(err, adc.tr.Close())
	adc.mu.Unlock()
	return err
}
