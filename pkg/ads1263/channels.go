package ads1263

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// singleEndedMux packs a single-ended channel index into a mux byte:
// channel in the high nibble, VCOM in the low nibble.
func singleEndedMux(channel uint8) (byte, error) {
	if channel > MaxSingleEndedChannel {
		return 0, &ChannelRangeError{Channel: channel, Max: MaxSingleEndedChannel}
	}
	return (channel << 4) | muxVCOM, nil
}

// differentialMux maps a differential pair index onto its fixed pin pairing.
// Only the five adjacent pairings are permitted.
func differentialMux(channel uint8) (byte, error) {
	switch channel {
	case 0:
		return (0 << 4) | 1, nil // AIN0 - AIN1
	case 1:
		return (2 << 4) | 3, nil // AIN2 - AIN3
	case 2:
		return (4 << 4) | 5, nil // AIN4 - AIN5
	case 3:
		return (6 << 4) | 7, nil // AIN6 - AIN7
	case 4:
		return (8 << 4) | 9, nil // AIN8 - AIN9
	default:
		return 0, &ChannelRangeError{Channel: channel, Max: MaxDifferentialChannel}
	}
}

// selectChannel writes the mux register for the requested channel, encoded
// per the current input mode. Callers must hold adc.mu.
func (adc *ADS1263) selectChannel(reg Register, channel uint8) error {
	var (
		mux byte
		err error
	)
	switch adc.mode {
	case SingleEnded:
		mux, err = singleEndedMux(channel)
	case Differential:
		mux, err = differentialMux(channel)
	default:
		return fmt.Errorf("unknown input mode %d", adc.mode)
	}
	if err != nil {
		return err
	}
	return adc.writeRegister(reg, mux)
}

// ChannelValue selects the requested ADC1 channel, waits for the data-ready
// line, and reads one raw 32-bit sample.
func (adc *ADS1263) ChannelValue(channel uint8) (uint32, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.channelValue(channel)
}

func (adc *ADS1263) channelValue(channel uint8) (uint32, error) {
	if err := adc.selectChannel(RegINPMUX, channel); err != nil {
		return 0, err
	}
	if err := adc.tr.WaitDRDY(); err != nil {
		return 0, err
	}
	return adc.readADC1Data()
}

// ChannelValueADC2 selects the requested ADC2 channel, starts a conversion,
// and reads one raw 24-bit sample. ADC2 is started per-read; there is no
// external DRDY wait, the in-frame status bit gates the read instead.
func (adc *ADS1263) ChannelValueADC2(channel uint8) (uint32, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.channelValueADC2(channel)
}

func (adc *ADS1263) channelValueADC2(channel uint8) (uint32, error) {
	if err := adc.selectChannel(RegADC2MUX, channel); err != nil {
		return 0, err
	}
	if err := adc.sendCommand(CMDSTART2); err != nil {
		return 0, err
	}
	return adc.readADC2Data()
}

// ReadAll reads the given ADC1 channels in order and returns the raw values.
func (adc *ADS1263) ReadAll(channels []uint8) ([]uint32, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()

	values := make([]uint32, 0, len(channels))
	for _, ch := range channels {
		val, err := adc.channelValue(ch)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}

// ReadAllADC2 reads all 10 single-ended ADC2 channels in channel order,
// stopping conversions between channels; ADC2 does not free-run.
func (adc *ADS1263) ReadAllADC2() ([10]uint32, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()

	var values [10]uint32
	for i := range values {
		val, err := adc.channelValueADC2(uint8(i))
		if err != nil {
			return values, err
		}
		values[i] = val
		if err = adc.sendCommand(CMDSTOP2); err != nil {
			return values, err
		}
	}
	return values, nil
}

// DataCallback receives each sample produced by a channel scan.
type DataCallback func(channel uint8, raw uint32)

// ChannelScan tracks a running multi-channel acquisition loop.
type ChannelScan struct {
	Interval time.Duration
	done     *atomic.Bool
	running  *atomic.Bool
	channels []uint8
	callback DataCallback
	err      []error
	errMu    sync.Mutex
}

// NewChannelScan constructs a scan handle over the given channels.
func NewChannelScan(interval time.Duration, channels []uint8, onData DataCallback) *ChannelScan {
	return &ChannelScan{
		Interval: interval,
		done:     &atomic.Bool{},
		running:  &atomic.Bool{},
		channels: channels,
		callback: onData,
		err:      make([]error, 0),
	}
}

func (cs *ChannelScan) addErr(err error) {
	if err == nil {
		return
	}
	cs.errMu.Lock()
	cs.err = append(cs.err, err)
	if len(cs.err) > 50 {
		cs.done.Store(true)
	}
	cs.errMu.Unlock()
}

// Err joins any errors accumulated during the scan.
func (cs *ChannelScan) Err() error {
	cs.errMu.Lock()
	defer cs.errMu.Unlock()
	if len(cs.err) == 0 {
		return nil
	}
	return fmt.Errorf("channel scan errors: %w", errors.Join(cs.err...))
}

// Stop requests the scan to halt. It takes effect at the next channel
// boundary, never inside a register or frame transaction.
func (cs *ChannelScan) Stop() {
	cs.done.Store(true)
}

// IsDone reports whether the scan has been asked to halt.
func (cs *ChannelScan) IsDone() bool {
	return cs.done.Load()
}

// Wait blocks until the scan goroutine has exited and returns any
// accumulated errors.
func (cs *ChannelScan) Wait() error {
	for !cs.done.Load() {
		time.Sleep(10 * time.Millisecond)
	}
	for cs.running.Load() {
		time.Sleep(10 * time.Millisecond)
	}
	return cs.Err()
}

// scanChannels performs one pass over the scan's channel list, checking for
// cancellation between channels.
func (adc *ADS1263) scanChannels(cs *ChannelScan, cancel context.CancelFunc) {
	for _, ch := range cs.channels {
		if cs.done.Load() {
			cancel()
			return
		}

		adc.mu.Lock()
		val, err := adc.channelValue(ch)
		adc.mu.Unlock()

		if err != nil {
			cs.addErr(err)
			continue
		}

		cs.callback(ch, val)
	}
}

// ScanContinuously cycles through the given ADC1 channels, firing the
// callback with each raw sample, until the context is cancelled or Stop is
// called on the returned handle. Cancellation is observed only between
// channel reads.
//
// ADC1 must already be initialized (InitADC1 leaves it free-running).
func (adc *ADS1263) ScanContinuously(
	ctx context.Context,
	scanInterval time.Duration,
	onData DataCallback,
	channels ...uint8,
) (*ChannelScan, error) {
	if len(channels) == 0 {
		return nil, errors.New("no channels to scan")
	}

	mode := adc.Mode()
	max := uint8(MaxSingleEndedChannel)
	if mode == Differential {
		max = MaxDifferentialChannel
	}
	for _, ch := range channels {
		if ch > max {
			return nil, &ChannelRangeError{Channel: ch, Max: max}
		}
	}

	var cancel context.CancelFunc
	ctx, cancel = context.WithCancel(ctx)

	chScan := NewChannelScan(scanInterval, channels, onData)

	go func() {
		chScan.running.Store(true)
		for {
			select {
			case <-ctx.Done():
				chScan.done.Store(true)
				chScan.running.Store(false)
				return
			default:
				if chScan.done.Load() {
					cancel()
					continue
				}
			}
			adc.scanChannels(chScan, cancel)
			time.Sleep(scanInterval)
		}
	}()

	return chScan, nil
}
