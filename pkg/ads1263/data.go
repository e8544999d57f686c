package ads1263

import (
	"errors"
	"fmt"
)

// statusPollLimit bounds the in-frame status poll. The chip sets the ready
// bit within one conversion period; hitting this limit means the status byte
// is never valid (typically miswired DIN/DOUT).
const statusPollLimit = 100000

// frameChecksum computes the wrapping byte sum of the little-endian bytes of
// val plus a fixed offset. This is the "CRC" byte the device appends to each
// data frame; it is a modular byte sum, not a polynomial CRC.
func frameChecksum(val uint32) byte {
	var sum byte
	for v := val; v != 0; v >>= 8 {
		sum += byte(v & 0xFF)
	}
	return sum + checksumOffset
}

// checksumOK reports whether crc matches the frame checksum of val.
func checksumOK(val uint32, crc byte) bool {
	return frameChecksum(val) == crc
}

// pollFrameStatus retransmits cmd until the status byte carries readyBit,
// bounded by statusPollLimit. Callers must hold adc.mu and have CS asserted.
func (adc *ADS1263) pollFrameStatus(cmd Command, readyBit byte) error {
	for i := 0; i < statusPollLimit; i++ {
		if err := adc.tr.WriteByte(byte(cmd)); err != nil {
			return err
		}
		status, err := adc.tr.ReadByte()
		if err != nil {
			return err
		}
		if status&readyBit != 0 {
			return nil
		}
	}
	return fmt.Errorf("%w: status bit 0x%02X never set", ErrStatusPollTimeout, readyBit)
}

// readADC1Data reads one 32-bit ADC1 frame: status poll, 4 data bytes
// (big-endian), then the checksum byte. A checksum mismatch is reported but
// the sample is still returned.
// Callers must hold adc.mu.
func (adc *ADS1263) readADC1Data() (uint32, error) {
	if err := adc.setCSLow(); err != nil {
		return 0, err
	}

	if err := adc.pollFrameStatus(CMDRDATA1, adc1StatusReady); err != nil {
		return 0, errors.Join(err, adc.setCSHigh())
	}

	var buf [5]byte // 4 data bytes + CRC
	for i := range buf {
		b, err := adc.tr.ReadByte()
		if err != nil {
			return 0, errors.Join(err, adc.setCSHigh())
		}
		buf[i] = b
	}

	if err := adc.setCSHigh(); err != nil {
		return 0, err
	}

	data := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])

	if !checksumOK(data, buf[4]) {
		adc.log.Warn().
			Uint32("data", data).
			Uint8("crc", buf[4]).
			Msg("ADC1 checksum error")
	}

	return data, nil
}

// readADC2Data reads one 24-bit ADC2 frame: status poll, 3 data bytes
// (big-endian into the low 24 bits), one padding byte, then the checksum
// byte. The ready bit differs from ADC1. A checksum mismatch is reported but
// the sample is still returned.
// Callers must hold adc.mu.
func (adc *ADS1263) readADC2Data() (uint32, error) {
	if err := adc.setCSLow(); err != nil {
		return 0, err
	}

	if err := adc.pollFrameStatus(CMDRDATA2, adc2StatusReady); err != nil {
		return 0, errors.Join(err, adc.setCSHigh())
	}

	var buf [5]byte // 3 data bytes + padding + CRC
	for i := range buf {
		b, err := adc.tr.ReadByte()
		if err != nil {
			return 0, errors.Join(err, adc.setCSHigh())
		}
		buf[i] = b
	}

	if err := adc.setCSHigh(); err != nil {
		return 0, err
	}

	data := uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2])

	if !checksumOK(data, buf[4]) {
		adc.log.Warn().
			Uint32("data", data).
			Uint8("crc", buf[4]).
			Msg("ADC2 checksum error")
	}

	return data, nil
}
