package ads1263

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFrameChecksum(t *testing.T) {
	t.Run("ZeroValue", func(t *testing.T) {
		if sum := frameChecksum(0); sum != 0x9B {
			t.Errorf("expected 0x9B, got 0x%02X", sum)
		}
		if !checksumOK(0, 0x9B) {
			t.Error("expected checksum to validate")
		}
	})

	t.Run("WrapsAtByteWidth", func(t *testing.T) {
		// 0xFF+0xFF+0xFF+0xFF = 0x3FC, wrapped to 0xFC, plus 0x9B wraps to 0x97
		if sum := frameChecksum(0xFFFFFFFF); sum != 0x97 {
			t.Errorf("expected 0x97, got 0x%02X", sum)
		}
	})

	t.Run("SingleBitCorruption", func(t *testing.T) {
		for _, val := range []uint32{0, 0x12345678, 0xFFFFFFFF, 0x80000001} {
			crc := frameChecksum(val)
			for bit := 0; bit < 32; bit++ {
				flipped := val ^ (1 << bit)
				if checksumOK(flipped, crc) {
					t.Errorf("val=0x%08X bit=%d: corrupted value validated", val, bit)
				}
			}
		}
	})
}

func TestReadADC1Data(t *testing.T) {
	t.Run("ValidFrame", func(t *testing.T) {
		// two status polls before the ready bit, then 4 data bytes + CRC
		tr := &mockTransport{reads: []byte{
			0x00, 0x40,
			0x7F, 0xFF, 0xFF, 0xFF,
			frameChecksum(0x7FFFFFFF),
		}}
		adc := NewADS1263(tr)

		val, err := adc.readADC1Data()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if val != 0x7FFFFFFF {
			t.Errorf("expected 0x7FFFFFFF, got 0x%08X", val)
		}
		// RDATA1 retransmitted once per status poll
		if n := tr.countByte(byte(CMDRDATA1)); n != 2 {
			t.Errorf("expected 2 RDATA1 commands, got %d", n)
		}
		if len(tr.csEvents) != 2 || tr.csEvents[0] || !tr.csEvents[1] {
			t.Errorf("unexpected CS sequence: %v", tr.csEvents)
		}
	})

	t.Run("ChecksumMismatchStillReturnsSample", func(t *testing.T) {
		buf := &bytes.Buffer{}
		tr := &mockTransport{reads: []byte{
			0x40,
			0x00, 0x00, 0x00, 0x2A,
			0xFF, // wrong CRC
		}}
		adc := NewADS1263(tr)
		adc.SetLogger(zerolog.New(buf))

		val, err := adc.readADC1Data()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if val != 0x2A {
			t.Errorf("expected 0x2A, got 0x%08X", val)
		}
		if !strings.Contains(buf.String(), "checksum error") {
			t.Errorf("expected checksum warning, log was: %s", buf.String())
		}
	})

	t.Run("StatusPollTimeout", func(t *testing.T) {
		tr := &mockTransport{defaultRead: 0x00}
		adc := NewADS1263(tr)

		_, err := adc.readADC1Data()
		if !errors.Is(err, ErrStatusPollTimeout) {
			t.Fatalf("expected ErrStatusPollTimeout, got %v", err)
		}
		// CS must be released on the failure path
		if len(tr.csEvents) == 0 || !tr.csEvents[len(tr.csEvents)-1] {
			t.Errorf("CS left asserted after timeout: %v", tr.csEvents)
		}
	})
}

func TestReadADC2Data(t *testing.T) {
	t.Run("ValidFrame", func(t *testing.T) {
		// ADC2 readiness is bit 7; 3 data bytes + padding + CRC
		tr := &mockTransport{reads: []byte{
			0x40, 0x80,
			0x12, 0x34, 0x56,
			0x00, // padding
			frameChecksum(0x123456),
		}}
		adc := NewADS1263(tr)

		val, err := adc.readADC2Data()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if val != 0x123456 {
			t.Errorf("expected 0x123456, got 0x%06X", val)
		}
		// first status byte had only bit 6, must not satisfy ADC2
		if n := tr.countByte(byte(CMDRDATA2)); n != 2 {
			t.Errorf("expected 2 RDATA2 commands, got %d", n)
		}
	})

	t.Run("ChecksumMismatchStillReturnsSample", func(t *testing.T) {
		buf := &bytes.Buffer{}
		tr := &mockTransport{reads: []byte{
			0x80,
			0xAB, 0xCD, 0xEF,
			0x00,
			0x00, // wrong CRC
		}}
		adc := NewADS1263(tr)
		adc.SetLogger(zerolog.New(buf))

		val, err := adc.readADC2Data()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if val != 0xABCDEF {
			t.Errorf("expected 0xABCDEF, got 0x%06X", val)
		}
		if !strings.Contains(buf.String(), "checksum error") {
			t.Errorf("expected checksum warning, log was: %s", buf.String())
		}
	})
}
