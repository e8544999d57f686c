package ads1263

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWriteRegister(t *testing.T) {
	t.Run("FramesCommand", func(t *testing.T) {
		tr := &mockTransport{}
		adc := NewADS1263(tr)

		if err := adc.writeRegister(RegMODE2, 0x88); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// WREG | reg, count-minus-one, data
		want := []byte{0x45, 0x00, 0x88}
		if len(tr.written) != len(want) {
			t.Fatalf("expected %d bytes written, got %d", len(want), len(tr.written))
		}
		for i, b := range want {
			if tr.written[i] != b {
				t.Errorf("byte %d: expected 0x%02X, got 0x%02X", i, b, tr.written[i])
			}
		}
		if len(tr.csEvents) != 2 || tr.csEvents[0] || !tr.csEvents[1] {
			t.Errorf("unexpected CS sequence: %v", tr.csEvents)
		}
	})

	t.Run("InvalidAddress", func(t *testing.T) {
		adc := NewADS1263(&mockTransport{})
		if err := adc.writeRegister(Register(NumRegisters), 0x00); err == nil {
			t.Error("expected error for out-of-range register")
		}
	})
}

func TestReadRegister(t *testing.T) {
	tr := &mockTransport{reads: []byte{0x5A}}
	adc := NewADS1263(tr)

	val, err := adc.readRegister(RegMODE1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != 0x5A {
		t.Errorf("expected 0x5A, got 0x%02X", val)
	}

	// RREG | reg, count-minus-one
	if tr.written[0] != 0x24 || tr.written[1] != 0x00 {
		t.Errorf("unexpected command bytes: % 02X", tr.written)
	}

	if adc.LastReadRegister(RegMODE1) != 0x5A {
		t.Error("shadow register not updated")
	}
}

func TestWriteRegisterVerified(t *testing.T) {
	t.Run("Match", func(t *testing.T) {
		buf := &bytes.Buffer{}
		tr := &mockTransport{reads: []byte{0x84}}
		adc := NewADS1263(tr)
		adc.SetLogger(zerolog.New(buf))

		if err := adc.writeRegisterVerified(RegMODE1, 0x84, "REG_MODE1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "mismatch") {
			t.Errorf("unexpected mismatch warning: %s", buf.String())
		}
	})

	t.Run("MismatchIsNonFatal", func(t *testing.T) {
		buf := &bytes.Buffer{}
		// read-back disagrees with the written value
		tr := &mockTransport{reads: []byte{0x00}}
		adc := NewADS1263(tr)
		adc.SetLogger(zerolog.New(buf))

		if err := adc.writeRegisterVerified(RegMODE1, 0x84, "REG_MODE1"); err != nil {
			t.Fatalf("expected success despite mismatch, got: %v", err)
		}
		if !strings.Contains(buf.String(), "mismatch") {
			t.Errorf("expected mismatch diagnostic, log was: %s", buf.String())
		}
	})

	t.Run("SettlingDelay", func(t *testing.T) {
		tr := &mockTransport{reads: []byte{0x84}}
		adc := NewADS1263(tr)

		if err := adc.writeRegisterVerified(RegMODE1, 0x84, "REG_MODE1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tr.delays) != 1 || tr.delays[0] != time.Millisecond {
			t.Errorf("expected one 1ms settling delay, got %v", tr.delays)
		}
	})
}

func TestReadAllRegisters(t *testing.T) {
	tr := &mockTransport{defaultRead: 0x11}
	adc := NewADS1263(tr)

	regs, err := adc.ReadAllRegisters()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regs) != NumRegisters {
		t.Fatalf("expected %d registers, got %d", NumRegisters, len(regs))
	}
	for reg, val := range regs {
		if val != 0x11 {
			t.Errorf("register 0x%02X: expected 0x11, got 0x%02X", byte(reg), val)
		}
	}
}
