package ads1263

import (
	"errors"
	"fmt"
	"time"
)

// LastReadRegister returns the last value read back from [reg].
func (adc *ADS1263) LastReadRegister(reg Register) byte {
	adc.mu.Lock()
	b := adc.regLR[reg]
	adc.mu.Unlock()
	return b
}

// Registers returns a snapshot of the last-read register values.
func (adc *ADS1263) Registers() map[Register]byte {
	adc.mu.Lock()
	r := make(map[Register]byte, NumRegisters)
	for reg, val := range adc.regLR {
		r[Register(reg)] = val
	}
	adc.mu.Unlock()
	return r
}

// writeRegister writes a single register [reg] with the given value.
// Callers must hold adc.mu.
func (adc *ADS1263) writeRegister(reg Register, value byte) error {
	if reg >= NumRegisters {
		return fmt.Errorf("invalid register address 0x%02X", byte(reg))
	}
	if err := adc.setCSLow(); err != nil {
		return err
	}

	// WREG: 0x40 | reg, then # of registers minus 1, then the data byte
	if err := adc.tr.WriteByte(byte(CMDWREG) | byte(reg)); err != nil {
		return errors.Join(err, adc.setCSHigh())
	}
	if err := adc.tr.WriteByte(0x00); err != nil {
		return errors.Join(err, adc.setCSHigh())
	}
	if err := adc.tr.WriteByte(value); err != nil {
		return errors.Join(err, adc.setCSHigh())
	}

	adc.regLW[reg] = value
	return adc.setCSHigh()
}

// readRegister reads a single register [reg].
// Callers must hold adc.mu.
func (adc *ADS1263) readRegister(reg Register) (byte, error) {
	if reg >= NumRegisters {
		return 0, fmt.Errorf("invalid register address 0x%02X", byte(reg))
	}
	if err := adc.setCSLow(); err != nil {
		return 0, err
	}

	// RREG: 0x20 | reg, then # of registers minus 1
	if err := adc.tr.WriteByte(byte(CMDRREG) | byte(reg)); err != nil {
		return 0, errors.Join(err, adc.setCSHigh())
	}
	if err := adc.tr.WriteByte(0x00); err != nil {
		return 0, errors.Join(err, adc.setCSHigh())
	}

	val, err := adc.tr.ReadByte()
	if err != nil {
		return 0, errors.Join(err, adc.setCSHigh())
	}

	adc.regLR[reg] = val
	return val, adc.setCSHigh()
}

// writeRegisterVerified writes [reg] and reads it back after a settling
// delay. A mismatch is reported but not treated as a failure; read-only and
// reserved bits never echo the written value.
// Callers must hold adc.mu.
func (adc *ADS1263) writeRegisterVerified(reg Register, value byte, name string) error {
	if err := adc.writeRegister(reg, value); err != nil {
		return err
	}

	// the device needs settling time before the new value is readable
	adc.tr.Delay(time.Millisecond)

	readBack, err := adc.readRegister(reg)
	if err != nil {
		return err
	}
	if readBack == value {
		adc.log.Info().
			Str("register", name).
			Uint8("value", value).
			Msg("register configured")
		return nil
	}

	adc.log.Warn().
		Str("register", name).
		Uint8("wrote", value).
		Uint8("read", readBack).
		Msg("register write verification mismatch")
	return nil
}

// ReadAllRegisters reads every device register and returns a snapshot.
func (adc *ADS1263) ReadAllRegisters() (map[Register]byte, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	for reg := Register(0); reg < NumRegisters; reg++ {
		if _, err := adc.readRegister(reg); err != nil {
			return nil, fmt.Errorf("failed to read register 0x%02X: %w", byte(reg), err)
		}
	}
	registers := make(map[Register]byte, NumRegisters)
	for reg, val := range adc.regLR {
		registers[Register(reg)] = val
	}
	return registers, nil
}
