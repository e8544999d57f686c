package ads1263

import "time"

// ReadRTD configures the excitation current sources and mux for an RTD
// measurement and takes one conversion. The settling waits after each
// register write matter; the analog paths need time to stabilize and
// omitting them corrupts the first sample.
//
// Wiring assumed: current source 1 on AIN3, source 2 on AINCOM, RTD sense
// across AIN7/AIN6, reference resistor across AIN4/AIN5.
func (adc *ADS1263) ReadRTD(delay Delay, gain Gain, drate DataRate) (uint32, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()

	// MODE0: conversion delay, chop off
	if err := adc.writeRegister(RegMODE0, byte(delay)); err != nil {
		return 0, err
	}
	adc.tr.Delay(time.Millisecond)

	// IDACMUX: IDAC2 to AINCOM, IDAC1 to AIN3
	if err := adc.writeRegister(RegIDACMUX, (0x0A<<4)|0x03); err != nil {
		return 0, err
	}
	adc.tr.Delay(time.Millisecond)

	// IDACMAG: IDAC2 = IDAC1 = 250uA
	if err := adc.writeRegister(RegIDACMAG, (0x03<<4)|0x03); err != nil {
		return 0, err
	}
	adc.tr.Delay(time.Millisecond)

	// MODE2: gain | data rate
	if err := adc.writeRegister(RegMODE2, (byte(gain)<<4)|byte(drate)); err != nil {
		return 0, err
	}
	adc.tr.Delay(time.Millisecond)

	// INPMUX: AINP = AIN7, AINN = AIN6
	if err := adc.writeRegister(RegINPMUX, (0x07<<4)|0x06); err != nil {
		return 0, err
	}
	adc.tr.Delay(time.Millisecond)

	// REFMUX: external reference on AIN4/AIN5
	if err := adc.writeRegister(RegREFMUX, (0x03<<3)|0x03); err != nil {
		return 0, err
	}
	adc.tr.Delay(time.Millisecond)

	if err := adc.sendCommand(CMDSTART1); err != nil {
		return 0, err
	}
	adc.tr.Delay(10 * time.Millisecond)

	if err := adc.tr.WaitDRDY(); err != nil {
		return 0, err
	}

	value, err := adc.readADC1Data()
	if err != nil {
		return 0, err
	}

	return value, adc.sendCommand(CMDSTOP1)
}

// SetDAC drives one of the two test DAC outputs used for sensor biasing.
// positive selects TDACP (AIN6), otherwise TDACN (AIN7). Disabling writes
// zero. No verification pass is applied here.
func (adc *ADS1263) SetDAC(voltage DACVoltage, positive, enable bool) error {
	adc.mu.Lock()
	defer adc.mu.Unlock()

	reg := RegTDACN
	if positive {
		reg = RegTDACP
	}

	var value byte
	if enable {
		value = byte(voltage) | dacEnableBit
	}

	if err := adc.writeRegister(reg, value); err != nil {
		return err
	}

	adc.log.Debug().
		Bool("positive", positive).
		Bool("enable", enable).
		Uint8("code", byte(voltage)).
		Msg("DAC output set")
	return nil
}
