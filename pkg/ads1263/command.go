package ads1263

import "errors"

func (adc *ADS1263) setCSLow() error {
	return adc.tr.SetCS(false)
}

func (adc *ADS1263) setCSHigh() error {
	return adc.tr.SetCS(true)
}

// sendCommand transmits a single opcode framed by chip select.
// Callers must hold adc.mu.
func (adc *ADS1263) sendCommand(cmd Command) error {
	if err := adc.setCSLow(); err != nil {
		return err
	}
	if err := adc.tr.WriteByte(byte(cmd)); err != nil {
		return errors.Join(err, adc.setCSHigh())
	}
	return adc.setCSHigh()
}
