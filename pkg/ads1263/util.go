package ads1263

// The raw codes are not plain two's-complement integers. The sign lives in
// the MSB of the nominal width (bit 31 for ADC1, bit 23 for ADC2) and the
// negative branch divides by the half-scale power of two while the positive
// branch divides by full scale minus one. The mapping below reproduces the
// datasheet arithmetic bit for bit.

// RawToVoltageADC1 converts a raw 32-bit ADC1 code to volts against the
// given reference voltage.
func RawToVoltageADC1(raw uint32, vref float64) float64 {
	if (raw >> 31) == 1 {
		return -(vref*2.0 - (float64(raw)/2147483648.0)*vref)
	}
	return (float64(raw) / 2147483647.0) * vref
}

// RawToVoltageADC2 converts a raw 24-bit ADC2 code to volts against the
// given reference voltage.
func RawToVoltageADC2(raw uint32, vref float64) float64 {
	if (raw >> 23) == 1 {
		return -(vref*2.0 - (float64(raw)/8388608.0)*vref)
	}
	return (float64(raw) / 8388607.0) * vref
}

// RTDToResistance converts a raw code from ReadRTD to ohms. rref is the
// reference resistor value; the factor 2 accounts for the dual current
// source excitation topology.
func RTDToResistance(raw uint32, rref float64) float64 {
	return (float64(raw) / 2147483647.0) * 2.0 * rref
}

// PT100ToCelsius converts a PT100 resistance to degrees Celsius using the
// linear alpha = 0.00385 approximation. This is not the full
// Callendar-Van Dusen correction; expect growing error away from 0 degrees.
func PT100ToCelsius(resistance float64) float64 {
	return (resistance/100.0 - 1.0) / 0.00385
}
