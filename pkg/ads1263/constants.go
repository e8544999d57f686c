package ads1263

// Constants from the datasheet

// Register is an 8-bit address into the device configuration/calibration space.
type Register byte

// Register Addresses (0x00 through 0x1A)
const (
	// RegID is the device ID register
	RegID Register = 0x00
	// RegPOWER is the power control register
	RegPOWER Register = 0x01
	// RegINTERFACE is the interface configuration register
	RegINTERFACE Register = 0x02
	// RegMODE0 is the mode 0 register (conversion delay, chop)
	RegMODE0 Register = 0x03
	// RegMODE1 is the mode 1 register (digital filter)
	RegMODE1 Register = 0x04
	// RegMODE2 is the mode 2 register (PGA bypass, gain, data rate)
	RegMODE2 Register = 0x05
	// RegINPMUX is the ADC1 input multiplexer register
	RegINPMUX Register = 0x06
	// RegOFCAL0 is offset calibration byte 0
	RegOFCAL0 Register = 0x07
	// RegOFCAL1 is offset calibration byte 1
	RegOFCAL1 Register = 0x08
	// RegOFCAL2 is offset calibration byte 2
	RegOFCAL2 Register = 0x09
	// RegFSCAL0 is full-scale calibration byte 0
	RegFSCAL0 Register = 0x0A
	// RegFSCAL1 is full-scale calibration byte 1
	RegFSCAL1 Register = 0x0B
	// RegFSCAL2 is full-scale calibration byte 2
	RegFSCAL2 Register = 0x0C
	// RegIDACMUX is the excitation current source multiplexer register
	RegIDACMUX Register = 0x0D
	// RegIDACMAG is the excitation current source magnitude register
	RegIDACMAG Register = 0x0E
	// RegREFMUX is the reference multiplexer register
	RegREFMUX Register = 0x0F
	// RegTDACP is the positive test DAC output register (AIN6)
	RegTDACP Register = 0x10
	// RegTDACN is the negative test DAC output register (AIN7)
	RegTDACN Register = 0x11
	// RegGPIOCON is the GPIO connection register
	RegGPIOCON Register = 0x12
	// RegGPIODIR is the GPIO direction register
	RegGPIODIR Register = 0x13
	// RegGPIODAT is the GPIO data register
	RegGPIODAT Register = 0x14
	// RegADC2CFG is the ADC2 configuration register (reference, data rate, gain)
	RegADC2CFG Register = 0x15
	// RegADC2MUX is the ADC2 input multiplexer register
	RegADC2MUX Register = 0x16
	// RegADC2OFC0 is ADC2 offset calibration byte 0
	RegADC2OFC0 Register = 0x17
	// RegADC2OFC1 is ADC2 offset calibration byte 1
	RegADC2OFC1 Register = 0x18
	// RegADC2FSC0 is ADC2 full-scale calibration byte 0
	RegADC2FSC0 Register = 0x19
	// RegADC2FSC1 is ADC2 full-scale calibration byte 1
	RegADC2FSC1 Register = 0x1A

	// NumRegisters is the total number of registers.
	NumRegisters = 0x1B // 27 total (0x00 through 0x1A)
)

// Command is an 8-bit opcode. CMDRREG and CMDWREG are base values that must
// be ORed with a register address before transmission.
type Command byte

// Command Opcodes
const (
	CMDRESET   Command = 0x06
	CMDSTART1  Command = 0x08
	CMDSTOP1   Command = 0x0A
	CMDSTART2  Command = 0x0C
	CMDSTOP2   Command = 0x0E
	CMDRDATA1  Command = 0x12
	CMDRDATA2  Command = 0x14
	CMDSYOCAL1 Command = 0x16 // ADC1 system offset calibration
	CMDSYGCAL1 Command = 0x17 // ADC1 system gain calibration
	CMDSFOCAL1 Command = 0x19 // ADC1 self offset calibration
	CMDSYOCAL2 Command = 0x1B // ADC2 system offset calibration
	CMDSYGCAL2 Command = 0x1C // ADC2 system gain calibration
	CMDSFOCAL2 Command = 0x1E // ADC2 self offset calibration
	CMDRREG    Command = 0x20 // 0x20 | reg
	CMDWREG    Command = 0x40 // 0x40 | reg
)

// Gain holds ADC1 PGA gain settings for bits 4-6 of MODE2.
type Gain byte

//goland:noinspection GoSnakeCaseUsage
const (
	GAIN_1  Gain = 0x00
	GAIN_2  Gain = 0x01
	GAIN_4  Gain = 0x02
	GAIN_8  Gain = 0x03
	GAIN_16 Gain = 0x04
	GAIN_32 Gain = 0x05
	GAIN_64 Gain = 0x06
)

// DataRate holds ADC1 data rate settings for bits 0-3 of MODE2.
// The faster the rate, the worse the stability.
type DataRate byte

//goland:noinspection GoSnakeCaseUsage
const (
	DRATE_2P5_SPS   DataRate = 0x00
	DRATE_5_SPS     DataRate = 0x01
	DRATE_10_SPS    DataRate = 0x02
	DRATE_16P6_SPS  DataRate = 0x03
	DRATE_20_SPS    DataRate = 0x04
	DRATE_50_SPS    DataRate = 0x05
	DRATE_60_SPS    DataRate = 0x06
	DRATE_100_SPS   DataRate = 0x07
	DRATE_400_SPS   DataRate = 0x08
	DRATE_1200_SPS  DataRate = 0x09
	DRATE_2400_SPS  DataRate = 0x0A
	DRATE_4800_SPS  DataRate = 0x0B
	DRATE_7200_SPS  DataRate = 0x0C
	DRATE_14400_SPS DataRate = 0x0D
	DRATE_19200_SPS DataRate = 0x0E
	DRATE_38400_SPS DataRate = 0x0F
)

// ADC2Gain holds ADC2 PGA gain settings for bits 0-2 of ADC2CFG.
type ADC2Gain byte

//goland:noinspection GoSnakeCaseUsage
const (
	ADC2_GAIN_1   ADC2Gain = 0x00
	ADC2_GAIN_2   ADC2Gain = 0x01
	ADC2_GAIN_4   ADC2Gain = 0x02
	ADC2_GAIN_8   ADC2Gain = 0x03
	ADC2_GAIN_16  ADC2Gain = 0x04
	ADC2_GAIN_32  ADC2Gain = 0x05
	ADC2_GAIN_64  ADC2Gain = 0x06
	ADC2_GAIN_128 ADC2Gain = 0x07
)

// ADC2DataRate holds ADC2 data rate settings for bits 6-7 of ADC2CFG.
type ADC2DataRate byte

//goland:noinspection GoSnakeCaseUsage
const (
	ADC2_DRATE_10_SPS  ADC2DataRate = 0x00
	ADC2_DRATE_100_SPS ADC2DataRate = 0x01
	ADC2_DRATE_400_SPS ADC2DataRate = 0x02
	ADC2_DRATE_800_SPS ADC2DataRate = 0x03
)

// Delay holds conversion start delay settings for MODE0.
type Delay byte

//goland:noinspection GoSnakeCaseUsage
const (
	DELAY_NONE   Delay = 0x00
	DELAY_8P7US  Delay = 0x01
	DELAY_17US   Delay = 0x02
	DELAY_35US   Delay = 0x03
	DELAY_169US  Delay = 0x04
	DELAY_139US  Delay = 0x05
	DELAY_278US  Delay = 0x06
	DELAY_555US  Delay = 0x07
	DELAY_1P1MS  Delay = 0x08
	DELAY_2P2MS  Delay = 0x09
	DELAY_4P4MS  Delay = 0x0A
	DELAY_8P8MS  Delay = 0x0B
)

// DigitalFilter holds ADC1 digital filter selections for MODE1.
type DigitalFilter byte

//goland:noinspection GoSnakeCaseUsage
const (
	FILTER_SINC1 DigitalFilter = 0x04
	FILTER_SINC2 DigitalFilter = 0x24
	FILTER_SINC3 DigitalFilter = 0x44
	FILTER_SINC4 DigitalFilter = 0x64
	// FILTER_FIR gives the best 50/60 Hz line noise rejection.
	FILTER_FIR DigitalFilter = 0x84
)

// RefSource holds reference multiplexer selections for REFMUX.
type RefSource byte

//goland:noinspection GoSnakeCaseUsage
const (
	REF_INTERNAL_2P5V RefSource = 0x00
	REF_EXT_AIN0_AIN1 RefSource = 0x09
	REF_EXT_AIN2_AIN3 RefSource = 0x12
	REF_EXT_AIN4_AIN5 RefSource = 0x1B
	REF_AVDD_AVSS     RefSource = 0x24
)

// DACVoltage holds TDAC output level codes for TDACP/TDACN.
type DACVoltage byte

//goland:noinspection GoSnakeCaseUsage
const (
	DAC_VOLT_4_5       DACVoltage = 0b01001
	DAC_VOLT_3_5       DACVoltage = 0b01000
	DAC_VOLT_3         DACVoltage = 0b00111
	DAC_VOLT_2_75      DACVoltage = 0b00110
	DAC_VOLT_2_625     DACVoltage = 0b00101
	DAC_VOLT_2_5625    DACVoltage = 0b00100
	DAC_VOLT_2_53125   DACVoltage = 0b00011
	DAC_VOLT_2_515625  DACVoltage = 0b00010
	DAC_VOLT_2_5078125 DACVoltage = 0b00001
	DAC_VOLT_2_5       DACVoltage = 0b00000
	DAC_VOLT_2_4921875 DACVoltage = 0b10001
	DAC_VOLT_2_484375  DACVoltage = 0b10010
	DAC_VOLT_2_46875   DACVoltage = 0b10011
	DAC_VOLT_2_4375    DACVoltage = 0b10100
	DAC_VOLT_2_375     DACVoltage = 0b10101
	DAC_VOLT_2_25      DACVoltage = 0b10110
	DAC_VOLT_2         DACVoltage = 0b10111
	DAC_VOLT_1_5       DACVoltage = 0b11000
	DAC_VOLT_0_5       DACVoltage = 0b11001
)

// InputMode selects how channel indexes map onto the input multiplexer.
type InputMode int

const (
	// SingleEnded measures AIN0..AIN9 against AINCOM (channels 0-10).
	SingleEnded InputMode = iota
	// Differential measures fixed pin pairs AIN0-AIN1 .. AIN8-AIN9 (channels 0-4).
	Differential
)

func (m InputMode) String() string {
	switch m {
	case SingleEnded:
		return "single-ended"
	case Differential:
		return "differential"
	default:
		return "(invalid input mode)"
	}
}

const (
	// expectedChipID is the part-number field of RegID for the ADS1263.
	expectedChipID = 1

	// muxVCOM is the common-reference nibble packed into the mux low bits
	// for single-ended reads.
	muxVCOM = 0x0A

	// checksumOffset is the fixed byte added to the wrapping byte sum of
	// each data frame.
	checksumOffset = 0x9B

	// adc1StatusReady is the in-frame status bit signalling a valid ADC1 frame.
	adc1StatusReady = 0x40
	// adc2StatusReady is the in-frame status bit signalling a valid ADC2 frame.
	adc2StatusReady = 0x80

	// dacEnableBit enables a TDAC output when ORed with a DACVoltage code.
	dacEnableBit = 0x80

	// MaxSingleEndedChannel is the highest single-ended channel index.
	MaxSingleEndedChannel = 10
	// MaxDifferentialChannel is the highest differential pair index.
	MaxDifferentialChannel = 4
)
