// Command hatread reads the ADS1263 on a Waveshare High-Precision AD HAT
// (or over an FT232H bridge) and prints voltages, RTD temperature, or raw
// register contents.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/l0nax/go-spew/spew"
	"github.com/rs/zerolog"
	ftdi "github.com/yunginnanet/ft232h"

	"github.com/yunginnanet/ads1263/pkg/ads1263"
	"github.com/yunginnanet/ads1263/pkg/ft232h"
	"github.com/yunginnanet/ads1263/pkg/rpihal"
)

var log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	log = zerolog.New(cw).With().Timestamp().Logger()
}

var pprint = spew.ConfigState{
	Indent:       "\t",
	SortKeys:     true,
	HighlightHex: true,
}

type options struct {
	transport string
	vref      float64
	diff      bool
	channels  []uint8
	interval  time.Duration

	adc2 bool
	rtd  bool
	dac  bool
	dump bool

	ftIndex int
	ftCS    uint
	ftDRDY  uint
	ftRST   uint
}

func flags() options {
	var opts options

	flag.StringVar(&opts.transport, "transport", "spidev", "transport to use (spidev or ft232h)")
	flag.Float64Var(&opts.vref, "vref", 5.08, "reference voltage (external AVDD/AVSS by default)")
	flag.BoolVar(&opts.diff, "diff", false, "differential input mode")
	chans := flag.String("channels", "0,1,2,3,4", "comma separated channel list")
	flag.DurationVar(&opts.interval, "interval", time.Second, "scan interval")
	flag.BoolVar(&opts.adc2, "adc2", false, "sweep all 10 channels on the auxiliary converter")
	flag.BoolVar(&opts.rtd, "rtd", false, "take a single PT100 RTD reading")
	flag.BoolVar(&opts.dac, "dac", false, "drive both test DAC outputs at 3 V and read them back")
	flag.BoolVar(&opts.dump, "dump", false, "dump all device registers and exit")
	flag.IntVar(&opts.ftIndex, "ft232h", 0, "FT232H device index")
	ftCS := flag.Uint("cs", 0x10, "FT232H chip select pin")
	ftDRDY := flag.Uint("drdy", 0x01, "FT232H data ready pin")
	ftRST := flag.Uint("rst", 0x40, "FT232H reset pin")
	flag.Parse()

	opts.ftCS, opts.ftDRDY, opts.ftRST = *ftCS, *ftDRDY, *ftRST

	for _, s := range strings.Split(*chans, ",") {
		ch, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
		if err != nil {
			log.Fatal().Err(err).Str("channel", s).Msg("bad channel list")
		}
		opts.channels = append(opts.channels, uint8(ch))
	}

	return opts
}

func connect(opts options) ads1263.Transport {
	switch opts.transport {
	case "spidev":
		hal, err := rpihal.New()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open spidev transport")
		}
		return hal
	case "ft232h":
		ft, err := ft232h.Connect(ft232h.ByIndex(opts.ftIndex))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to FT232H")
		}
		log.Info().Stringer("info", ft.Info()).Msg("connected to FT232H")

		spiCfg := ft.SPI.GetConfig()
		spiCfg.Clock = 1000000
		spiCfg.CS = ftdi.C(opts.ftCS)
		spiCfg.Mode = 0x00000001
		spiCfg.ActiveLow = false
		if err = ft.SPI.Config(spiCfg); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize SPI")
		}

		if err = ft.SetCSPin(opts.ftCS); err != nil {
			log.Fatal().Err(err).Msg("failed to configure CS pin")
		}
		if err = ft.SetDRDYPin(opts.ftDRDY); err != nil {
			log.Fatal().Err(err).Msg("failed to configure DRDY pin")
		}
		if err = ft.SetRSTPin(opts.ftRST); err != nil {
			log.Fatal().Err(err).Msg("failed to configure RST pin")
		}
		return ft
	default:
		log.Fatal().Str("transport", opts.transport).Msg("unknown transport")
		return nil
	}
}

func main() {
	opts := flags()

	adc := ads1263.NewADS1263(connect(opts))
	adc.SetLogger(log)

	if opts.diff {
		adc.SetMode(ads1263.Differential)
	} else {
		adc.SetMode(ads1263.SingleEnded)
	}

	switch {
	case opts.dump:
		dumpRegisters(adc)
	case opts.rtd:
		readRTD(adc)
	case opts.dac:
		driveDAC(adc, opts)
	case opts.adc2:
		sweepADC2(adc, opts)
	default:
		scanADC1(adc, opts)
	}

	if err := adc.Close(); err != nil {
		log.Fatal().Err(err).Msg("failed to close ADS1263")
	}
	log.Info().Msg("closed ADS1263")
}

func dumpRegisters(adc *ads1263.ADS1263) {
	if err := adc.InitADC1(ads1263.DRATE_400_SPS); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize ADC1")
	}
	regs, err := adc.ReadAllRegisters()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read registers")
	}
	pprint.Dump(regs)
}

func scanADC1(adc *ads1263.ADS1263, opts options) {
	if err := adc.InitADC1(ads1263.DRATE_400_SPS); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize ADC1")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scan, err := adc.ScanContinuously(ctx, opts.interval, func(ch uint8, raw uint32) {
		v := ads1263.RawToVoltageADC1(raw, opts.vref)
		log.Info().Uint8("channel", ch).Uint32("raw", raw).Float64("volts", v).Msg("sample")
	}, opts.channels...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start scan")
	}

	<-ctx.Done()
	scan.Stop()
	if err = scan.Wait(); err != nil {
		log.Error().Err(err).Msg("scan finished with errors")
	}
}

func sweepADC2(adc *ads1263.ADS1263, opts options) {
	if err := adc.InitADC2(ads1263.ADC2_DRATE_100_SPS); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize ADC2")
	}

	values, err := adc.ReadAllADC2()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to sweep ADC2 channels")
	}
	for ch, raw := range values {
		v := ads1263.RawToVoltageADC2(raw, opts.vref)
		log.Info().Int("channel", ch).Uint32("raw", raw).Float64("volts", v).Msg("sample")
	}
}

func driveDAC(adc *ads1263.ADS1263, opts options) {
	if err := adc.InitADC1(ads1263.DRATE_400_SPS); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize ADC1")
	}

	if err := adc.SetDAC(ads1263.DAC_VOLT_3, true, true); err != nil {
		log.Fatal().Err(err).Msg("failed to enable TDACP")
	}
	if err := adc.SetDAC(ads1263.DAC_VOLT_3, false, true); err != nil {
		log.Fatal().Err(err).Msg("failed to enable TDACN")
	}

	// TDACP lands on AIN6, TDACN on AIN7
	for _, ch := range []uint8{6, 7} {
		raw, err := adc.ChannelValue(ch)
		if err != nil {
			log.Fatal().Err(err).Uint8("channel", ch).Msg("failed to read DAC output")
		}
		v := ads1263.RawToVoltageADC1(raw, opts.vref)
		log.Info().Uint8("channel", ch).Uint32("raw", raw).Float64("volts", v).Msg("DAC output")
	}

	if err := adc.SetDAC(ads1263.DAC_VOLT_3, true, false); err != nil {
		log.Fatal().Err(err).Msg("failed to disable TDACP")
	}
	if err := adc.SetDAC(ads1263.DAC_VOLT_3, false, false); err != nil {
		log.Fatal().Err(err).Msg("failed to disable TDACN")
	}
}

func readRTD(adc *ads1263.ADS1263) {
	if err := adc.InitADC1(ads1263.DRATE_20_SPS); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize ADC1")
	}

	raw, err := adc.ReadRTD(ads1263.DELAY_35US, ads1263.GAIN_1, ads1263.DRATE_20_SPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read RTD")
	}

	res := ads1263.RTDToResistance(raw, 2000.0)
	temp := ads1263.PT100ToCelsius(res)
	log.Info().
		Uint32("raw", raw).
		Float64("ohms", res).
		Float64("celsius", temp).
		Msg("RTD reading")
}
