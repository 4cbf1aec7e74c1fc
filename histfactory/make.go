package histfactory

import (
	"log"
	"strings"

	"github.com/qbuat/rootgo/hist"
)

// Defaults applied by MakeChannel and MakeMeasurement.
const (
	DefaultStatRelErrThreshold = 0.05
	DefaultStatConstraintType  = "Poisson"
	DefaultOutputPrefix        = "./histfactory"
)

// MeasurementConfig carries the optional settings of MakeMeasurement and
// MakeWorkspace. The zero value selects the defaults: lumi 1.0 with no
// uncertainty, the standard output prefix, no POI and no constant
// parameters.
type MeasurementConfig struct {
	Lumi         float64
	LumiRelError float64
	OutputPrefix string

	// POI lists the parameters of interest. A single-element list sets one
	// POI; every further element is added as an additional POI.
	POI []string

	// ConstParams are held constant during the fit.
	ConstParams []string
}

// MakeChannel creates a Channel from a list of Samples and optional observed
// data. The channel name is prefixed with "channel_" so that names beginning
// with a digit stay valid engine identifiers, and the statistical-error
// configuration is set to the standard 5% Poisson threshold.
func MakeChannel(name string, samples []*Sample, data hist.Histogram) *Channel {
	log.Printf("creating channel %s", name)

	ch := NewChannel("channel_" + name)
	ch.SetStatErrorConfig(DefaultStatRelErrThreshold, DefaultStatConstraintType)

	if data != nil {
		log.Println("setting data")
		ch.SetData(data)
	}

	for _, sample := range samples {
		log.Printf("adding sample %s", sample.Name)
		ch.AddSample(sample)
	}

	return ch
}

// MakeMeasurement creates a Measurement named "measurement_<name>" from a
// list of Channels. Malformed inputs are not validated here; the engine
// consuming the measurement reports them.
func MakeMeasurement(name string, channels []*Channel, cfg MeasurementConfig) *Measurement {
	log.Printf("creating measurement %s", name)

	if cfg.Lumi == 0 {
		cfg.Lumi = 1.0
	}
	if cfg.OutputPrefix == "" {
		cfg.OutputPrefix = DefaultOutputPrefix
	}

	meas := NewMeasurement("measurement_" + name)
	meas.SetOutputFilePrefix(cfg.OutputPrefix)

	switch len(cfg.POI) {
	case 0:
	case 1:
		log.Printf("setting POI %s", cfg.POI[0])
		meas.SetPOI(cfg.POI[0])
	default:
		log.Printf("adding POIs %s", strings.Join(cfg.POI, ", "))
		for _, p := range cfg.POI {
			meas.AddPOI(p)
		}
	}

	log.Printf("setting lumi=%f +/- %f", cfg.Lumi, cfg.LumiRelError)
	meas.Lumi = cfg.Lumi
	meas.LumiRelError = cfg.LumiRelError

	for _, channel := range channels {
		log.Printf("adding channel %s", channel.Name())
		meas.AddChannel(channel)
	}

	if len(cfg.ConstParams) > 0 {
		log.Printf("adding constant parameters %s", strings.Join(cfg.ConstParams, ", "))
		for _, param := range cfg.ConstParams {
			meas.AddConstantParam(param)
		}
	}

	return meas
}
