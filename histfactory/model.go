// Package histfactory assembles statistical measurements (channels, samples,
// systematics) and hands them to a model-construction engine to produce
// fit-ready workspaces. The numerical machinery itself (likelihood
// construction, interpolation, fitting) lives behind the Engine, Factory and
// ConfigParser interfaces; this package only owns the assembly conventions
// and the shape/normalization factorization of systematics.
package histfactory

import "github.com/qbuat/rootgo/hist"

// StatErrorConfig controls how per-bin statistical uncertainties on a
// channel's samples enter the model.
type StatErrorConfig struct {
	// RelErrThreshold is the relative error below which a bin's statistical
	// uncertainty is ignored.
	RelErrThreshold float64
	// ConstraintType names the constraint model, e.g. "Poisson" or
	// "Gaussian".
	ConstraintType string
}

// HistoSys is a shape systematic: a named variation expressed as paired
// down/up histograms around a sample's nominal.
type HistoSys struct {
	Name string
	Low  hist.Histogram
	High hist.Histogram
}

// OverallSys is a normalization systematic: a named variation expressed as
// paired down/up scale factors on a sample's total yield.
type OverallSys struct {
	Name string
	Low  float64
	High float64
}

// NormFactor is a free (or fixed) multiplicative parameter on a sample's
// yield, typically the parameter of interest.
type NormFactor struct {
	Name  string
	Val   float64
	Low   float64
	High  float64
	Const bool
}

// Sample is one contribution to a channel: a nominal histogram plus the
// systematics attached to it.
type Sample struct {
	Name        string
	Hist        hist.Histogram
	HistoSys    []HistoSys
	OverallSys  []OverallSys
	NormFactors []NormFactor
}

// AddHistoSys attaches a shape systematic to the sample.
func (s *Sample) AddHistoSys(sys HistoSys) {
	s.HistoSys = append(s.HistoSys, sys)
}

// AddOverallSys attaches a normalization systematic to the sample.
func (s *Sample) AddOverallSys(sys OverallSys) {
	s.OverallSys = append(s.OverallSys, sys)
}

// AddNormFactor attaches a yield parameter to the sample.
func (s *Sample) AddNormFactor(nf NormFactor) {
	s.NormFactors = append(s.NormFactors, nf)
}

// clone deep-copies the sample, cloning histograms so no storage is shared.
func (s *Sample) clone() *Sample {
	out := &Sample{Name: s.Name}
	if s.Hist != nil {
		out.Hist = s.Hist.Clone("")
	}
	for _, sys := range s.HistoSys {
		cp := HistoSys{Name: sys.Name}
		if sys.Low != nil {
			cp.Low = sys.Low.Clone("")
		}
		if sys.High != nil {
			cp.High = sys.High.Clone("")
		}
		out.HistoSys = append(out.HistoSys, cp)
	}
	out.OverallSys = append(out.OverallSys, s.OverallSys...)
	out.NormFactors = append(out.NormFactors, s.NormFactors...)
	return out
}

// Channel is one analysis bin/category: its samples, optional observed
// data, and the statistical-error configuration for its bins.
type Channel struct {
	name    string
	samples []*Sample
	data    hist.Histogram

	StatError StatErrorConfig
}

// NewChannel creates an empty channel. Callers normally go through
// MakeChannel, which applies the standard naming and defaults.
func NewChannel(name string) *Channel {
	return &Channel{name: name}
}

func (c *Channel) Name() string { return c.name }

// SetStatErrorConfig sets the statistical-error model for the channel's
// bins.
func (c *Channel) SetStatErrorConfig(relErrThreshold float64, constraintType string) {
	c.StatError = StatErrorConfig{
		RelErrThreshold: relErrThreshold,
		ConstraintType:  constraintType,
	}
}

// SetData attaches the observed dataset.
func (c *Channel) SetData(data hist.Histogram) { c.data = data }

// Data returns the observed dataset, or nil if none was attached.
func (c *Channel) Data() hist.Histogram { return c.data }

// AddSample appends a sample contribution. Order is preserved.
func (c *Channel) AddSample(s *Sample) {
	c.samples = append(c.samples, s)
}

// Samples returns the channel's sample contributions in insertion order.
func (c *Channel) Samples() []*Sample { return c.samples }

// Clone deep-copies the channel, its data and its samples.
func (c *Channel) Clone() *Channel {
	out := &Channel{name: c.name, StatError: c.StatError}
	if c.data != nil {
		out.data = c.data.Clone("")
	}
	for _, s := range c.samples {
		out.samples = append(out.samples, s.clone())
	}
	return out
}

// Measurement is a complete fit specification: channels, luminosity,
// parameters of interest, and parameters held constant during the fit.
type Measurement struct {
	name         string
	outputPrefix string

	Lumi         float64
	LumiRelError float64

	poi         []string
	channels    []*Channel
	constParams []string
}

// NewMeasurement creates an empty measurement. Callers normally go through
// MakeMeasurement, which applies the standard naming and defaults.
func NewMeasurement(name string) *Measurement {
	return &Measurement{name: name}
}

func (m *Measurement) Name() string        { return m.name }
func (m *Measurement) SetName(name string) { m.name = name }

// SetOutputFilePrefix sets the path prefix under which the engine writes its
// outputs.
func (m *Measurement) SetOutputFilePrefix(prefix string) { m.outputPrefix = prefix }

// OutputFilePrefix returns the configured output path prefix.
func (m *Measurement) OutputFilePrefix() string { return m.outputPrefix }

// SetPOI replaces the parameter-of-interest list with the single given name.
func (m *Measurement) SetPOI(name string) {
	m.poi = []string{name}
}

// AddPOI appends a parameter of interest.
func (m *Measurement) AddPOI(name string) {
	m.poi = append(m.poi, name)
}

// POI returns the parameters of interest in insertion order.
func (m *Measurement) POI() []string { return m.poi }

// AddChannel attaches a deep copy of the channel to the measurement. The
// measurement owns its channels outright, so no channel is ever shared
// across measurements.
func (m *Measurement) AddChannel(c *Channel) {
	m.channels = append(m.channels, c.Clone())
}

// Channels returns the measurement's channels in insertion order.
func (m *Measurement) Channels() []*Channel { return m.channels }

// Channel returns the named channel, or nil if the measurement has none by
// that name.
func (m *Measurement) Channel(name string) *Channel {
	for _, c := range m.channels {
		if c.name == name {
			return c
		}
	}
	return nil
}

// AddConstantParam marks a parameter as held constant during the fit.
func (m *Measurement) AddConstantParam(name string) {
	m.constParams = append(m.constParams, name)
}

// ConstantParams returns the parameters held constant during the fit.
func (m *Measurement) ConstantParams() []string { return m.constParams }

// Clone deep-copies the measurement and everything it owns. Parsed
// measurements are cloned before their parser's internal holder goes away.
func (m *Measurement) Clone() *Measurement {
	out := &Measurement{
		name:         m.name,
		outputPrefix: m.outputPrefix,
		Lumi:         m.Lumi,
		LumiRelError: m.LumiRelError,
	}
	out.poi = append(out.poi, m.poi...)
	out.constParams = append(out.constParams, m.constParams...)
	for _, c := range m.channels {
		out.channels = append(out.channels, c.Clone())
	}
	return out
}
