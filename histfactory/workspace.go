package histfactory

import (
	"github.com/carbocation/pfx"
)

// Workspace is the constructed statistical model, ready for fitting. The
// concrete type is whatever the engine produces.
type Workspace interface {
	Name() string
	SetName(name string)
}

// Engine is the model-construction capability of the wrapped statistical
// framework. It offers a single-call fast path and a two-step factory path.
type Engine interface {
	// MakeModelAndMeasurementFast builds the combined model across all of
	// the measurement's channels in one call.
	MakeModelAndMeasurementFast(m *Measurement) (Workspace, error)

	// NewFactory prepares the two-step construction path for a measurement.
	NewFactory(m *Measurement) (Factory, error)
}

// Factory is the two-step construction path: one model per channel, or the
// combined model over all channels.
type Factory interface {
	SingleChannelModel(m *Measurement, channel *Channel) (Workspace, error)
	CombinedModel(m *Measurement) (Workspace, error)
}

// Model couples a constructed workspace to the measurement that produced
// it. Engine-side workspaces may hold internal references into their source
// measurement, so the measurement must stay reachable for the workspace's
// whole lifetime; keeping both in one value makes that explicit.
type Model struct {
	Workspace
	Measurement *Measurement
}

// MakeModels creates a workspace containing all models for a measurement via
// the engine's fast path. If silence is true, the engine's console output is
// suppressed for the duration of the call.
func MakeModels(engine Engine, m *Measurement, silence bool) (Workspace, error) {
	var ws Workspace
	err := maybeSilenced(silence, func() error {
		var err error
		ws, err = engine.MakeModelAndMeasurementFast(m)
		return err
	})
	if err != nil {
		return nil, pfx.Err(err)
	}
	return ws, nil
}

// MakeModel creates a workspace containing the model for a measurement via
// the engine's two-step factory. If channel is nil, all channels are
// included. If silence is true, the engine's console output is suppressed
// for the duration of the call.
//
// The returned Model retains the measurement; keep the Model alive (not just
// its embedded Workspace) while the workspace is in use.
func MakeModel(engine Engine, m *Measurement, channel *Channel, silence bool) (*Model, error) {
	var ws Workspace
	err := maybeSilenced(silence, func() error {
		factory, err := engine.NewFactory(m)
		if err != nil {
			return err
		}
		if channel != nil {
			ws, err = factory.SingleChannelModel(m, channel)
		} else {
			ws, err = factory.CombinedModel(m)
		}
		return err
	})
	if err != nil {
		return nil, pfx.Err(err)
	}
	return &Model{Workspace: ws, Measurement: m}, nil
}

// MakeWorkspace assembles a measurement from the given channels and builds
// its combined model, naming the result "workspace_<name>". It returns the
// model together with the measurement it was built from.
func MakeWorkspace(engine Engine, name string, channels []*Channel, cfg MeasurementConfig, silence bool) (*Model, *Measurement, error) {
	measurement := MakeMeasurement(name, channels, cfg)
	model, err := MakeModel(engine, measurement, nil, silence)
	if err != nil {
		return nil, nil, err
	}
	model.SetName("workspace_" + name)
	return model, measurement, nil
}

func maybeSilenced(silence bool, fn func() error) error {
	if silence {
		return Silenced(fn)
	}
	return fn()
}
