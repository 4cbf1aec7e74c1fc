package histfactory

import (
	"fmt"

	"github.com/qbuat/rootgo/hist"
)

// SplitNormShape splits a shape systematic into a normalization (OverallSys)
// component and a residual shape (HistoSys) component.
//
// Normalization systematics interpolate with continuity up to the second
// derivative, so factoring the overall-yield variation out of a shape
// systematic and leaving only the residual shape improves fit stability.
//
// Integrals include the underflow and overflow bins. The OverallSys carries
// the up/down total-yield ratios relative to nominal; the returned HistoSys
// holds the up/down histograms each rescaled to the nominal integral, under
// new names carrying a "_shape" suffix. Both outputs keep the input
// systematic's name. A zero integral on the nominal or on either variation
// makes the rescaling undefined and is reported as an error.
func SplitNormShape(sys HistoSys, nominal hist.Histogram) (OverallSys, HistoSys, error) {
	up := sys.High.Clone(sys.High.Name() + "_shape")
	dn := sys.Low.Clone(sys.Low.Name() + "_shape")

	nNominal := nominal.Integral()
	nUp := up.Integral()
	nDn := dn.Integral()

	if nNominal == 0 {
		return OverallSys{}, HistoSys{}, fmt.Errorf(
			"histfactory: cannot split systematic %q: nominal histogram %q has zero integral", sys.Name, nominal.Name())
	}
	if nUp == 0 || nDn == 0 {
		return OverallSys{}, HistoSys{}, fmt.Errorf(
			"histfactory: cannot split systematic %q: variation integrals up=%g down=%g must be nonzero", sys.Name, nUp, nDn)
	}

	up.Scale(nNominal / nUp)
	dn.Scale(nNominal / nDn)

	norm := OverallSys{
		Name: sys.Name,
		Low:  nDn / nNominal,
		High: nUp / nNominal,
	}
	shape := HistoSys{
		Name: sys.Name,
		Low:  dn,
		High: up,
	}
	return norm, shape, nil
}
