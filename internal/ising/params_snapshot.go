package ising

import "ising-mc/internal/core"

// Parameters returns the configuration and live readouts for display.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.IntParam("w", "Width", s.cfg.Width),
				core.IntParam("h", "Height", s.cfg.Height),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
				core.BoolParam("random", "Random start", s.cfg.Randomize),
			},
		},
		{
			Name: "Schedule",
			Params: []core.Parameter{
				core.StringParam("mode", "Mode", s.cfg.Mode.String()),
				core.FloatParam("target", "Target", s.cfg.Target),
				core.FloatParam("increment", "Increment", s.cfg.Increment),
				core.IntParam("block", "Block size", s.cfg.BlockSize),
				core.IntParam("trials", "Trials per step", s.cfg.Trials()),
			},
		},
		{
			Name: "Readout",
			Params: []core.Parameter{
				core.FloatParam("temperature", "Temperature", s.readout.Temperature),
				core.FloatParam("field", "Field", s.readout.Field),
				core.FloatParam("magnetization", "Magnetization", s.readout.Magnetization),
				core.FloatParam("order", "Order parameter", s.readout.OrderParameter),
				core.IntParam("step", "Step", s.step),
				core.IntParam("samples", "Samples", s.agg.Blocks()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}
