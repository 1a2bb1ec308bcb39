package world

import (
	"fmt"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/physics"
)

type CommandKind int

const (
	CmdReset CommandKind = iota
	CmdSetInitialAngles
	CmdPerturbTheta1
	CmdLaunchAt
	CmdTogglePause
)

var commandNames = map[CommandKind]string{
	CmdReset:            "reset",
	CmdSetInitialAngles: "set_initial_angles",
	CmdPerturbTheta1:    "perturb_theta1",
	CmdLaunchAt:         "launch",
	CmdTogglePause:      "toggle_pause",
}

func (k CommandKind) String() string {
	if n, ok := commandNames[k]; ok {
		return n
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

func ParseCommandKind(s string) (CommandKind, error) {
	for k, n := range commandNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", dynamo.ErrUnknownCommand, s)
}

// Command is an input event applied between steps. Only the fields used
// by Kind are read.
type Command struct {
	Kind   CommandKind
	Theta1 float64
	Theta2 float64
	X      float64
}

func (c Command) String() string {
	switch c.Kind {
	case CmdSetInitialAngles:
		return fmt.Sprintf("%s(%.4f, %.4f)", c.Kind, c.Theta1, c.Theta2)
	case CmdPerturbTheta1:
		return fmt.Sprintf("%s(%.4f)", c.Kind, c.Theta1)
	case CmdLaunchAt:
		return fmt.Sprintf("%s(%.1f)", c.Kind, c.X)
	}
	return c.Kind.String()
}

func (w *World) Apply(cmd Command) error {
	switch cmd.Kind {
	case CmdReset:
		return w.Reset()
	case CmdSetInitialAngles:
		return w.SetInitialAngles(cmd.Theta1, cmd.Theta2)
	case CmdPerturbTheta1:
		return w.PerturbTheta1(cmd.Theta1)
	case CmdLaunchAt:
		return w.LaunchFireworkAt(cmd.X)
	case CmdTogglePause:
		w.TogglePause()
		return nil
	}
	return fmt.Errorf("%w: %v", dynamo.ErrUnknownCommand, cmd.Kind)
}

// Reset rebuilds the world from its seed. Initial angles set through
// SetInitialAngles and bodies added through AddBody are kept.
func (w *World) Reset() error {
	if err := w.build(); err != nil {
		return err
	}
	w.logger.Debug("world reset", "seed", w.cfg.Seed, "bodies", len(w.bodies))
	return nil
}

// SetInitialAngles stores the angles used by this and every later reset
// and restarts the oscillator from them.
func (w *World) SetInitialAngles(theta1, theta2 float64) error {
	if w.osc == nil {
		return dynamo.ErrNoOscillator
	}
	w.theta1, w.theta2 = theta1, theta2
	w.osc.SetInitialAngles(theta1, theta2)
	return nil
}

// PerturbTheta1 redirects the upper arm and stops both arms; theta2 keeps
// its current value.
func (w *World) PerturbTheta1(theta1 float64) error {
	if w.osc == nil {
		return dynamo.ErrNoOscillator
	}
	w.osc.PerturbTheta1(theta1)
	return nil
}

// PointerAngle maps a screen point to the theta1 a click there selects.
func (w *World) PointerAngle(x, y float64) float64 {
	return physics.AngleFromPointer(x-w.pivot.X(), y-w.pivot.Y())
}

// LaunchFireworkAt sends a rocket up from the floor at x.
func (w *World) LaunchFireworkAt(x float64) error {
	e, err := w.spawner.LaunchAt(w.rng, x)
	if err != nil {
		return fmt.Errorf("launch at %.1f: %w", x, err)
	}
	w.addEmitter(e)
	return nil
}

// TogglePause flips the pause flag and returns the new value.
func (w *World) TogglePause() bool {
	w.paused = !w.paused
	w.logger.Debug("pause toggled", "paused", w.paused)
	return w.paused
}
