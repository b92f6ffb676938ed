package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blochwalk/blochwalk/internal/adapters/clients"
	"github.com/blochwalk/blochwalk/internal/adapters/clients/walkapi"
	"github.com/blochwalk/blochwalk/internal/adapters/render"
	"github.com/blochwalk/blochwalk/internal/domain"
	"github.com/blochwalk/blochwalk/internal/platform/config"
)

// gateSpec is a parsed command-line gate argument. Angles are in
// degrees, nil when the gate takes none.
type gateSpec struct {
	name  string
	theta *float64
	phi   *float64
}

// parseGateSpec parses a gate argument of the form name[:angle[:angle]].
// Rotations take θ, the phase gate takes φ, and r takes θ:φ; angles are
// degrees.
func parseGateSpec(arg string) (gateSpec, error) {
	parts := strings.Split(arg, ":")
	name := strings.ToLower(strings.TrimSpace(parts[0]))

	if !domain.IsGateName(name) {
		return gateSpec{}, fmt.Errorf("unknown gate %q", name)
	}

	angles := make([]float64, 0, 2)
	for _, part := range parts[1:] {
		angle, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return gateSpec{}, fmt.Errorf("gate %s: invalid angle %q", name, part)
		}

		angles = append(angles, angle)
	}

	want := 0
	if domain.RequiresTheta(name) {
		want++
	}
	if domain.RequiresPhi(name) {
		want++
	}

	if len(angles) != want {
		switch {
		case name == domain.GateR:
			return gateSpec{}, fmt.Errorf("gate r takes two angles, e.g. r:90:45")
		case want == 1:
			return gateSpec{}, fmt.Errorf("gate %s takes exactly one angle, e.g. %s:90", name, name)
		default:
			return gateSpec{}, fmt.Errorf("gate %s takes no angles", name)
		}
	}

	spec := gateSpec{name: name}

	switch {
	case name == domain.GateR:
		spec.theta = &angles[0]
		spec.phi = &angles[1]
	case domain.RequiresTheta(name):
		spec.theta = &angles[0]
	case domain.RequiresPhi(name):
		spec.phi = &angles[0]
	}

	return spec, nil
}

// toGate converts the spec to a domain gate, translating degrees to
// radians.
func (s gateSpec) toGate() (domain.Gate, error) {
	var theta, phi float64
	if s.theta != nil {
		theta = domain.Radians(*s.theta)
	}
	if s.phi != nil {
		phi = domain.Radians(*s.phi)
	}

	return domain.NewGate(s.name, theta, phi)
}

// display renders the spec the way it was typed, for step output.
func (s gateSpec) display() string {
	var b strings.Builder
	b.WriteString(s.name)

	if s.theta != nil {
		fmt.Fprintf(&b, "(θ=%g°", *s.theta)
		if s.phi != nil {
			fmt.Fprintf(&b, ", φ=%g°", *s.phi)
		}
		b.WriteString(")")
	} else if s.phi != nil {
		fmt.Fprintf(&b, "(φ=%g°)", *s.phi)
	}

	return b.String()
}

// newWalkCommand creates the "walk" subcommand that applies a gate
// sequence and reports the resulting state.
func newWalkCommand(opts *Options) *cobra.Command {
	var (
		label   string
		svgPath string
		keep    bool
	)

	cmd := &cobra.Command{
		Use:   "walk [gate[:angle[:angle]]...]",
		Short: "Apply a gate sequence and print the resulting Bloch state",
		Example: `  blochctl walk h
  blochctl walk h s rx:90
  blochctl walk r:90:45 --svg sphere.svg
  blochctl walk h t --server http://localhost:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			specs := make([]gateSpec, 0, len(args))
			for _, arg := range args {
				spec, err := parseGateSpec(arg)
				if err != nil {
					return err
				}

				specs = append(specs, spec)
			}

			if opts.Server == "" {
				return runLocalWalk(cmd.OutOrStdout(), logger, label, svgPath, specs)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			return runRemoteWalk(ctx, cmd.OutOrStdout(), logger, opts, label, svgPath, keep, specs)
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Label for the walk")
	cmd.Flags().StringVar(&svgPath, "svg", "", "Write the Bloch sphere SVG to this path")
	cmd.Flags().BoolVar(&keep, "keep", false, "Keep the walk on the server instead of deleting it (remote mode)")

	return cmd
}

// runLocalWalk simulates the gate sequence in-process.
func runLocalWalk(out io.Writer, logger *slog.Logger, label, svgPath string, specs []gateSpec) error {
	walk := domain.NewWalk("local", label, 0, time.Now())

	for i, spec := range specs {
		gate, err := spec.toGate()
		if err != nil {
			return err
		}

		step, err := walk.Apply(gate, time.Now())
		if err != nil {
			return err
		}

		pos := walk.State.Bloch()
		fmt.Fprintf(out, "step %-2d %-14s x=%+.4f y=%+.4f z=%+.4f  arc=%.4f\n",
			i+1, spec.display(), pos.X, pos.Y, pos.Z, step)
	}

	printSummary(out, walk.State, walk.Distance, len(walk.Circuit))

	if svgPath != "" {
		svg := render.New(render.Config{}).Render(walk.State.Bloch(), walk.Trail)
		if err := os.WriteFile(svgPath, svg, 0o644); err != nil {
			return fmt.Errorf("writing svg to %q: %w", svgPath, err)
		}

		logger.Info("wrote bloch sphere", slog.String("path", svgPath))
	}

	return nil
}

// runRemoteWalk drives the gate sequence on a running walk service.
func runRemoteWalk(ctx context.Context, out io.Writer, logger *slog.Logger, opts *Options, label, svgPath string, keep bool, specs []gateSpec) error {
	client, err := newRemoteClient(opts, logger)
	if err != nil {
		return err
	}

	walk, err := client.CreateWalk(ctx, label)
	if err != nil {
		return err
	}

	logger.Debug("created walk", slog.String("id", walk.ID))

	if !keep {
		defer func() {
			if delErr := client.DeleteWalk(ctx, walk.ID); delErr != nil {
				logger.Warn("deleting walk", slog.Any("error", delErr))
			}
		}()
	}

	for i, spec := range specs {
		result, err := client.ApplyGate(ctx, walk.ID, walkapi.GateRequest{
			Gate:     spec.name,
			ThetaDeg: spec.theta,
			PhiDeg:   spec.phi,
		})
		if err != nil {
			return err
		}

		pos := result.State.Position
		fmt.Fprintf(out, "step %-2d %-14s x=%+.4f y=%+.4f z=%+.4f  arc=%.4f\n",
			i+1, spec.display(), pos.X, pos.Y, pos.Z, result.StepDistance)

		walk = &result.Walk
	}

	fmt.Fprintf(out, "\nwalk %s  gates=%d  distance=%.4f\n", walk.ID, walk.Gates, walk.Distance)
	fmt.Fprintf(out, "position x=%+.4f y=%+.4f z=%+.4f  θ=%.2f° φ=%.2f°\n",
		walk.State.Position.X, walk.State.Position.Y, walk.State.Position.Z,
		walk.State.ThetaDeg, walk.State.PhiDeg)
	fmt.Fprintf(out, "P(0)=%.4f P(1)=%.4f\n", walk.State.ProbZero, walk.State.ProbOne)

	if keep {
		fmt.Fprintf(out, "kept on server as %s\n", walk.ID)
	}

	if svgPath != "" {
		svg, err := client.BlochSVG(ctx, walk.ID)
		if err != nil {
			return err
		}

		if err := os.WriteFile(svgPath, svg, 0o644); err != nil {
			return fmt.Errorf("writing svg to %q: %w", svgPath, err)
		}

		logger.Info("wrote bloch sphere", slog.String("path", svgPath))
	}

	return nil
}

// printSummary writes the final local state block.
func printSummary(out io.Writer, state domain.State, distance float64, gates int) {
	pos := state.Bloch()
	theta, phi := state.Angles()
	p0, p1 := state.Probabilities()

	fmt.Fprintf(out, "\ngates=%d  distance=%.4f\n", gates, distance)
	fmt.Fprintf(out, "position x=%+.4f y=%+.4f z=%+.4f  θ=%.2f° φ=%.2f°\n",
		pos.X, pos.Y, pos.Z, domain.Degrees(theta), domain.Degrees(phi))
	fmt.Fprintf(out, "P(0)=%.4f P(1)=%.4f\n", p0, p1)
}

// newRemoteClient builds the walk API client for remote mode.
func newRemoteClient(opts *Options, logger *slog.Logger) (*walkapi.Client, error) {
	clientCfg := config.DefaultClientConfig(opts.Server)
	if opts.Timeout > 0 {
		clientCfg.Timeout = opts.Timeout
	}

	base, err := clients.New(&clients.Config{
		BaseURL:     clientCfg.BaseURL,
		ServiceName: "walk-service",
		Timeout:     clientCfg.Timeout,
		Retry:       clientCfg.Retry,
		Circuit:     clientCfg.CircuitBreaker,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	return walkapi.New(walkapi.Config{Client: base, Logger: logger}), nil
}
