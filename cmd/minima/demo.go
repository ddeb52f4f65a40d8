package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minima-ml/minima/internal/checkpoint"
	"github.com/minima-ml/minima/internal/nn"
	"github.com/minima-ml/minima/internal/optim"
	"github.com/minima-ml/minima/internal/sched"
	"github.com/minima-ml/minima/internal/tensor"
)

var (
	demoRule     string
	demoEpochs   int
	demoLR       float64
	demoWarmup   int64
	demoCkptPath string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Minimize a quadratic with the full training protocol",
	Long: `Runs the engine's full training-driver protocol on a toy quadratic
objective: zero-grad, externally computed gradients, step, scheduler tick,
and an optional checkpoint at the end of the run.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&demoRule, "rule", "adam", "Update rule: sgd, rmsprop, adam")
	demoCmd.Flags().IntVar(&demoEpochs, "epochs", 50, "Number of epochs (one step + one tick each)")
	demoCmd.Flags().Float64Var(&demoLR, "lr", 0.1, "Initial learning rate")
	demoCmd.Flags().Int64Var(&demoWarmup, "warmup", 5, "Linear warm-up ticks before cosine decay")
	demoCmd.Flags().StringVar(&demoCkptPath, "checkpoint", "", "Write a .minima checkpoint to this path")
	rootCmd.AddCommand(demoCmd)
}

func ruleByName(name string) (optim.Rule, error) {
	switch name {
	case "sgd":
		return optim.SGD{}, nil
	case "rmsprop":
		return optim.RMSProp{}, nil
	case "adam":
		return optim.Adam{}, nil
	default:
		return nil, fmt.Errorf("unknown rule %q (want sgd, rmsprop or adam)", name)
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	rule, err := ruleByName(demoRule)
	if err != nil {
		return err
	}

	// Objective: f(w) = sum((w - target)^2), minimum at w = target.
	// The gradient df/dw = 2*(w - target) plays the role of the external
	// differentiation engine.
	target := []float64{1.5, -2.0, 0.5}
	w, err := tensor.FromSlice([]float64{5, 5, 5}, tensor.Shape{3})
	if err != nil {
		return err
	}
	param := nn.NewParameter("w", w)

	opt, err := optim.NewSingle(rule, []*nn.Parameter{param}, optim.Hyperparams{LR: demoLR})
	if err != nil {
		return err
	}
	inner, err := sched.NewCosine(opt, int64(demoEpochs), 0)
	if err != nil {
		return err
	}
	var schedule sched.Scheduler = inner
	if demoWarmup > 0 {
		if schedule, err = sched.NewWarmup(opt, demoWarmup, inner); err != nil {
			return err
		}
	}

	fmt.Printf("Minimizing a quadratic with %s, lr=%g, %d epochs\n\n", demoRule, demoLR, demoEpochs)
	for epoch := 1; epoch <= demoEpochs; epoch++ {
		opt.ZeroGrad()

		grad := tensor.Zeros(w.Shape())
		for i, wi := range w.Data() {
			grad.Data()[i] = 2 * (wi - target[i])
		}
		if err := param.SetGrad(grad); err != nil {
			return err
		}
		opt.Step()
		schedule.Tick()

		if epoch%10 == 0 || epoch == demoEpochs {
			loss := 0.0
			for i, wi := range w.Data() {
				d := wi - target[i]
				loss += d * d
			}
			lr, _ := schedule.CurrentLR(0)
			fmt.Printf("epoch %3d  loss %.6f  lr %.6f\n", epoch, loss, lr)
		}
	}
	fmt.Printf("\nfinal w = %v (target %v)\n", w.Data(), target)

	if demoCkptPath != "" {
		f, err := os.Create(demoCkptPath)
		if err != nil {
			return fmt.Errorf("creating checkpoint: %w", err)
		}
		defer f.Close()

		snap := schedule.Snapshot()
		if err := checkpoint.Save(f, &checkpoint.Checkpoint{
			Epoch:     demoEpochs,
			Optimizer: opt.ExportState(),
			Scheduler: &snap,
		}); err != nil {
			return fmt.Errorf("writing checkpoint: %w", err)
		}
		fmt.Printf("checkpoint written to %s\n", demoCkptPath)
	}
	return nil
}
