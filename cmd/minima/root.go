package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "minima",
	Short: "Gradient-based parameter optimization engine",
	Long: `Minima is a gradient-based parameter optimization engine: parameter
groups with per-group hyperparameters, SGD/RMSProp/Adam update rules,
learning-rate schedules, and binary training checkpoints.`,
}
