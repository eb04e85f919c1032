package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	levelName  string
	scriptName string
	frames     int
	fps        float64
	fixedHz    float64
	every      int
	plotColumn string
	configFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "skulsim",
		Short:         "headless runs of the skul character controller",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "drive the player with a script and print the trace",
		Args:  cobra.NoArgs,
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&levelName, "level", "training", "embedded level name or .tmx path")
	runCmd.Flags().StringVar(&scriptName, "script", "walk_jump", "input script name")
	runCmd.Flags().IntVar(&frames, "frames", 300, "frames to simulate")
	runCmd.Flags().Float64Var(&fps, "fps", 60, "frame rate")
	runCmd.Flags().Float64Var(&fixedHz, "fixed-hz", 50, "physics step rate")
	runCmd.Flags().IntVar(&every, "every", 10, "print every nth frame")
	runCmd.Flags().StringVar(&plotColumn, "plot", "", "plot a trace column (x, y, height, vx, vy, move, jumps)")
	runCmd.Flags().StringVar(&configFile, "config", "", "tuning yaml overriding player.yaml")

	scriptsCmd := &cobra.Command{
		Use:   "scripts",
		Short: "list embedded input scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listScripts(cmd.OutOrStdout())
		},
	}

	tuningCmd := &cobra.Command{
		Use:   "tuning",
		Short: "print the effective tuning yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTuning(cmd.OutOrStdout(), configFile)
		},
	}
	tuningCmd.Flags().StringVar(&configFile, "config", "", "tuning yaml overriding player.yaml")

	rootCmd.AddCommand(runCmd, scriptsCmd, tuningCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "skulsim:", err)
		os.Exit(1)
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	opts := runOptions{
		Level:   levelName,
		Script:  scriptName,
		Frames:  frames,
		FPS:     fps,
		FixedHz: fixedHz,
		Every:   every,
		Plot:    plotColumn,
		Config:  configFile,
	}
	return run(cmd.OutOrStdout(), opts)
}
