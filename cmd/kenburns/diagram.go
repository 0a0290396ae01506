package main

import (
	"github.com/spf13/cobra"

	"github.com/stateforward/go-kenburns/pkg/plantuml"
	"github.com/stateforward/go-kenburns/transition"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Print the transition lifecycle as PlantUML",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		return plantuml.Generate(cmd.OutOrStdout(), name, transition.Lifecycle())
	},
}

func init() {
	rootCmd.AddCommand(diagramCmd)

	diagramCmd.Flags().String("name", "transition", "Diagram name")
}
