package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bassline/internal/techniques"
)

func newTechniquesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "techniques",
		Short:       "List the bass technique taxonomy by skill group",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, group := range techniques.SkillGroups {
				fmt.Fprintf(out, "%d. %s (%s)\n", group.Order, group.Name, group.Level)
				names := make([]string, 0, len(group.Techniques))
				for _, t := range group.Techniques {
					names = append(names, techniques.DisplayName(t))
				}
				fmt.Fprintf(out, "   %s\n", strings.Join(names, ", "))
			}
			return nil
		},
	}
}
