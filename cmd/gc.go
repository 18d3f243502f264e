package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewGCCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gc",
		Short: "Remove cached hook repositories the configuration no longer references",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			st, _, err := openStore()
			if err != nil {
				return err
			}

			keep := make(map[string]bool)
			for _, group := range cfg.Repos {
				if group.IsLocal() {
					continue
				}
				keep[st.RepoPath(group.Repo, group.Rev)] = true
			}

			removed, err := st.GC(keep)
			if err != nil {
				return err
			}

			if len(removed) == 0 {
				fmt.Println("Cache already clean")
				return nil
			}
			for _, path := range removed {
				fmt.Printf("Removed %s\n", path)
			}
			return nil
		},
	}

	return cmd
}
