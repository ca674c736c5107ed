package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"trivia-client/internal/domain"
)

// NewProfileCmd manages the saved participant profile.
func NewProfileCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect or reset the saved participant profile",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved display name and client id",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storeFromPath(*configPath)
			if err != nil {
				return err
			}
			profile, err := store.Load(cmd.Context())
			if errors.Is(err, domain.ErrProfileNotFound) {
				fmt.Println("no saved profile")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("name: %s\nclient id: %s\n", profile.DisplayName, profile.UserID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the saved display name and client id",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storeFromPath(*configPath)
			if err != nil {
				return err
			}
			return store.Delete(cmd.Context())
		},
	})

	return cmd
}

func storeFromPath(configPath string) (profileStore, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return profileStoreFromConfig(cfg)
}
