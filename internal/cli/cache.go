package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheDir returns the directory for cached API responses, creating nothing.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "metromap", "http"), nil
}

// newCacheCmd creates the cache command group for managing cached API
// responses.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached API responses",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			printInfo("%s", dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all cached API responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			if err := os.RemoveAll(dir); err != nil {
				printError("Failed to clear cache: %s", err)
				return err
			}
			printSuccess("Cleared %s", dir)
			return nil
		},
	})

	return cmd
}
