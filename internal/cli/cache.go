package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/automatalib/automata/pkg/cache"
)

// fileCache opens the CLI's file-backed result cache. Failures degrade to a
// null cache with a warning rather than failing the command.
func fileCache(logger *log.Logger) (cache.Cache, error) {
	dir, err := cacheDir()
	if err != nil {
		logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return c, nil
}

// newCacheCmd creates the cache command for managing the result cache.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the operation result cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached operation results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			if err := os.RemoveAll(dir); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("cache cleared", "dir", dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	})

	return cmd
}
