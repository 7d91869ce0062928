package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdraw/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ch, err := cache.Open(ctx, c.cfg.CacheOptions())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer ch.Close()

			n, err := ch.Clear(ctx)
			if errors.Is(err, cache.ErrClearUnsupported) {
				printWarning("The %s cache cannot be cleared", c.backend())
				return nil
			}
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Location: %s", c.cacheLocation())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.cacheLocation())
			return nil
		},
	}
}

func (c *CLI) backend() string {
	if c.cfg.Cache.Backend == "" {
		return cache.BackendFile
	}
	return c.cfg.Cache.Backend
}

// cacheLocation describes where the configured backend keeps its entries: a
// directory for the file cache, otherwise the server address.
func (c *CLI) cacheLocation() string {
	switch c.backend() {
	case cache.BackendRedis:
		return "redis://" + c.cfg.Cache.RedisAddr
	case cache.BackendMongo:
		return c.cfg.Cache.MongoURI
	case cache.BackendNone:
		return "(disabled)"
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return "(unavailable: " + err.Error() + ")"
		}
		return dir
	}
}
