package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wmiig/infographic/src/logging"
	"github.com/wmiig/infographic/src/stats"
	"github.com/wmiig/infographic/src/types"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Aggregate a JSON lines feed export into a statistics bundle",
	Args:  cobra.NoArgs,
	RunE:  runCollect,
}

func init() {
	collectCmd.Flags().String("posts", "", "feed export, one post per line (required)")
	collectCmd.Flags().String("user", "", "id of the feed owner (required)")
	collectCmd.Flags().String("name", "", "display name of the feed owner")
	collectCmd.Flags().String("out", "bundle.json", "bundle file; .yaml or .yml selects YAML")
	collectCmd.Flags().Int64("seed", 0, "word cloud shuffle seed (default from config)")
	_ = collectCmd.MarkFlagRequired("posts")
	_ = collectCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	defer logging.TimeTrack(time.Now(), "collect")

	postsPath, _ := cmd.Flags().GetString("posts")
	userID, _ := cmd.Flags().GetString("user")
	name, _ := cmd.Flags().GetString("name")
	out, _ := cmd.Flags().GetString("out")
	seed := cfg.ShuffleSeed
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetInt64("seed")
	}

	posts, err := stats.LoadPosts(postsPath)
	if err != nil {
		return fmt.Errorf("loading posts: %w", err)
	}
	b, err := stats.Collect(stats.User{ID: userID, Name: name}, posts, seed)
	if err != nil {
		return fmt.Errorf("collecting %s: %w", postsPath, err)
	}
	if err := types.SaveBundle(out, b); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	logging.Infof("collected %d posts into %s", len(posts), out)
	return nil
}
