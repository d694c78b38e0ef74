package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ycwu/twquant/internal/contracts"
	"github.com/ycwu/twquant/internal/engine"
)

// newsCmd represents the news command
var newsCmd = &cobra.Command{
	Use:   "news <symbol>",
	Short: "查詢個股新聞",
	Long: `抓取單一股票代號的最新新聞標題。

Example:
  go run ./cmd/twquant news 2330
  go run ./cmd/twquant news 2330 --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: runNews,
}

var newsLimit int

func init() {
	rootCmd.AddCommand(newsCmd)

	newsCmd.Flags().IntVar(&newsLimit, "limit", engine.DefaultNewsLimit, "新聞則數上限")
}

func runNews(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.cleanup()

	symbol := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	items, err := rt.engine.News(ctx, symbol, newsLimit)
	if err != nil {
		if errors.Is(err, contracts.ErrUnavailable) {
			fmt.Println("新聞來源暫時不可用")
			return nil
		}
		return fmt.Errorf("fetch news for %s: %w", symbol, err)
	}

	if len(items) == 0 {
		fmt.Printf("%s 目前沒有新聞\n", symbol)
		return nil
	}

	fmt.Printf("=== %s 最新新聞 ===\n\n", symbol)
	for i, item := range items {
		fmt.Printf("%d. %s", i+1, item.Title)
		if item.Source != "" {
			fmt.Printf("  (%s)", item.Source)
		}
		fmt.Println()
		fmt.Printf("   %s\n", item.Link)
	}

	return nil
}
