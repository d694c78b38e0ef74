package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ycwu/twquant/internal/contracts"
)

// diagnoseCmd represents the diagnose command
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <symbol>",
	Short: "執行個股健診",
	Long: `對單一股票代號執行完整健診並輸出結果。

流程:
- 解析上市/上櫃 (TWSE 優先, 其次 TPEx)
- 抓取日線價量並計算 MA5 / MA10 / MA20 / 乖離 / 量比
- 抓取三大法人買賣超並彙總近 3 個交易日籌碼
- 四項條件逐項評分

Example:
  go run ./cmd/twquant diagnose 2330
  go run ./cmd/twquant diagnose 6488 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

var diagnoseJSON bool

func init() {
	rootCmd.AddCommand(diagnoseCmd)

	diagnoseCmd.Flags().BoolVar(&diagnoseJSON, "json", false, "以 JSON 輸出結果")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.cleanup()

	symbol := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := rt.engine.Diagnose(ctx, symbol)
	if err != nil {
		return fmt.Errorf("diagnose %s: %w", symbol, err)
	}

	if diagnoseJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printDiagnosis(result)
	return nil
}

func printDiagnosis(r *contracts.DiagnosticResult) {
	ind := r.Indicators

	fmt.Printf("=== %s 健診結果 ===\n\n", r.Symbol.Ticker())

	fmt.Printf("收盤價:   %.2f (%+.2f, %+.2f%%)\n", ind.Close, ind.Change, ind.ChangePercent)
	fmt.Printf("成交量:   %.0f 張 (量比 %.2f)\n", ind.VolumeLots, ind.VolumeRatio)
	fmt.Printf("MA5/MA10: %.2f / %.2f\n", ind.MA5, ind.MA10)
	if ind.HasMA20 {
		fmt.Printf("MA20:     %.2f (乖離 %+.2f%%)\n", ind.MA20, ind.BiasPercent)
	} else {
		fmt.Println("MA20:     資料不足")
	}
	fmt.Printf("趨勢:     %s\n", ind.Trend)

	fmt.Println()
	if r.Flow.Available {
		fmt.Printf("法人近 3 日買賣超: %+.0f 張 (%d 個交易日)\n", r.Flow.TotalNet3DLots, r.Flow.SessionCount)
		if r.Flow.ConsecutiveBuy {
			fmt.Println("法人連續 3 日買超 ✅")
		}
	} else {
		fmt.Println("法人買賣超資料不可用 (略過籌碼評分)")
	}

	fmt.Println()
	for _, c := range r.Criteria {
		mark := "❌"
		if c.Passed {
			mark = "✅"
		}
		fmt.Printf("  %s %s: %s\n", mark, c.Label, c.Rationale)
	}

	fmt.Printf("\n綜合評分: %d / %d", r.Score, r.MaxScore)
	if r.Verdict == contracts.VerdictPositive {
		fmt.Println("  → 綜合條件偏多")
	} else {
		fmt.Println("  → 中性觀望")
	}

	if r.Overheated {
		fmt.Println("⚠️  乖離過大，短線過熱")
	}
	if r.VolumeSurge {
		fmt.Println("🔥 量能明顯放大")
	}
}
