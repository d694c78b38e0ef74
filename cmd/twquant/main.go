package main

import (
	"os"

	"github.com/ycwu/twquant/cmd/twquant/commands"
)

// main is the entry point for the twquant CLI
// ⭐ 統一 CLI 入口: go run ./cmd/twquant [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
