// main is the entry point for the trendplot CLI.
package main

import (
	"github.com/huangsam/trendplot/cmd"
	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/internal/history"
)

func main() {
	cmd.SetHistoryManager(history.Manager)
	defer history.CloseStores()

	if err := cmd.Execute(); err != nil {
		history.CloseStores()
		contract.LogFatal("Cannot run trendplot", err)
	}
}
