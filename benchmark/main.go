// Package main provides a performance benchmarking tool for the trendplot CLI.
// It generates synthetic histories of different lengths, measures execution
// times of each chart command with and without render history, treating the
// first successful run as cold and averaging the rest as warm, and writes CSV
// output for performance analysis and documentation.
//
// Prerequisites:
// - trendplot binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where inputs, charts and the history database are written
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset       string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	Window        int
	Datasets      map[string]int
	Binaries      int
}

// benchmarkCommand is one chart command with the input kind it consumes.
type benchmarkCommand struct {
	name  string
	sizes bool
}

var benchmarkCommands = []benchmarkCommand{
	{name: "results"},
	{name: "size", sizes: true},
	{name: "individual-size", sizes: true},
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       os.Args[1],
		Timeout:       5 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		Window:        15,
		Datasets: map[string]int{
			"small":  365,
			"medium": 3650,
			"large":  36500,
		},
		Binaries: 20,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Start from an empty history database
	fmt.Printf("Clearing render history...\n")
	clearCmd := exec.Command("trendplot", "history", "clear", "--history-backend", "sqlite", "--history-db-connect", historyPath(config))
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear history: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("History cleared successfully\n")
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that trendplot binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("trendplot"); err != nil {
		return fmt.Errorf("trendplot binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

func historyPath(config BenchmarkConfig) string {
	return filepath.Join(config.WorkDir, "benchmark_history.db")
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.Datasets), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, dataset := range []string{"small", "medium", "large"} {
		points := config.Datasets[dataset]
		fmt.Printf("Benchmarking %s (%d points)\n", dataset, points)

		resultsInput, sizeInput, err := writeInputs(config, dataset, points)
		if err != nil {
			return nil, err
		}

		for _, command := range benchmarkCommands {
			args := []string{command.name, resultsInput, dataset}
			if command.sizes {
				args = []string{command.name, sizeInput}
			}
			results = append(results, runBenchmarkSuite(config, dataset, command.name, args))
		}
	}

	return results, nil
}

// writeInputs generates a test-suite history and a size history with the given number of days.
func writeInputs(config BenchmarkConfig, dataset string, points int) (string, string, error) {
	rng := rand.New(rand.NewSource(int64(points)))
	start := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

	suite := make(map[string]map[string]int, points)
	sizes := make(map[string]map[string]any, points)
	for i := 0; i < points; i++ {
		key := start.AddDate(0, 0, i).Format(time.RFC1123Z)
		total := 600 + i/50
		pass := total/2 + rng.Intn(total/4)
		fail := rng.Intn(total - pass)
		suite[key] = map[string]int{
			"total": total,
			"pass":  pass,
			"fail":  fail,
			"skip":  (total - pass - fail) / 2,
			"error": total - pass - fail - (total-pass-fail)/2,
		}

		binaries := make(map[string]int, config.Binaries)
		for b := 0; b < config.Binaries; b++ {
			binaries[fmt.Sprintf("bin%02d", b)] = 900 + b*10 + rng.Intn(50)
		}
		sizes[key] = map[string]any{
			"size":      40000 + i + rng.Intn(500),
			"multisize": 9000 + i/2 + rng.Intn(100),
			"sizes":     binaries,
		}
	}

	resultsInput := filepath.Join(config.WorkDir, dataset+"-result.json")
	if err := writeJSON(resultsInput, suite); err != nil {
		return "", "", err
	}
	sizeInput := filepath.Join(config.WorkDir, dataset+"-size-result.json")
	if err := writeJSON(sizeInput, sizes); err != nil {
		return "", "", err
	}
	return resultsInput, sizeInput, nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, command string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, dataset)

	// Helper to run a benchmark phase
	runPhase := func(historyArgs []string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, append(append([]string{}, args...), historyArgs...), numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-history runs
	_, noHistoryAvg := runPhase([]string{"--history-backend", "none"}, config.NoHistoryRuns, "No-history")

	// Phase 2: History runs
	coldTime, warmAvg := runPhase([]string{"--history-backend", "sqlite", "--history-db-connect", historyPath(config)}, config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:       dataset,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a trendplot command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string, numRuns int) (coldTime float64, warmTimes []float64) {
	args = append(args,
		"--output-dir", filepath.Join(config.WorkDir, "charts"),
		"--smooth-window", fmt.Sprint(config.Window),
	)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("trendplot", args...)
		cmd.Dir = config.WorkDir

		done := make(chan error, 1)
		go func() {
			done <- cmd.Run()
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/trendplot_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, command := range benchmarkCommands {
		fmt.Printf("%s:\n", command.name)
		for _, result := range results {
			if result.Command == command.name {
				fmt.Printf("  %-8s: No-history: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoHistoryTime, result.ColdTime, result.WarmTime)
			}
		}
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
