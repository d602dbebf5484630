// Package main provides a performance benchmarking tool for the Helios CLI.
// It measures execution times of the main commands across different sales
// history lengths, running each command multiple times, treating the first
// successful run as cold and averaging the rest as warm, and generating CSV
// output for performance analysis and documentation.
//
// Prerequisites:
// - helios binary installed and available in PATH
// - The Telco customer churn CSV
//
// Usage: go run benchmark/main.go [churn-csv]
//
//	churn-csv: Path to the customer churn CSV loaded into every test store
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	HistoryDays int
	Command     string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ChurnCSV    string
	Timeout     time.Duration
	Runs        int
	HistoryDays []int
}

// benchmarkCommand is one timed helios invocation and the output that marks success.
type benchmarkCommand struct {
	Name    string
	Args    []string
	Success string
}

var benchmarkCommands = []benchmarkCommand{
	{Name: "train", Args: []string{"train"}, Success: "Training finished in"},
	{Name: "report", Args: []string{"report"}, Success: "📈 SALES:"},
	{Name: "score", Args: []string{"model", "score", "--limit", "100"}, Success: "Showing top"},
	{Name: "export", Args: []string{"forecast", "export", "--output", "csv"}, Success: "ds,yhat"},
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [churn-csv]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		ChurnCSV:    os.Args[1],
		Timeout:     5 * time.Minute,
		Runs:        4,
		HistoryDays: []int{365, 730, 1095, 1825},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
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

// checkPrerequisites verifies that the helios binary and the churn CSV exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("helios"); err != nil {
		return fmt.Errorf("helios binary not found in PATH")
	}
	if _, err := os.Stat(config.ChurnCSV); os.IsNotExist(err) {
		return fmt.Errorf("churn CSV not found at %s", config.ChurnCSV)
	}
	return nil
}

// runBenchmarks prepares one SQLite store per history length and times every command against it
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d history lengths, %v timeout, %d runs per command\n",
		len(config.HistoryDays), config.Timeout, config.Runs)

	for _, days := range config.HistoryDays {
		fmt.Printf("Benchmarking %d days of history\n", days)

		workDir, err := os.MkdirTemp("", "helios-benchmark-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create work dir: %w", err)
		}
		env := append(os.Environ(), "DATABASE_URL=sqlite:///"+filepath.Join(workDir, "helios.db"))

		if err := prepareStore(config, workDir, env, days); err != nil {
			_ = os.RemoveAll(workDir)
			return nil, err
		}

		for _, command := range benchmarkCommands {
			results = append(results, runBenchmarkSuite(config, workDir, env, days, command))
		}
		_ = os.RemoveAll(workDir)
	}

	return results, nil
}

// prepareStore loads the churn CSV and seeds the sales series
func prepareStore(config BenchmarkConfig, workDir string, env []string, days int) error {
	steps := [][]string{
		{"load", "churn", config.ChurnCSV},
		{"seed", "sales", "--days", strconv.Itoa(days)},
	}
	for _, args := range steps {
		cmd := exec.Command("helios", args...)
		cmd.Dir = workDir
		cmd.Env = env
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("helios %s failed: %w\nOutput: %s", strings.Join(args, " "), err, string(output))
		}
	}
	return nil
}

// runBenchmarkSuite runs a command several times and summarizes cold and warm timings
func runBenchmarkSuite(config BenchmarkConfig, workDir string, env []string, days int, command benchmarkCommand) BenchmarkResult {
	fmt.Printf("  %s (%d runs)\n", command.Name, config.Runs)

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("helios", command.Args...)
		cmd.Dir = workDir
		cmd.Env = env

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && strings.Contains(string(output), command.Success) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
			<-done
		}
	}

	coldTime, warmAvg := "TIMEOUT", "TIMEOUT"
	if len(times) > 0 {
		coldTime = fmt.Sprintf("%.3fs", times[0])
	}
	if warm := times[min(1, len(times)):]; len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTime, warmAvg)

	return BenchmarkResult{
		HistoryDays: days,
		Command:     command.Name,
		ColdTime:    coldTime,
		WarmTime:    warmAvg,
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/helios_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"history_days", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{strconv.Itoa(result.HistoryDays), result.Command, result.ColdTime, result.WarmTime}); err != nil {
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
		fmt.Printf("%s:\n", command.Name)
		for _, result := range results {
			if result.Command == command.Name {
				fmt.Printf("  %5d days: Cold: %s, Warm: %s\n", result.HistoryDays, result.ColdTime, result.WarmTime)
			}
		}
	}
}
