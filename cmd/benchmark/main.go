package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/limaJavier/dnaword/pkg/model"
	"github.com/limaJavier/dnaword/pkg/sat"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	defaultExecutablePath         = "../../bin/dnaword"
	defaultResultsFile            = "benchmark_results.csv"
	killGracePeriod               = 5 * time.Second
	KB                            = 1024
	MB                    float32 = 1024 * 1024
)

type ResultType int

const (
	solved ResultType = iota
	unsatisfiable
	timeout
)

var resultTypes = map[ResultType]string{
	solved:        "solved",
	unsatisfiable: "unsatisfiable",
	timeout:       "timeout",
}

type BenchmarkCase struct {
	Solver string
	Size   int
	Order  bool
}

type BenchmarkResult struct {
	Case          BenchmarkCase
	Variables     uint64
	Clauses       uint64
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

type benchmarkOptions struct {
	executable  string
	sizes       string
	solvers     []string
	withOrder   bool
	timeout     time.Duration
	resultsFile string
}

func main() {
	opts := benchmarkOptions{}

	cmd := &cobra.Command{
		Use:          "benchmark",
		Short:        "Race SAT solvers over DNA word set sizes and write the timings as CSV",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes, err := parseSizes(opts.sizes)
			if err != nil {
				return err
			}
			for _, solver := range opts.solvers {
				if _, err := sat.NewSolver(solver, sat.Config{}); err != nil {
					return err
				}
			}

			cases := getCases(sizes, opts.solvers, opts.withOrder)
			results := make([]BenchmarkResult, 0, len(cases))
			for _, benchmarkCase := range cases {
				log.Infof("Benchmarking size \"%v\" with solver \"%v\" and order \"%v\"", benchmarkCase.Size, benchmarkCase.Solver, benchmarkCase.Order)

				result, err := measure(opts.executable, benchmarkCase, opts.timeout)
				if err != nil {
					return err
				}
				results = append(results, result)
			}

			file, err := os.Create(opts.resultsFile)
			if err != nil {
				return errors.Wrap(err, "cannot create CSV file")
			}
			defer file.Close()
			return toCsv(file, results)
		},
	}

	cmd.Flags().StringVarP(&opts.executable, "executable", "e", defaultExecutablePath, "path to the dnaword executable")
	cmd.Flags().StringVar(&opts.sizes, "sizes", "5,10,15,20,25", "comma-separated set sizes; ranges such as 10-14 are expanded")
	cmd.Flags().StringSliceVarP(&opts.solvers, "solvers", "s", []string{"gophersat", "gini", "kissat", "cadical", "minisat"}, "solvers to race")
	cmd.Flags().BoolVar(&opts.withOrder, "order", true, "also run every case with the order constraints")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "time limit for a single run")
	cmd.Flags().StringVarP(&opts.resultsFile, "output", "o", defaultResultsFile, "CSV file receiving the results")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseSizes accepts "5,10,12-14" and returns the sizes in the given order
func parseSizes(sizes string) ([]int, error) {
	parsed := make([]int, 0)
	for _, field := range strings.Split(sizes, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		bounds := strings.SplitN(field, "-", 2)
		low, err := strconv.Atoi(bounds[0])
		if err != nil {
			return nil, errors.Wrapf(model.ErrInvalidSize, "size %q", field)
		}
		high := low
		if len(bounds) == 2 {
			if high, err = strconv.Atoi(bounds[1]); err != nil {
				return nil, errors.Wrapf(model.ErrInvalidSize, "size %q", field)
			}
		}
		if low < 1 || high < low {
			return nil, errors.Wrapf(model.ErrInvalidSize, "size %q", field)
		}

		for size := low; size <= high; size++ {
			parsed = append(parsed, size)
		}
	}

	if len(parsed) == 0 {
		return nil, errors.Wrap(model.ErrInvalidSize, "no sizes given")
	}
	return parsed, nil
}

func getCases(sizes []int, solvers []string, withOrder bool) []BenchmarkCase {
	orders := []bool{false}
	if withOrder {
		orders = append(orders, true)
	}

	cases := make([]BenchmarkCase, 0, len(sizes)*len(solvers)*len(orders))
	for _, size := range sizes {
		for _, order := range orders {
			for _, solver := range solvers {
				cases = append(cases, BenchmarkCase{Solver: solver, Size: size, Order: order})
			}
		}
	}
	return cases
}

func arguments(executable string, benchmarkCase BenchmarkCase, limit time.Duration) []string {
	args := []string{"-v", executable, "solve", "-q", "-o", "", "-s", benchmarkCase.Solver, "-n", fmt.Sprint(benchmarkCase.Size), "--timeout", limit.String()}
	if benchmarkCase.Order {
		args = append(args, "--order")
	}
	return args
}

// measureCommand runs the case under /usr/bin/time in its own process group; cancelling ctx kills the whole group,
// external solvers included
func measureCommand(ctx context.Context, executable string, benchmarkCase BenchmarkCase, limit time.Duration) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "/usr/bin/time", arguments(executable, benchmarkCase, limit)...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	return cmd
}

func measure(executable string, benchmarkCase BenchmarkCase, limit time.Duration) (BenchmarkResult, error) {
	problem, err := model.NewProblem(benchmarkCase.Size, benchmarkCase.Order)
	if err != nil {
		return BenchmarkResult{}, err
	}
	result := BenchmarkResult{
		Case:      benchmarkCase,
		Variables: model.ExpectedVariables(problem),
		Clauses:   model.ExpectedClauses(problem),
	}

	// The grace period lets dnaword's own --timeout fire first
	ctx, cancel := context.WithTimeout(context.Background(), limit+killGracePeriod)
	defer cancel()
	cmd := measureCommand(ctx, executable, benchmarkCase, limit)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	if ctx.Err() != nil || cmd.ProcessState.ExitCode() == 1 && strings.Contains(stdErr.String(), context.DeadlineExceeded.Error()) {
		result.Duration = limit.Milliseconds()
		result.Result = timeout
		return result, nil
	}

	switch cmd.ProcessState.ExitCode() {
	case 10:
		result.Result = solved
	case 20:
		result.Result = unsatisfiable
	default:
		return BenchmarkResult{}, errors.Errorf("an error occurred during the execution of \"dnaword\" with size \"%v\", solver \"%v\" and order \"%v\": %v", benchmarkCase.Size, benchmarkCase.Solver, benchmarkCase.Order, stdErr.String())
	}

	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) (string, error) {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			return "", errors.Errorf("substring \"%v\" could not be found", substr)
		}
		return line, nil
	}

	durationLine, err := getLine("wall clock")
	if err != nil {
		return BenchmarkResult{}, err
	}
	memoryLine, err := getLine("maximum resident set size")
	if err != nil {
		return BenchmarkResult{}, err
	}
	cpuLine, err := getLine("percent of cpu")
	if err != nil {
		return BenchmarkResult{}, err
	}

	if result.Duration, err = parseDurationLine(durationLine); err != nil {
		return BenchmarkResult{}, err
	}
	if result.Memory, err = parseMemoryLine(memoryLine); err != nil {
		return BenchmarkResult{}, err
	}
	if result.CpuPercentage, err = parseCpuPercentageLine(cpuLine); err != nil {
		return BenchmarkResult{}, err
	}
	return result, nil
}

func toCsv(file *os.File, results []BenchmarkResult) error {
	writer := csv.NewWriter(file)

	header := []string{"Solver", "Size", "Order", "Variables", "Clauses", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "cannot write CSV header")
	}

	for _, result := range results {
		record := []string{
			result.Case.Solver,
			fmt.Sprintf("%d", result.Case.Size),
			fmt.Sprintf("%v", result.Case.Order),
			fmt.Sprintf("%d", result.Variables),
			fmt.Sprintf("%d", result.Clauses),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "cannot write CSV record")
		}
	}

	writer.Flush()
	return writer.Error()
}

func parseDurationLine(line string) (int64, error) {
	splits := strings.Split(line, "(h:mm:ss or m:ss):")
	if len(splits) != 2 {
		return 0, errors.Errorf("unexpected duration line: %v", line)
	}
	return parseDuration(strings.TrimSpace(splits[1]))
}

func parseDuration(durationStr string) (int64, error) {
	parts := strings.Split(durationStr, ":")
	secondsParts := strings.Split(parts[len(parts)-1], ".")
	if len(secondsParts) != 2 || (len(parts) != 2 && len(parts) != 3) {
		return 0, errors.Errorf("unexpected duration format: %v", durationStr)
	}

	numbers, err := atoiAll(append(parts[:len(parts)-1:len(parts)-1], secondsParts...))
	if err != nil {
		return 0, errors.Wrapf(err, "unexpected duration format: %v", durationStr)
	}

	var hours, minutes, seconds, hundredthOfSeconds int
	if len(parts) == 3 { // h:mm:ss
		hours, minutes, seconds, hundredthOfSeconds = numbers[0], numbers[1], numbers[2], numbers[3]
	} else { // m:ss
		minutes, seconds, hundredthOfSeconds = numbers[0], numbers[1], numbers[2]
	}
	return int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10), nil
}

func atoiAll(fields []string) ([]int, error) {
	numbers := make([]int, 0, len(fields))
	for _, field := range fields {
		number, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, number)
	}
	return numbers, nil
}

func parseMemoryLine(line string) (float32, error) {
	splits := strings.Split(line, ":")
	if len(splits) != 2 {
		return 0, errors.Errorf("unexpected memory line: %v", line)
	}
	kilobytes, err := strconv.ParseFloat(strings.TrimSpace(splits[1]), 32)
	if err != nil {
		return 0, errors.Wrapf(err, "unexpected memory line: %v", line)
	}
	return float32(kilobytes) * KB / MB, nil
}

func parseCpuPercentageLine(line string) (int64, error) {
	splits := strings.Split(line, ":")
	if len(splits) != 2 {
		return 0, errors.Errorf("unexpected CPU line: %v", line)
	}
	percentage, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(splits[1]), "%"))
	if err != nil {
		return 0, errors.Wrapf(err, "unexpected CPU line: %v", line)
	}
	return int64(percentage), nil
}
