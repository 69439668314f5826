package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/limaJavier/dnaword/pkg/model"
	"github.com/limaJavier/dnaword/pkg/sat"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	defaultSetSize = 25
	defaultCNFFile = "formula.cnf"
	defaultSolver  = "gophersat"
	runtimeColor   = "\033[95m"
	resetColor     = "\033[0m"
)

// Exit codes
const (
	failureCode       = 1
	satisfiableCode   = 10
	verificationCode  = 15
	unsatisfiableCode = 20
	noModelCode       = 30
)

// exitStatus carries the process exit code of a finished command up to main
type exitStatus struct {
	code int
}

func (status exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", status.code)
}

type options struct {
	size         int
	enforceOrder bool
	problemFile  string
	outFile      string
	cnfFile      string
	solver       string
	configFile   string
	quiet        bool
	timeout      time.Duration
	debug        bool
}

func main() {
	os.Exit(exitCode(newRootCmd().Execute()))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var status exitStatus
	if errors.As(err, &status) {
		return status.code
	}
	log.Error(err)
	return failureCode
}

func newRootCmd() *cobra.Command {
	opts := options{}

	rootCmd := &cobra.Command{
		Use:   "dnaword",
		Short: "Design DNA word sets through SAT",
		Long: `Encodes the design of a set of 8-letter DNA words (exactly 4 letters from {C, G},
pairwise Hamming distance >= 4, distance to every reverse-complement >= 4) as a CNF formula,
runs a SAT solver on it and decodes the solver's model back into words.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().IntVarP(&opts.size, "number", "n", defaultSetSize, "desired set size")
	rootCmd.PersistentFlags().BoolVar(&opts.enforceOrder, "order", false, "makes sure the words are fully ordered (by bit encoding)")
	rootCmd.PersistentFlags().StringVarP(&opts.problemFile, "problem", "p", "", "JSON file holding the problem ({\"size\": n, \"enforceOrder\": bool}); overrides --number and --order")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newEncodeCmd(&opts), newSolveCmd(&opts), newDecodeCmd(&opts))
	return rootCmd
}

func newEncodeCmd(opts *options) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Write the CNF formula in the DIMACS format",
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := opts.problem()
			if err != nil {
				return err
			}
			instance, err := model.Encode(problem)
			if err != nil {
				return err
			}
			if outFile == "" || outFile == "-" {
				_, err := io.WriteString(cmd.OutOrStdout(), instance.ToDIMACS())
				return err
			}
			if err := os.WriteFile(outFile, []byte(instance.ToDIMACS()), 0666); err != nil {
				return errors.Wrap(err, "an error occurred while writing to the output file")
			}
			log.Debugf("wrote %v variables and %v clauses into %v", instance.Variables, len(instance.Clauses), outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output DIMACS file for the CNF formula; if empty, it'll be written into the Standard Output")
	return cmd
}

func newSolveCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Encode the problem, run a SAT solver and print the decoded words",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			problem, err := opts.problem()
			if err != nil {
				return err
			}
			config, err := sat.LoadConfigOrDefault(opts.configFile)
			if err != nil {
				return err
			}
			solver, err := sat.NewSolver(opts.solver, config)
			if err != nil {
				return err
			}

			designerOptions := make([]model.DesignerOption, 0, 1)
			if opts.cnfFile == "" && opts.outFile == "-" {
				designerOptions = append(designerOptions, model.WithFormulaOutput(out))
			} else if opts.cnfFile == "" && opts.outFile != "" {
				formula, err := os.Create(opts.outFile)
				if err != nil {
					return errors.Wrap(err, "an error occurred while creating the output file")
				}
				defer formula.Close()
				designerOptions = append(designerOptions, model.WithFormulaOutput(formula))
			}
			designer := model.NewSATWordDesigner(solver, designerOptions...)

			ctx := context.Background()
			if opts.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, opts.timeout)
				defer cancel()
			}

			// Build word set
			start := time.Now()
			var words []string
			var variables, clauses uint64
			if opts.cnfFile == "" {
				words, variables, clauses, err = designer.Build(ctx, problem)
			} else {
				var instance sat.SAT
				if instance, err = readDIMACS(opts.cnfFile); err != nil {
					return err
				}
				variables, clauses = instance.Variables, uint64(len(instance.Clauses))
				words, err = designer.Solve(ctx, instance, problem)
			}
			elapsed := time.Since(start)

			if !opts.quiet {
				fmt.Fprintf(out, "Variables: %v\nClauses: %v\n", variables, clauses)
			}
			fmt.Fprintf(out, "%v[%v] Runtime: %.4f seconds%v\n", runtimeColor, opts.solver, elapsed.Seconds(), resetColor)

			// Verify word set correctness
			if err == nil && words != nil && !designer.Verify(words, problem) {
				fmt.Fprintln(out, strings.Join(words, " | "))
				log.Error("the decoded words violate the design constraints")
				return exitStatus{verificationCode}
			}
			return report(out, words, err)
		},
	}
	cmd.Flags().StringVarP(&opts.outFile, "output", "o", defaultCNFFile, "output DIMACS file for the CNF formula; if empty, no file is written")
	cmd.Flags().StringVarP(&opts.solver, "solver", "s", defaultSolver, fmt.Sprintf("the SAT solver, allowed values are %v", sat.SolverNames()))
	cmd.Flags().StringVar(&opts.configFile, "config", defaultConfigPath(), "JSON file mapping external solvers to their executables")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress formula statistics")
	cmd.Flags().StringVar(&opts.cnfFile, "cnf", "", "solve an existing DIMACS file instead of encoding the problem")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "abort the solver after this long (0 disables the limit)")
	return cmd
}

func newDecodeCmd(opts *options) *cobra.Command {
	var inFile string
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode the output of an external SAT solver into words",
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := opts.problem()
			if err != nil {
				return err
			}

			var output []byte
			if inFile == "" || inFile == "-" {
				output, err = io.ReadAll(cmd.InOrStdin())
			} else {
				output, err = os.ReadFile(inFile)
			}
			if err != nil {
				return errors.Wrap(err, "cannot read solver output")
			}

			if sat.Unsatisfiable(string(output)) {
				return report(cmd.OutOrStdout(), nil, nil)
			}
			words, err := model.DecodeOutput(string(output), problem)
			return report(cmd.OutOrStdout(), words, err)
		},
	}
	cmd.Flags().StringVarP(&inFile, "file", "f", "", "file holding the solver's output; if empty, it'll be read from the Standard Input")
	return cmd
}

// report prints the outcome of a run and maps it to its exit status
func report(out io.Writer, words []string, err error) error {
	switch {
	case errors.Is(err, model.ErrNoModel):
		log.Debugf("no model: %v", err)
		fmt.Fprintln(out, "No model found.")
		return exitStatus{noModelCode}
	case errors.Is(err, model.ErrUndecodable):
		log.Debugf("cannot decode model: %v", err)
		fmt.Fprintln(out, "Model parsing failed.")
		return exitStatus{verificationCode}
	case err != nil:
		return errors.Wrap(err, "an error occurred while solving")
	case words == nil:
		fmt.Fprintln(out, "UNSATISFIABLE")
		return exitStatus{unsatisfiableCode}
	}

	fmt.Fprintln(out, strings.Join(words, " | "))
	return exitStatus{satisfiableCode}
}

func (opts *options) problem() (model.Problem, error) {
	if opts.problemFile != "" {
		return model.ProblemFromJson(opts.problemFile)
	}
	return model.NewProblem(opts.size, opts.enforceOrder)
}

func readDIMACS(cnfFile string) (sat.SAT, error) {
	file, err := os.Open(cnfFile)
	if err != nil {
		return sat.SAT{}, errors.Wrap(err, "cannot open CNF file")
	}
	defer file.Close()
	return sat.ParseDIMACS(file)
}

// defaultConfigPath looks for config.json next to the executable
func defaultConfigPath() string {
	execPath, err := os.Executable()
	if err != nil {
		log.Warnf("cannot determine executable path: %v", err)
		return sat.ConfigPath
	}
	return filepath.Join(filepath.Dir(execPath), "config.json")
}
