package sat

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// externalSolver runs a SAT-solver executable that follows the SAT-competition conventions:
// exit-code 10 stands for satisfiable, exit-code 20 stands for unsatisfiable
type externalSolver struct {
	name       string
	executable string
	arguments  []string
	fromFile   bool // The instance is passed as a file argument instead of through the standard input
	resultFile bool // The model is written into a result file (minisat style) instead of "v" lines on the standard output
}

func NewKissatSolver(config Config) SATSolver {
	return &externalSolver{
		name:       "kissat",
		executable: executable(config.KissatPath, "kissat"),
		arguments:  []string{"-q"},
	}
}

func NewCadicalSolver(config Config) SATSolver {
	return &externalSolver{
		name:       "cadical",
		executable: executable(config.CadicalPath, "cadical"),
		arguments:  []string{"-q"},
	}
}

func NewCryptominisatSolver(config Config) SATSolver {
	return &externalSolver{
		name:       "cryptominisat",
		executable: executable(config.CryptominisatPath, "cryptominisat5"),
		arguments:  []string{"--verb", "0"},
	}
}

func NewGlucoseSyrupSolver(config Config) SATSolver {
	return &externalSolver{
		name:       "glucose-syrup",
		executable: executable(config.GlucoseSyrupPath, "glucose-syrup"),
		arguments:  []string{"-model", "-verb=0"},
		fromFile:   true,
	}
}

func NewGlucoseSimpSolver(config Config) SATSolver {
	return &externalSolver{
		name:       "glucose-simp",
		executable: executable(config.GlucoseSimpPath, "glucose-simp"),
		arguments:  []string{"-verb=0"},
		fromFile:   true,
		resultFile: true,
	}
}

func NewMinisatSolver(config Config) SATSolver {
	return &externalSolver{
		name:       "minisat",
		executable: executable(config.MinisatPath, "minisat"),
		arguments:  []string{"-verb=0"},
		fromFile:   true,
		resultFile: true,
	}
}

func (solver *externalSolver) Solve(ctx context.Context, instance SAT) (SATSolution, error) {
	dimacs := instance.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	arguments := append([]string{}, solver.arguments...)
	var outputFileName string
	if solver.fromFile {
		inputFileName, err := writeTempFile("dimacs-*.cnf", dimacs)
		if err != nil {
			return nil, err
		}
		defer removeTempFile(inputFileName)
		arguments = append(arguments, inputFileName)
	}
	if solver.resultFile {
		var err error
		if outputFileName, err = writeTempFile(solver.name+"_output-*.txt", ""); err != nil {
			return nil, err
		}
		defer removeTempFile(outputFileName)
		arguments = append(arguments, outputFileName)
	}

	cmd := exec.CommandContext(ctx, solver.executable, arguments...)
	if !solver.fromFile {
		cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into the solver's standard input
	}
	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	log.Debugf("%v: running %v %v", solver.name, solver.executable, strings.Join(arguments, " "))
	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.Wrapf(ctxErr, "%v execution interrupted", solver.name)
	}

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	if err != nil && exitCode != satisfiableExitCode && exitCode != unsatisfiableExitCode {
		return nil, errors.Wrapf(err, "an error occurred during %v execution: %v", solver.name, stdErr.String())
	}

	if solver.resultFile {
		return solver.readResultFile(outputFileName)
	}

	output := stdOut.String()
	if exitCode == unsatisfiableExitCode || Unsatisfiable(output) {
		return nil, nil
	}
	solution, err := ParseSolution(output)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %v output", solver.name)
	}
	if len(solution) == 0 {
		return nil, errors.Errorf("%v reported no verdict and no model", solver.name)
	}
	return solution, nil
}

func (solver *externalSolver) readResultFile(fileName string) (SATSolution, error) {
	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read output file")
	}
	solution, satisfiable, err := parseResultFile(string(content))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %v result file", solver.name)
	}
	if !satisfiable {
		return nil, nil
	}
	return solution, nil
}

func writeTempFile(pattern, content string) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", errors.Wrap(err, "failed to create temporary file")
	}
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", errors.Wrap(err, "failed to write temporary file")
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", errors.Wrap(err, "failed to close temporary file")
	}
	return file.Name(), nil
}

func removeTempFile(fileName string) {
	if err := os.Remove(fileName); err != nil {
		log.Warnf("failed to remove temporary file %s: %v", fileName, err)
	}
}
