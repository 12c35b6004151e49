package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/limaJavier/coursetable/internal/dto"
	"github.com/limaJavier/coursetable/pkg/model"
)

const (
	exitFailure     = 1
	exitSolutions   = 10
	exitNoSolutions = 20
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code. Errors go to stderr so deferred calls still run
func run(args []string, stdout, stderr io.Writer) int {
	fail := func(format string, a ...any) int {
		fmt.Fprintf(stderr, format+"\n", a...)
		return exitFailure
	}

	// Define arguments
	flags := flag.NewFlagSet("cli", flag.ContinueOnError)
	flags.SetOutput(stderr)
	filePathPtr := flags.String("file", "", "Path to the JSON input file holding \"courses\" and \"constraints\"")
	coursesPathPtr := flags.String("courses", "", "Path to a CSV file with one row per time slot (used when -file is empty)")
	constraintsPathPtr := flags.String("constraints", "", "Path to a CSV file with one row per constraint (used together with -courses)")
	maxSolutionsPtr := flags.Int("max", 5, "Maximum number of ranked solutions to return")
	maxNodesPtr := flags.Uint64("nodes", 0, "Maximum number of search states to explore, where 0 keeps the search exhaustive")
	timeoutPtr := flags.Duration("timeout", 0, "Deadline for the search (e.g. 30s), where 0 disables it")
	outFilePathPtr := flags.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	verbosePtr := flags.Bool("verbose", false, "Log search statistics to the Standard Error")
	if err := flags.Parse(args); err != nil {
		return exitFailure
	}

	// Validate arguments
	if *filePathPtr == "" && (*coursesPathPtr == "" || *constraintsPathPtr == "") {
		return fail("an input file must be specified, either -file or both -courses and -constraints")
	} else if *maxSolutionsPtr <= 0 {
		return fail("max must be positive: %v", *maxSolutionsPtr)
	}

	// Extract input
	input, err := loadInput(*filePathPtr, *coursesPathPtr, *constraintsPathPtr)
	if err != nil {
		return fail("cannot parse input: %v", err)
	}

	logger := zap.NewNop()
	if *verbosePtr {
		if logger, err = zap.NewDevelopment(); err != nil {
			return fail("cannot initialize logger: %v", err)
		}
		defer logger.Sync() //nolint:errcheck
	}

	// Generate timetables
	ctx := context.Background()
	if *timeoutPtr > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeoutPtr)
		defer cancel()
	}
	timetabler := model.NewBacktrackingTimetabler(model.SearchLimits{MaxNodes: *maxNodesPtr}, logger)

	start := time.Now()
	result, err := timetabler.Generate(ctx, input, *maxSolutionsPtr)
	if err != nil {
		logger.Error("timetable generation failed", zap.Error(err))
		return fail("an error occurred during timetable generation: %v", err)
	}
	logger.Info("generation finished", zap.Duration("elapsed", time.Since(start)), zap.Int("returned", len(result.Solutions)))

	// Verify every returned solution
	for i, scored := range result.Solutions {
		if !timetabler.Verify(scored.Solution, input) {
			return fail("solution %d is not a valid timetable", i+1)
		}
	}

	// Marshal output into json
	outputJson, err := json.MarshalIndent(dto.NewGenerationResponse(result), "", "  ")
	if err != nil {
		return fail("an error occurred while building output json: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if *outFilePathPtr == "" {
		fmt.Fprintln(stdout, string(outputJson))
	} else if err := os.WriteFile(*outFilePathPtr, outputJson, 0666); err != nil {
		logger.Error("cannot write output", zap.String("path", *outFilePathPtr), zap.Error(err))
		return fail("an error occurred while writing to the output file: %v", err)
	}

	if result.Empty() {
		return exitNoSolutions
	}
	return exitSolutions
}

func loadInput(filePath, coursesPath, constraintsPath string) (model.ModelInput, error) {
	if filePath != "" {
		return model.InputFromJson(filePath)
	}
	return model.InputFromCsv(coursesPath, constraintsPath)
}
