package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"

	"github.com/limaJavier/coursetable/pkg/model"
)

type ResultType string

const (
	solved    ResultType = "solved"
	empty     ResultType = "empty"
	truncated ResultType = "truncated"
)

type TestMetadata struct {
	Name        string
	Courses     int
	Slots       int
	Constraints int
	Input       model.ModelInput
}

type BenchmarkResult struct {
	Test        string     `csv:"test"`
	Courses     int        `csv:"courses"`
	Slots       int        `csv:"slots"`
	Constraints int        `csv:"constraints"`
	MaxNodes    uint64     `csv:"max_nodes"`
	Duration    int64      `csv:"duration_ms"`
	Explored    uint64     `csv:"explored"`
	Found       int        `csv:"found"`
	BestScore   int        `csv:"best_score"`
	StopReason  string     `csv:"stop_reason"`
	Result      ResultType `csv:"result"`
}

func main() {
	directoryPtr := flag.String("dir", "", "Directory holding JSON inputs; if empty, synthetic inputs are generated")
	coursesPtr := flag.Int("courses", 8, "Largest number of courses of the synthetic inputs")
	slotsPtr := flag.Int("slots", 4, "Candidate slots per course of the synthetic inputs")
	nodesPtr := flag.String("nodes", "0,100000", "Comma separated node limits to benchmark, where 0 means exhaustive")
	timeoutPtr := flag.Duration("timeout", time.Minute, "Deadline of each run")
	outFilePathPtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file where the results will be written")
	flag.Parse()

	limits, err := parseNodeLimits(*nodesPtr)
	if err != nil {
		log.Fatal(err)
	}

	var tests []TestMetadata
	if *directoryPtr != "" {
		tests = getTests(*directoryPtr)
	} else {
		tests = syntheticTests(*coursesPtr, *slotsPtr)
	}

	results := make([]BenchmarkResult, 0, len(tests)*len(limits))
	for _, test := range tests {
		for _, maxNodes := range limits {
			fmt.Printf("Benchmarking test \"%v\" with node limit \"%v\"\n", test.Name, maxNodes)
			results = append(results, measure(test, maxNodes, *timeoutPtr))
		}
	}

	file, err := os.Create(*outFilePathPtr)
	if err != nil {
		log.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()
	if err := toCsv(file, results); err != nil {
		log.Fatalf("cannot write CSV file: %v", err)
	}
}

func getTests(directory string) []TestMetadata {
	testFiles, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0, len(testFiles))
	for _, file := range testFiles {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		filename := filepath.Join(directory, file.Name())
		input, err := model.InputFromJson(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}
		tests = append(tests, newTestMetadata(filename, input))
	}
	return tests
}

// syntheticTests builds inputs with 1..maxCourses courses. Course i offers slotsPerCourse one-hour slots starting at hour 8+i,
// one per weekday, so the search space grows as slotsPerCourse^courses while some candidates collide across courses
func syntheticTests(maxCourses, slotsPerCourse int) []TestMetadata {
	constraints := []model.Constraint{
		{Kind: model.Preferred, Interval: model.Interval{Day: model.Monday, Start: model.MustClock(8, 0), End: model.MustClock(12, 0)}, Priority: model.High},
		{Kind: model.Avoid, Interval: model.Interval{Day: model.Friday, Start: model.MustClock(12, 0), End: model.MustClock(18, 0)}, Priority: model.Medium},
	}

	return lo.Times(maxCourses, func(n int) TestMetadata {
		courses := lo.Times(n+1, func(i int) model.Course {
			courseId := fmt.Sprintf("c%d", i)
			return model.Course{
				Id: courseId,
				Slots: lo.Times(slotsPerCourse, func(j int) model.TimeSlot {
					hour := 8 + (i+j)%10
					return model.TimeSlot{
						Id:       fmt.Sprintf("%v-s%d", courseId, j),
						Course:   courseId,
						Interval: model.Interval{Day: model.Day(j % 5), Start: model.MustClock(hour, 0), End: model.MustClock(hour+1, 0)},
						Category: model.Lecture,
					}
				}),
			}
		})
		return newTestMetadata(fmt.Sprintf("synthetic-%d", n+1), model.ModelInput{Courses: courses, Constraints: constraints})
	})
}

func newTestMetadata(name string, input model.ModelInput) TestMetadata {
	return TestMetadata{
		Name:        name,
		Courses:     len(input.Courses),
		Slots:       lo.SumBy(input.Courses, func(course model.Course) int { return len(course.Slots) }),
		Constraints: len(input.Constraints),
		Input:       input,
	}
}

func measure(test TestMetadata, maxNodes uint64, timeout time.Duration) BenchmarkResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	timetabler := model.NewBacktrackingTimetabler(model.SearchLimits{MaxNodes: maxNodes}, nil)
	start := time.Now()
	result, err := timetabler.Generate(ctx, test.Input, 1)
	if err != nil {
		log.Fatalf("an error occurred during the generation at test \"%v\" using node limit \"%v\": %v", test.Name, maxNodes, err)
	}

	benchmark := BenchmarkResult{
		Test:        test.Name,
		Courses:     test.Courses,
		Slots:       test.Slots,
		Constraints: test.Constraints,
		MaxNodes:    maxNodes,
		Duration:    time.Since(start).Milliseconds(),
		Explored:    result.Explored,
		Found:       result.Found,
		StopReason:  string(result.StopReason),
		Result:      classify(result),
	}
	if !result.Empty() {
		benchmark.BestScore = result.Solutions[0].Score
	}
	return benchmark
}

func classify(result model.Result) ResultType {
	if !result.Exhaustive {
		return truncated
	} else if result.Empty() {
		return empty
	}
	return solved
}

func parseNodeLimits(raw string) ([]uint64, error) {
	limits := make([]uint64, 0)
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		var limit uint64
		if _, err := fmt.Sscan(field, &limit); err != nil {
			return nil, fmt.Errorf("invalid node limit \"%v\": %w", field, err)
		}
		limits = append(limits, limit)
	}
	if len(limits) == 0 {
		return nil, fmt.Errorf("at least one node limit must be given")
	}
	slices.Sort(limits)
	return slices.Compact(limits), nil
}

func toCsv(out io.Writer, results []BenchmarkResult) error {
	return gocsv.Marshal(results, out)
}
