package tasks

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const opCountWednesdays = "count wednesdays"

// CountWednesdays counts the dates in the date list that fall on a Wednesday
// and writes the bare count to the output file.
func (s *Service) CountWednesdays(_ context.Context) (Result, error) {
	in := s.paths.DatesFile
	if err := requireFile(opCountWednesdays, in); err != nil {
		return Result{}, err
	}

	count, err := countWeekday(in, time.Wednesday)
	if err != nil {
		return Result{}, err
	}

	if err := writeText(opCountWednesdays, s.paths.WednesdaysOut, strconv.Itoa(count)); err != nil {
		return Result{}, err
	}

	return Result{
		Message: fmt.Sprintf("%d Wednesdays counted and saved.", count),
		Value:   count,
	}, nil
}

func countWeekday(path string, day time.Weekday) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, execError(opCountWednesdays, path, err)
	}
	defer f.Close()

	count := 0
	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSpace(scanner.Text())

		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return 0, parseError(opCountWednesdays, path, fmt.Errorf("line %d: %w", lineNo, err))
		}

		if date.Weekday() == day {
			count++
		}
	}

	if err := scanner.Err(); err != nil {
		return 0, execError(opCountWednesdays, path, err)
	}

	return count, nil
}
