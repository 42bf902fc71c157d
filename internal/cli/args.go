package cli

import (
	"fmt"
	"strconv"

	"github.com/rezkam/tasktrack/internal/domain"
)

// parsePositions converts 1-based task numbers into 0-based positions.
func parsePositions(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid task number %q: must be a positive integer", a)
		}
		out = append(out, n-1)
	}
	return out, nil
}

// resolveTasks maps 1-based task numbers to the tasks shown at those
// positions in list.
func resolveTasks(list []domain.Task, args []string) ([]domain.Task, error) {
	positions, err := parsePositions(args)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(positions))
	for _, p := range positions {
		if p >= len(list) {
			return nil, fmt.Errorf("%w: %d (size %d)", domain.ErrIndexOutOfRange, p+1, len(list))
		}
		out = append(out, list[p])
	}
	return out, nil
}
