package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rezkam/tasktrack/internal/domain"
)

// Section headers of the task file.
const (
	PendingHeader   = "Pending Tasks:"
	CompletedHeader = "Completed Tasks:"
)

// encodeTaskFile renders both live collections in the two-section line format.
func encodeTaskFile(pending, completed []domain.Task) []byte {
	var buf bytes.Buffer
	buf.WriteString(PendingHeader + "\n")
	for _, t := range pending {
		buf.WriteString(t.String() + "\n")
	}
	buf.WriteString(CompletedHeader + "\n")
	for _, t := range completed {
		buf.WriteString(t.String() + "\n")
	}
	return buf.Bytes()
}

// decodeTaskFile splits the task file into its two collections. Lines before
// the completed header are pending; header lines are never data and blank
// lines are skipped.
func decodeTaskFile(data []byte) (pending, completed []domain.Task) {
	inCompleted := false
	for _, line := range lines(data) {
		switch line {
		case PendingHeader:
			continue
		case CompletedHeader:
			inCompleted = true
			continue
		}
		if inCompleted {
			completed = append(completed, domain.Task(line))
		} else {
			pending = append(pending, domain.Task(line))
		}
	}
	return pending, completed
}

// encodeRecycleFile renders one task per line, without header.
func encodeRecycleFile(recycled []domain.Task) []byte {
	var buf bytes.Buffer
	for _, t := range recycled {
		buf.WriteString(t.String() + "\n")
	}
	return buf.Bytes()
}

func decodeRecycleFile(data []byte) []domain.Task {
	var out []domain.Task
	for _, line := range lines(data) {
		out = append(out, domain.Task(line))
	}
	return out
}

// lines returns the trimmed, non-blank lines of data.
func lines(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// performanceRecord is the persisted shape of a ledger record.
type performanceRecord struct {
	TaskName     string `json:"task_name"`
	Deadline     string `json:"deadline"`
	TaskType     string `json:"task_type"`
	TaskPriority string `json:"task_priority"`
	UserComment  string `json:"user_comment"`
}

func encodePerformance(records []domain.PerformanceRecord) ([]byte, error) {
	doc := make([]performanceRecord, 0, len(records))
	for _, r := range records {
		doc = append(doc, performanceRecord{
			TaskName:     r.Task.String(),
			Deadline:     r.Deadline.String(),
			TaskType:     string(r.Type),
			TaskPriority: string(r.Priority),
			UserComment:  r.Comment,
		})
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal performance records: %w", err)
	}
	return append(data, '\n'), nil
}

// skippedRecord describes a persisted record that could not be used.
type skippedRecord struct {
	TaskName string
	Err      error
}

// decodePerformance parses the performance document. A document that is not
// a JSON array fails with domain.ErrMalformedDocument. Individual records with
// an invalid deadline, type or priority are returned in skipped; absent type,
// priority and comment take their defaults.
func decodePerformance(data []byte) (records []domain.PerformanceRecord, skipped []skippedRecord, err error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, nil
	}

	var doc []performanceRecord
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}

	for _, raw := range doc {
		r, err := raw.toDomain()
		if err != nil {
			skipped = append(skipped, skippedRecord{TaskName: raw.TaskName, Err: err})
			continue
		}
		records = append(records, r)
	}
	return records, skipped, nil
}

func (p performanceRecord) toDomain() (domain.PerformanceRecord, error) {
	task := domain.Task(strings.TrimSpace(p.TaskName))
	if task == "" {
		return domain.PerformanceRecord{}, fmt.Errorf("%w: missing task_name", domain.ErrMalformedDocument)
	}

	deadline, err := domain.ParseDate(p.Deadline)
	if err != nil {
		return domain.PerformanceRecord{}, err
	}
	taskType, err := domain.NewTaskType(p.TaskType)
	if err != nil {
		return domain.PerformanceRecord{}, err
	}
	priority, err := domain.NewTaskPriority(p.TaskPriority)
	if err != nil {
		return domain.PerformanceRecord{}, err
	}

	return domain.PerformanceRecord{
		Task:     task,
		Deadline: deadline,
		Type:     taskType,
		Priority: priority,
		Comment:  p.UserComment,
	}, nil
}
