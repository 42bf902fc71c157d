package domain

import (
	"fmt"
	"slices"
)

// PerformanceRecord holds the planning metadata of one pending task.
type PerformanceRecord struct {
	Task     Task
	Deadline Date
	Type     TaskType
	Priority TaskPriority
	Comment  string
}

// NewPerformanceRecord returns the default record for a task first seen on today.
func NewPerformanceRecord(task Task, today Date) PerformanceRecord {
	return PerformanceRecord{
		Task:     task,
		Deadline: today,
		Type:     DefaultTaskType,
		Priority: DefaultTaskPriority,
	}
}

// RecordUpdate carries the fields to overwrite on a record.
// A nil field is left untouched.
type RecordUpdate struct {
	Deadline *Date
	Type     *TaskType
	Priority *TaskPriority
	Comment  *string
}

// IsEmpty reports whether the update supplies no field.
func (u RecordUpdate) IsEmpty() bool {
	return u.Deadline == nil && u.Type == nil && u.Priority == nil && u.Comment == nil
}

func (u RecordUpdate) apply(r *PerformanceRecord) {
	if u.Deadline != nil {
		r.Deadline = *u.Deadline
	}
	if u.Type != nil {
		r.Type = *u.Type
	}
	if u.Priority != nil {
		r.Priority = *u.Priority
	}
	if u.Comment != nil {
		r.Comment = *u.Comment
	}
}

// Ledger is the performance annex of a Board. After Reconcile its key set is
// exactly the set of pending tasks.
type Ledger struct {
	records []PerformanceRecord
}

// NewLedger builds a ledger from persisted records. Repeated tasks keep their
// first record.
func NewLedger(records []PerformanceRecord) *Ledger {
	l := &Ledger{records: make([]PerformanceRecord, 0, len(records))}
	for _, r := range records {
		if r.Task == "" || l.index(r.Task) >= 0 {
			continue
		}
		l.records = append(l.records, r)
	}
	return l
}

func (l *Ledger) index(task Task) int {
	return slices.IndexFunc(l.records, func(r PerformanceRecord) bool { return r.Task == task })
}

// Clone returns a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{records: slices.Clone(l.records)}
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns a copy of the records in ledger order.
func (l *Ledger) Records() []PerformanceRecord {
	return slices.Clone(l.records)
}

// Record returns the record for task.
func (l *Ledger) Record(task Task) (PerformanceRecord, bool) {
	i := l.index(task)
	if i < 0 {
		return PerformanceRecord{}, false
	}
	return l.records[i], true
}

// ReconcileResult lists the records a reconciliation pass created and pruned.
type ReconcileResult struct {
	Created []Task
	Pruned  []Task
}

// Changed reports whether the pass altered the ledger.
func (r ReconcileResult) Changed() bool {
	return len(r.Created) > 0 || len(r.Pruned) > 0
}

// Reconcile makes the ledger's key set equal to pending. Records of tasks no
// longer pending are deleted; pending tasks without a record get a default
// one dated today. Surviving records keep their order and new ones follow in
// pending order. Running it twice in a row changes nothing the second time.
func (l *Ledger) Reconcile(pending []Task, today Date) ReconcileResult {
	var res ReconcileResult

	live := make(map[Task]struct{}, len(pending))
	for _, t := range pending {
		live[t] = struct{}{}
	}

	kept := make([]PerformanceRecord, 0, len(pending))
	have := make(map[Task]struct{}, len(l.records))
	for _, r := range l.records {
		if _, ok := live[r.Task]; !ok {
			res.Pruned = append(res.Pruned, r.Task)
			continue
		}
		kept = append(kept, r)
		have[r.Task] = struct{}{}
	}

	for _, t := range pending {
		if _, ok := have[t]; ok {
			continue
		}
		kept = append(kept, NewPerformanceRecord(t, today))
		have[t] = struct{}{}
		res.Created = append(res.Created, t)
	}

	l.records = kept
	return res
}

// Update overwrites the supplied fields of task's record. It reports false and
// leaves the ledger unchanged when task has no record, which after Reconcile
// means the task is not pending.
func (l *Ledger) Update(task Task, upd RecordUpdate) bool {
	i := l.index(task)
	if i < 0 {
		return false
	}
	upd.apply(&l.records[i])
	return true
}

// DaysRemaining returns the signed number of days from ref to task's deadline.
// Negative means overdue, zero means due on ref.
func (l *Ledger) DaysRemaining(task Task, ref Date) (int, error) {
	r, ok := l.Record(task)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrRecordNotFound, task)
	}
	return ref.DaysUntil(r.Deadline), nil
}

// PerformanceEntry is a record joined with its deadline classification.
type PerformanceEntry struct {
	PerformanceRecord
	DaysRemaining int
	Status        DeadlineStatus
}

// Entries returns every record classified against ref.
func (l *Ledger) Entries(ref Date) []PerformanceEntry {
	out := make([]PerformanceEntry, 0, len(l.records))
	for _, r := range l.records {
		days := ref.DaysUntil(r.Deadline)
		out = append(out, PerformanceEntry{
			PerformanceRecord: r,
			DaysRemaining:     days,
			Status:            ClassifyDaysRemaining(days),
		})
	}
	return out
}
