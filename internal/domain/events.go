package domain

import "time"

// EventKind names a notification emitted by the tracker after an intent.
type EventKind string

const (
	EventTaskListChanged   EventKind = "TASK_LIST_CHANGED"
	EventRecycleBinChanged EventKind = "RECYCLE_BIN_CHANGED"
	EventLedgerChanged     EventKind = "LEDGER_CHANGED"
	EventAllTasksCompleted EventKind = "ALL_TASKS_COMPLETED"
	EventOperationRejected EventKind = "OPERATION_REJECTED"
)

// Event is a notification about committed state or a rejected intent.
// Only the fields relevant to Kind are populated.
type Event struct {
	ID   string
	Kind EventKind
	At   time.Time

	// TaskListChanged
	Pending   []Task
	Completed []Task

	// RecycleBinChanged
	Recycled []Task

	// LedgerChanged
	Records []PerformanceRecord

	// OperationRejected
	Operation string
	Reason    RejectionReason
	Detail    string
}
