package domain

// TaskType categorizes a pending task in the performance ledger.
// Value object - immutable string enum.
type TaskType string

const (
	TaskTypeWork        TaskType = "Work"
	TaskTypeBusiness    TaskType = "Business"
	TaskTypeLeisure     TaskType = "Leisure"
	TaskTypeProgramming TaskType = "Programming"
	TaskTypeOther       TaskType = "Other"
)

// DefaultTaskType is assigned to records created by reconciliation.
const DefaultTaskType = TaskTypeOther

// TaskTypes lists every valid task type in display order.
var TaskTypes = []TaskType{
	TaskTypeWork, TaskTypeBusiness, TaskTypeLeisure, TaskTypeProgramming, TaskTypeOther,
}

// TaskPriority represents the planning priority of a pending task.
// Value object - immutable string enum.
type TaskPriority string

const (
	TaskPriorityHigh    TaskPriority = "High"
	TaskPriorityMedium  TaskPriority = "Medium"
	TaskPriorityLow     TaskPriority = "Low"
	TaskPriorityAverage TaskPriority = "Average"
)

// DefaultTaskPriority is assigned to records created by reconciliation.
const DefaultTaskPriority = TaskPriorityAverage

// TaskPriorities lists every valid priority in display order.
var TaskPriorities = []TaskPriority{
	TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow, TaskPriorityAverage,
}

// DeadlineStatus is the three-way classification of a days-remaining value.
type DeadlineStatus string

const (
	DeadlineOverdue  DeadlineStatus = "OVERDUE"
	DeadlineDueToday DeadlineStatus = "DUE_TODAY"
	DeadlineUpcoming DeadlineStatus = "UPCOMING"
)

// ClassifyDaysRemaining maps a signed day count to its deadline status.
func ClassifyDaysRemaining(days int) DeadlineStatus {
	switch {
	case days < 0:
		return DeadlineOverdue
	case days == 0:
		return DeadlineDueToday
	default:
		return DeadlineUpcoming
	}
}
