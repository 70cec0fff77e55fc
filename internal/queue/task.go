package queue

type TaskType string

const (
	TaskTypeBackfill TaskType = "backfill"
)

// Trigger records who asked for a backfill.
type Trigger string

const (
	TriggerAdmin    Trigger = "admin"
	TriggerSchedule Trigger = "schedule"
	TriggerCLI      Trigger = "cli"
)

type Task struct {
	TaskType TaskType
	OwnerID  string
	Trigger  Trigger
	TraceID  *string
	Attempt  int
}
