package tasks

import "fmt"

// ProgressUpdate represents a progress event during indexing.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	QueueFiles Phase = iota
	IndexFile
)

func (p Phase) String() string {
	switch p {
	case QueueFiles:
		return "queue_files"
	case IndexFile:
		return "index_file"
	default:
		return ""
	}
}

func queueFilesUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   QueueFiles,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Queueing %d payload files...", total),
	}
}

func indexCompletedUpdate(step, total int, res FileResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   IndexFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d records)", step, total, res.Path, res.Records),
		Data:    res,
	}
}

func indexFailedUpdate(step, total int, res FileResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   IndexFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Path, res.Error),
		Data:    res,
	}
}
