package domain

import "strings"

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "Not Started"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
	TaskOnHold     TaskStatus = "On Hold"
)

// Normalized lowercases the status and strips separators so "In-Progress",
// "in_progress" and "In Progress" compare equal.
func (s TaskStatus) Normalized() string {
	r := strings.NewReplacer("-", "", "_", "", " ", "")
	return r.Replace(strings.ToLower(strings.TrimSpace(string(s))))
}

// IsComplete reports whether the status text contains "complete".
func (s TaskStatus) IsComplete() bool {
	return strings.Contains(strings.ToLower(string(s)), "complete")
}

// IsInProgress reports whether the status reads as in progress.
func (s TaskStatus) IsInProgress() bool {
	return s.Normalized() == "inprogress"
}

type QCStatus string

const (
	QCPending  QCStatus = "pending"
	QCPassed   QCStatus = "passed"
	QCApproved QCStatus = "approved"
	QCFailed   QCStatus = "failed"
	QCRejected QCStatus = "rejected"
)

// IsPass reports whether the QC outcome counts toward the pass rate.
func (s QCStatus) IsPass() bool {
	switch QCStatus(strings.ToLower(strings.TrimSpace(string(s)))) {
	case QCPassed, QCApproved:
		return true
	}
	return false
}

// IsSet reports whether the task carries any QC status at all.
func (s QCStatus) IsSet() bool {
	return strings.TrimSpace(string(s)) != ""
}

type ChargeType string

const (
	ChargeBillable    ChargeType = "billable"
	ChargeNonBillable ChargeType = "non_billable"
	ChargeOverhead    ChargeType = "overhead"
	ChargeUnspecified ChargeType = "unspecified"
)

// ValidTaskStatuses is the canonical set of accepted status strings on import.
var ValidTaskStatuses = map[string]bool{
	"Not Started": true, "In Progress": true, "In-Progress": true,
	"Completed": true, "Complete": true, "On Hold": true,
}

// ValidQCStatuses is the canonical set of accepted qc_status strings on import.
var ValidQCStatuses = map[string]bool{
	"": true, "pending": true, "passed": true, "approved": true, "failed": true, "rejected": true,
}
