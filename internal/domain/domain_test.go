package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_IsComplete(t *testing.T) {
	assert.True(t, TaskCompleted.IsComplete())
	assert.True(t, TaskStatus("complete").IsComplete())
	assert.True(t, TaskStatus("Partially Completed").IsComplete())
	assert.False(t, TaskInProgress.IsComplete())
}

func TestTaskStatus_IsInProgress(t *testing.T) {
	assert.True(t, TaskInProgress.IsInProgress())
	assert.True(t, TaskStatus("In-Progress").IsInProgress())
	assert.True(t, TaskStatus("in_progress").IsInProgress())
	assert.False(t, TaskNotStarted.IsInProgress())
}

func TestTask_IsCompleted(t *testing.T) {
	assert.True(t, (&Task{PercentComplete: 100}).IsCompleted())
	assert.True(t, (&Task{Status: TaskCompleted, PercentComplete: 40}).IsCompleted())
	assert.False(t, (&Task{Status: TaskInProgress, PercentComplete: 99}).IsCompleted())
}

func TestTask_PlannedHours(t *testing.T) {
	assert.Equal(t, 12.0, (&Task{BaselineHours: 10, ProjectedHours: 12}).PlannedHours())
	assert.Equal(t, 10.0, (&Task{BaselineHours: 10}).PlannedHours())
}

func TestTask_EarnedHours(t *testing.T) {
	assert.Equal(t, 25.0, (&Task{BaselineHours: 50, PercentComplete: 50}).EarnedHours())
	assert.Equal(t, 50.0, (&Task{BaselineHours: 50, PercentComplete: 140}).EarnedHours())
	assert.Equal(t, 0.0, (&Task{BaselineHours: -50, PercentComplete: 50}).EarnedHours())
	assert.Equal(t, 0.0, (&Task{BaselineHours: 50, PercentComplete: math.NaN()}).EarnedHours())
}

func TestQCStatus_IsPass(t *testing.T) {
	assert.True(t, QCPassed.IsPass())
	assert.True(t, QCStatus(" Approved ").IsPass())
	assert.False(t, QCFailed.IsPass())
	assert.False(t, QCStatus("").IsSet())
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "ada lovelace", NormalizeName("  Ada   LOVELACE "))
}

func TestProject_PlannedWindow(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	p := &Project{BaselineStart: &start, ActualEnd: &end}
	s, e, ok := p.PlannedWindow()
	assert.True(t, ok)
	assert.Equal(t, start, s)
	assert.Equal(t, end, e)

	_, _, ok = (&Project{BaselineStart: &start}).PlannedWindow()
	assert.False(t, ok)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, 3.0, CoalescePositive(0, -1, 3))
	assert.Equal(t, 0.0, CoalescePositive())
	assert.Equal(t, "", CoalesceStr())
}
