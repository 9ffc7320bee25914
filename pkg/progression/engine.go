// Package progression computes run-time progress of a case through
// its workflow: current step, completion percentage, and nearest-prior
// field inheritance. All functions are pure over the case history.
package progression

import (
	"math"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
)

// NoCurrentStep is returned by CurrentStepIndex when every step of the
// case is resolved.
const NoCurrentStep = -1

// CurrentStepIndex returns the index of the first history entry that
// is neither COMPLETED nor SKIPPED, scanning in step order, or
// NoCurrentStep when the case is fully resolved.
func CurrentStepIndex(history []*models.CaseHistoryEntry) int {
	for i, entry := range history {
		if !entry.Status.Resolved() {
			return i
		}
	}

	return NoCurrentStep
}

// ProgressPercentage returns the rounded share of resolved steps,
// 0-100. An empty history is 0, never a division by zero.
func ProgressPercentage(history []*models.CaseHistoryEntry) int {
	if len(history) == 0 {
		return 0
	}

	resolved := 0

	for _, entry := range history {
		if entry.Status.Resolved() {
			resolved++
		}
	}

	return int(math.Round(100 * float64(resolved) / float64(len(history))))
}

// NearestPriorValue scans history[currentIndex-1 .. 0] in strictly
// descending order and returns the first non-empty value stored under
// fieldName, together with true. It stops at the first hit and never
// aggregates. When no prior entry carries the field, it returns
// (nil, false) and the consumer renders a fresh empty input.
func NearestPriorValue(history []*models.CaseHistoryEntry, currentIndex int, fieldName string) (any, bool) {
	if currentIndex > len(history) {
		currentIndex = len(history)
	}

	for i := currentIndex - 1; i >= 0; i-- {
		value, ok := history[i].Fields[fieldName]
		if !ok || models.IsEmptyValue(value) {
			continue
		}

		return value, true
	}

	return nil, false
}
