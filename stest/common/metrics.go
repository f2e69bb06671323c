package common

import (
	"sync"
	"time"
)

// BaseMetrics provides common fields used across different metrics types
type BaseMetrics struct {
	TotalOperations int64
	SuccessfulOps   int64
	FailedOps       int64
	LastOperation   time.Time
	Mu              sync.RWMutex
}

// UpdateBaseMetrics updates common metrics fields
func (bm *BaseMetrics) UpdateBaseMetrics(success bool) {
	bm.Mu.Lock()
	defer bm.Mu.Unlock()

	bm.TotalOperations++
	if success {
		bm.SuccessfulOps++
	} else {
		bm.FailedOps++
	}
	bm.LastOperation = time.Now()
}

// GetBaseMetrics returns the common metrics as a map
func (bm *BaseMetrics) GetBaseMetrics() map[string]interface{} {
	bm.Mu.RLock()
	defer bm.Mu.RUnlock()

	return map[string]interface{}{
		"total_operations": bm.TotalOperations,
		"successful_ops":   bm.SuccessfulOps,
		"failed_ops":       bm.FailedOps,
		"last_operation":   bm.LastOperation,
	}
}

// EvaluationMetrics tracks candidate evaluation for one filter run.
// SuccessfulOps counts candidates whose final outcome passed.
type EvaluationMetrics struct {
	BaseMetrics
	MissingCandidates   int64
	ExpandedDirectories int64
	ExcludedCandidates  int64
	StartTime           time.Time
}

// NewEvaluationMetrics creates metrics with the start time set to now
func NewEvaluationMetrics() *EvaluationMetrics {
	return &EvaluationMetrics{StartTime: time.Now()}
}

// RecordEvaluation records one evaluated candidate
func (em *EvaluationMetrics) RecordEvaluation(passed, exists bool) {
	em.UpdateBaseMetrics(passed)
	if !exists {
		em.Mu.Lock()
		em.MissingCandidates++
		em.Mu.Unlock()
	}
}

// RecordExpansion records a directory replaced by its entries
func (em *EvaluationMetrics) RecordExpansion() {
	em.Mu.Lock()
	defer em.Mu.Unlock()
	em.ExpandedDirectories++
}

// RecordExclusion records a candidate dropped by an exclude pattern
func (em *EvaluationMetrics) RecordExclusion() {
	em.Mu.Lock()
	defer em.Mu.Unlock()
	em.ExcludedCandidates++
}

// GetMetrics returns evaluation metrics as a map
func (em *EvaluationMetrics) GetMetrics() map[string]interface{} {
	metrics := em.GetBaseMetrics()
	em.Mu.RLock()
	defer em.Mu.RUnlock()

	metrics["missing_candidates"] = em.MissingCandidates
	metrics["expanded_directories"] = em.ExpandedDirectories
	metrics["excluded_candidates"] = em.ExcludedCandidates
	metrics["duration"] = time.Since(em.StartTime)
	return metrics
}
