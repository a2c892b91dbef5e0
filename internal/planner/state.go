package planner

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// PlanState wraps the last computed plan for persistence
type PlanState struct {
	Plan    *VacationPlan `json:"plan"`
	SavedAt string        `json:"saved_at"`
}

// StateManager persists the last computed plan to a JSON file so it can
// be shown again without recomputation
type StateManager struct {
	stateFile string
	state     *PlanState
	logger    *zap.Logger
}

// NewStateManager creates a new plan state manager
func NewStateManager(stateFile string, logger *zap.Logger) *StateManager {
	return &StateManager{
		stateFile: stateFile,
		logger:    logger,
	}
}

// Load loads the plan state from file
func (sm *StateManager) Load() error {
	data, err := os.ReadFile(sm.stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet - will be created on first save
			sm.state = &PlanState{}
			return nil
		}
		return fmt.Errorf("failed to read state file: %w", err)
	}

	var state PlanState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}

	sm.state = &state
	if state.Plan != nil {
		sm.logger.Info("Plan state loaded",
			zap.Int("year", state.Plan.Year),
			zap.String("saved_at", state.SavedAt))
	}

	return nil
}

// Save saves the plan to the state file
func (sm *StateManager) Save(plan *VacationPlan) error {
	sm.state = &PlanState{
		Plan:    plan,
		SavedAt: time.Now().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(sm.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(sm.stateFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	sm.logger.Info("Plan state saved",
		zap.String("file", sm.stateFile),
		zap.Int("year", plan.Year))

	return nil
}

// Current returns the loaded plan, or nil when none was saved yet
func (sm *StateManager) Current() *VacationPlan {
	if sm.state == nil {
		return nil
	}
	return sm.state.Plan
}
