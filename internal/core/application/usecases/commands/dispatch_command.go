package commands

import (
	"errors"

	"lastmile/internal/pkg/guard"
)

const (
	// TriggerHTTP marks dispatch runs requested through the API.
	TriggerHTTP = "http"
	// TriggerSchedule marks dispatch runs started by the cron job.
	TriggerSchedule = "schedule"
)

var (
	ErrDispatchCommandIsNotConstructed = errors.New(
		"DispatchCommand must be created via NewDispatchCommand constructor",
	)
	ErrTriggerIsRequired = errors.New("trigger is required")
)

// DispatchCommand runs one dispatch cycle over every pending order and every courier.
// The trigger names what started the run and is used as a metrics label.
//
// Example:
//
//	cmd, _ := NewDispatchCommand(TriggerSchedule)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("Dispatch failed: %v", err)
//	}
//	log.Printf("assigned %d of %d batches", result.Assigned, result.Candidates)
type DispatchCommand struct {
	trigger string

	guard guard.ConstructorGuard
}

func NewDispatchCommand(trigger string) (DispatchCommand, error) {
	if trigger == "" {
		return DispatchCommand{}, ErrTriggerIsRequired
	}

	return DispatchCommand{
		trigger: trigger,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchCommand) Validate() error {
	return c.guard.Validate(ErrDispatchCommandIsNotConstructed)
}

func (c DispatchCommand) Trigger() string {
	return c.trigger
}
