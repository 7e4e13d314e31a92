package core

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInput           = errors.New("scan input is empty")
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrNotFound               = errors.New("record not found")
	ErrConcurrentModification = errors.New("a concurrent scan already updated this record")
	ErrInconsistentState      = errors.New("employee references a work record that cannot be loaded")
	ErrInvalidRange           = errors.New("checkOutAt must be after checkInAt")
	ErrSessionStillOpen       = errors.New("work record is still open")
)

// CooldownError rejects a scan that arrives before the employee's cooldown
// window has elapsed. Remaining is how long the employee still has to wait.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("please wait %s before scanning again", e.Remaining.Round(time.Second))
}
