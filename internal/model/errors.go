package model

import (
	"errors"
	"fmt"
)

// Kind classifies a cycle failure by the component that produced it.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindAnalysis
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAnalysis:
		return "analysis"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against a Kind.
var (
	ErrNetwork     = errors.New("network error")
	ErrAnalysis    = errors.New("analysis error")
	ErrPersistence = errors.New("persistence error")
)

// Error is a failure caught at a component boundary.
type Error struct {
	Kind Kind
	Op   string // Operation that failed (e.g., "fetch coinmarketcap")
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the Kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrAnalysis:
		return e.Kind == KindAnalysis
	case ErrPersistence:
		return e.Kind == KindPersistence
	}
	return false
}

// NetworkError wraps err as a KindNetwork failure.
func NetworkError(op string, err error) error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

// AnalysisError wraps err as a KindAnalysis failure.
func AnalysisError(op string, err error) error {
	return &Error{Kind: KindAnalysis, Op: op, Err: err}
}

// PersistenceError wraps err as a KindPersistence failure.
func PersistenceError(op string, err error) error {
	return &Error{Kind: KindPersistence, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
