package errors

import "fmt"

// CapacityMismatchError reports a partition mask whose length differs from
// the chip capacity for the chosen density and dimensions.
type CapacityMismatchError struct {
	Density  string
	Rows     int
	Cols     int
	Capacity int
	MaskLen  int
}

func (e *CapacityMismatchError) Error() string {
	return fmt.Sprintf("partition mask has %d positions, chip capacity is %d (%s, %dx%d)",
		e.MaskLen, e.Capacity, e.Density, e.Rows, e.Cols)
}

// Code returns the error code for this error type.
func (e *CapacityMismatchError) Code() Code { return ErrCodeCapacityMismatch }

// MaskLengthExceedsSourceError reports a mask length longer than the longest
// loaded source sequence.
type MaskLengthExceedsSourceError struct {
	MaskLength int
	MaxSource  int
}

func (e *MaskLengthExceedsSourceError) Error() string {
	return fmt.Sprintf("mask length %d exceeds longest source sequence (%d)", e.MaskLength, e.MaxSource)
}

// Code returns the error code for this error type.
func (e *MaskLengthExceedsSourceError) Code() Code { return ErrCodeMaskLengthExceedsSource }

// NoSourceSequencesError reports a run whose mask length resolved to zero
// because there are no non-empty source sequences to lay out.
type NoSourceSequencesError struct {
	Sequences int
}

func (e *NoSourceSequencesError) Error() string {
	if e.Sequences == 0 {
		return "no source sequences to lay out"
	}
	return fmt.Sprintf("all %d source sequences are empty", e.Sequences)
}

// Code returns the error code for this error type.
func (e *NoSourceSequencesError) Code() Code { return ErrCodeNoSourceSequences }

// PartitionNotFoundError reports a partition label that has valid positions
// on the chip but no source sequences.
type PartitionNotFoundError struct {
	Label     string
	Positions int
}

func (e *PartitionNotFoundError) Error() string {
	return fmt.Sprintf("partition %q has %d valid positions but no source sequences", e.Label, e.Positions)
}

// Code returns the error code for this error type.
func (e *PartitionNotFoundError) Code() Code { return ErrCodePartitionNotFound }

// PartitionCapacityExceededError reports a partition with more source
// sequences than valid (post-mask) positions.
type PartitionCapacityExceededError struct {
	Label     string
	Sequences int
	Positions int
}

func (e *PartitionCapacityExceededError) Error() string {
	return fmt.Sprintf("partition %q has %d source sequences but only %d valid positions",
		e.Label, e.Sequences, e.Positions)
}

// Code returns the error code for this error type.
func (e *PartitionCapacityExceededError) Code() Code { return ErrCodePartitionCapacityExceeded }

// UnsupportedDensityError reports an unrecognised print density token.
type UnsupportedDensityError struct {
	Token string
}

func (e *UnsupportedDensityError) Error() string {
	return fmt.Sprintf("unsupported print density %q (must be one of: DPI150, DPI150_PLUS, DPI300)", e.Token)
}

// Code returns the error code for this error type.
func (e *UnsupportedDensityError) Code() Code { return ErrCodeUnsupportedDensity }

// PoolExhaustionError is an internal-consistency failure: the grid filler
// asked a partition pool for more entries than it holds. It is unreachable
// when validation passed and is never recovered from.
type PoolExhaustionError struct {
	Label    string
	Position int
	PoolSize int
}

func (e *PoolExhaustionError) Error() string {
	return fmt.Sprintf("internal: pool for partition %q exhausted at position %d (pool size %d)",
		e.Label, e.Position, e.PoolSize)
}

// Code returns the error code for this error type.
func (e *PoolExhaustionError) Code() Code { return ErrCodePoolExhaustion }

// InvalidSequenceError reports a source sequence rejected by the legality
// checker.
type InvalidSequenceError struct {
	Label    string
	Sequence string
	Reason   string
}

func (e *InvalidSequenceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("illegal source sequence %q in partition %q: %s", e.Sequence, e.Label, e.Reason)
	}
	return fmt.Sprintf("illegal source sequence %q in partition %q", e.Sequence, e.Label)
}

// Code returns the error code for this error type.
func (e *InvalidSequenceError) Code() Code { return ErrCodeInvalidSequence }

// InvalidDefectError reports a defect nozzle number that is not positive.
type InvalidDefectError struct {
	Number int
}

func (e *InvalidDefectError) Error() string {
	return fmt.Sprintf("defect nozzle number must be positive, got %d", e.Number)
}

// Code returns the error code for this error type.
func (e *InvalidDefectError) Code() Code { return ErrCodeInvalidDefect }
