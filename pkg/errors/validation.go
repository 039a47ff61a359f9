package errors

import (
	"math"

	"github.com/google/uuid"
)

// MaxGridCells bounds width*height. Rectangle ids are stored per cell as
// int32, so a grid never holds more cells than an int32 can count.
const MaxGridCells = math.MaxInt32

// ValidateGridSize checks that both grid dimensions are positive and that
// the grid has at most MaxGridCells cells.
func ValidateGridSize(width, height int) error {
	if width <= 0 {
		return New(ErrCodeInvalidConfig, "grid width must be positive, got %d", width)
	}
	if height <= 0 {
		return New(ErrCodeInvalidConfig, "grid height must be positive, got %d", height)
	}
	if ExceedsCells(width, height, MaxGridCells) {
		return New(ErrCodeInvalidConfig, "grid %dx%d exceeds %d cells", width, height, MaxGridCells)
	}
	return nil
}

// ExceedsCells reports whether a width×height grid has more than limit
// cells. It never multiplies, so huge dimensions cannot wrap around.
// Non-positive dimensions never exceed.
func ExceedsCells(width, height, limit int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	return width > limit/height
}

// ValidateBlockSizes checks 1 <= min <= max.
func ValidateBlockSizes(minBlock, maxBlock int) error {
	if maxBlock < 1 {
		return New(ErrCodeInvalidConfig, "max block size must be at least 1, got %d", maxBlock)
	}
	if minBlock < 1 {
		return New(ErrCodeInvalidConfig, "min block size must be at least 1, got %d", minBlock)
	}
	if minBlock > maxBlock {
		return New(ErrCodeInvalidConfig, "min block size %d exceeds max block size %d", minBlock, maxBlock)
	}
	return nil
}

// ValidateMaxSteps checks that the step cap is not negative.
// Zero is allowed and finishes a session before the first step.
func ValidateMaxSteps(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidConfig, "max steps must not be negative, got %d", n)
	}
	return nil
}

// ValidateCellSize checks the pixel size of one grid cell used by renderers.
func ValidateCellSize(px int) error {
	const maxCellSize = 256
	if px <= 0 || px > maxCellSize {
		return New(ErrCodeInvalidInput, "cell size must be in [1, %d], got %d", maxCellSize, px)
	}
	return nil
}

// ValidateRunID checks that id is a canonical UUID string.
func ValidateRunID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRunID, "run id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidRunID, err, "invalid run id %q", id)
	}
	return nil
}
