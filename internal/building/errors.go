package building

import "errors"

// Domain errors for the building package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, building.ErrOpeningNotFound) {
//	    // handle not found case
//	}
var (
	// ErrInvalidDimensions is returned when width, length or eave height is not a positive finite number.
	ErrInvalidDimensions = errors.New("building: invalid dimensions")

	// ErrInvalidRoof is returned when a roof field is outside its range.
	ErrInvalidRoof = errors.New("building: invalid roof")

	// ErrInvalidSide is returned when a side value is not recognised.
	ErrInvalidSide = errors.New("building: invalid side")

	// ErrInvalidColorSlot is returned when a color slot is not recognised.
	ErrInvalidColorSlot = errors.New("building: invalid color slot")

	// ErrInvalidWalls is returned when wall settings are out of range.
	ErrInvalidWalls = errors.New("building: invalid walls")

	// ErrInvalidLeanTo is returned when a lean-to field is outside its range.
	ErrInvalidLeanTo = errors.New("building: invalid lean-to")

	// ErrInvalidOpening is returned when an opening has an unknown type or wall,
	// or a non-positive size.
	ErrInvalidOpening = errors.New("building: invalid opening")

	// ErrInvalidView is returned when a view or visibility mode is not recognised.
	ErrInvalidView = errors.New("building: invalid view")

	// ErrOpeningNotFound is returned when an opening ID does not exist.
	ErrOpeningNotFound = errors.New("building: opening not found")

	// ErrLegacyLeanToNotFound is returned when a legacy lean-to ID does not exist.
	ErrLegacyLeanToNotFound = errors.New("building: legacy lean-to not found")

	// ErrDesignNotFound is returned when a saved design ID does not exist.
	ErrDesignNotFound = errors.New("building: design not found")

	// ErrInvalidDesign is returned when a saved design has no name or no config.
	ErrInvalidDesign = errors.New("building: invalid design")
)
