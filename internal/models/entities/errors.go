package entities

import (
	"errors"
	"fmt"

	"infinite-experiment/shiplog/internal/constants"
)

var (
	ErrReferenceNotFound = errors.New("reference not found")
	ErrUnsupportedUnit   = errors.New("unsupported unit")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidTonnage    = errors.New("net tonnage must be nonzero")
)

// ReferenceNotFoundError is returned when a shipment points at a port or
// vessel row that does not exist.
type ReferenceNotFoundError struct {
	Entity  string // "port" or "vessel"
	KeyName string // "ID" or "IMO"
	Key     string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("no %s found with %s %s", e.Entity, e.KeyName, e.Key)
}

func (e *ReferenceNotFoundError) Is(target error) bool { return target == ErrReferenceNotFound }

func (e *ReferenceNotFoundError) Code() string { return constants.ErrCodeReferenceNotFound }

func PortNotFound(id string) error {
	return &ReferenceNotFoundError{Entity: "port", KeyName: "ID", Key: id}
}

func VesselNotFound(imo int64) error {
	return &ReferenceNotFoundError{Entity: "vessel", KeyName: "IMO", Key: fmt.Sprintf("%d", imo)}
}

// UnsupportedUnitError names the quantity ("speed", "distance") and the token
// that was not recognised.
type UnsupportedUnitError struct {
	Quantity string
	Unit     string
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("unsupported %s unit %q", e.Quantity, e.Unit)
}

func (e *UnsupportedUnitError) Is(target error) bool { return target == ErrUnsupportedUnit }

func (e *UnsupportedUnitError) Code() string { return constants.ErrCodeUnsupportedUnit }

type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported duration format %q", e.Format)
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

func (e *UnsupportedFormatError) Code() string { return constants.ErrCodeUnsupportedFormat }

// ErrorCode returns the catalogue code for err, or "" if err carries none.
func ErrorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	if errors.Is(err, ErrInvalidTonnage) {
		return constants.ErrCodeInvalidTonnage
	}
	return ""
}
