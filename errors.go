package geocrs

import "fmt"

// CoordinateDimensionError reports that a coordinate buffer did not carry
// enough components for the operation that was about to run.
type CoordinateDimensionError struct {
	Got, Needed int
}

func (e *CoordinateDimensionError) Error() string {
	return fmt.Sprintf("geocrs: coordinate has %d dimensions, need %d", e.Got, e.Needed)
}

// OutOfExtentError reports that a grid lookup fell outside the area the
// grid covers.
type OutOfExtentError struct {
	Lat, Lon float64
	Extent   string
}

func (e *OutOfExtentError) Error() string {
	return fmt.Sprintf("geocrs: point (lat=%g, lon=%g) is outside extent %s", e.Lat, e.Lon, e.Extent)
}

// NonInvertibleError reports that an operation has no inverse.
type NonInvertibleError struct {
	OpName string
}

func (e *NonInvertibleError) Error() string {
	return fmt.Sprintf("geocrs: operation %q is not invertible", e.OpName)
}

// IterationDivergedError reports that a fixed-point iteration failed to
// converge within its cap.
type IterationDivergedError struct {
	Op         string
	Iterations int
}

func (e *IterationDivergedError) Error() string {
	return fmt.Sprintf("geocrs: %s did not converge after %d iterations", e.Op, e.Iterations)
}

// UnknownParameterError reports a parameter naming something (a datum,
// ellipsoid, projection, unit...) that isn't registered.
type UnknownParameterError struct {
	Key, Value string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("geocrs: unknown parameter %s=%s", e.Key, e.Value)
}

// GridLoadError reports that a grid resource failed to parse or load.
type GridLoadError struct {
	Name  string
	Cause error
}

func (e *GridLoadError) Error() string {
	return fmt.Sprintf("geocrs: failed to load grid %q: %v", e.Name, e.Cause)
}

func (e *GridLoadError) Unwrap() error { return e.Cause }

// IncompatibleUnitError reports an attempt to convert between units of
// different physical quantities.
type IncompatibleUnitError struct {
	Have, Need Quantity
}

func (e *IncompatibleUnitError) Error() string {
	return fmt.Sprintf("geocrs: cannot convert unit of quantity %s to %s", e.Have, e.Need)
}

// UnsupportedError reports a CRS/operation combination that is recognized
// but deliberately not implemented. It is always returned
// explicitly -- never silently treated as identity.
type UnsupportedError struct {
	What string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("geocrs: unsupported: %s", e.What)
}
