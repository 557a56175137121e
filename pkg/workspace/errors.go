package workspace

import "errors"

var (
	// ErrNoWorkspace indicates that no workspace has been selected yet.
	ErrNoWorkspace = errors.New("no workspace selected")

	// ErrDatasetLinked indicates the dataset path is already linked.
	ErrDatasetLinked = errors.New("dataset already linked")

	// ErrDatasetNotFound indicates the dataset id is unknown.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrGroupNotFound indicates the group id is unknown.
	ErrGroupNotFound = errors.New("group not found")
)

// IsNoWorkspace checks if the error reports a missing workspace selection.
func IsNoWorkspace(err error) bool {
	return errors.Is(err, ErrNoWorkspace)
}

// IsDatasetLinked checks if the error reports a duplicate dataset link.
func IsDatasetLinked(err error) bool {
	return errors.Is(err, ErrDatasetLinked)
}

// IsDatasetNotFound checks if the error reports an unknown dataset id.
func IsDatasetNotFound(err error) bool {
	return errors.Is(err, ErrDatasetNotFound)
}

// IsGroupNotFound checks if the error reports an unknown group id.
func IsGroupNotFound(err error) bool {
	return errors.Is(err, ErrGroupNotFound)
}
