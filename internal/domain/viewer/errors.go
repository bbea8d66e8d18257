package viewer

import "errors"

var (
	// ErrSettingsNotFound no privacy settings row for the viewer
	ErrSettingsNotFound = errors.New("privacy settings not found")
)
