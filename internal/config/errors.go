package config

import "fmt"

// ErrUnknownBallMaterial reports a ball-material key that has no entry in the
// balls table. This is a content bug and is surfaced immediately instead of
// being absorbed into a neutral game event.
type ErrUnknownBallMaterial struct {
	Material string
}

func (e ErrUnknownBallMaterial) Error() string {
	return fmt.Sprintf("unknown ball material %q", e.Material)
}
