// README: Location resolution result and its provenance.
package location

import "motofrete/internal/types"

// Source tells where a resolved coordinate came from.
type Source string

const (
	SourceDevice   Source = "device"
	SourceGeocoded Source = "geocoded"
)

type Resolution struct {
	Point  types.Point
	Source Source
}
