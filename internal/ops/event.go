package ops

import "github.com/quillcore/editor/internal/hostapi"

// Event is the input an operation module receives: the user-supplied
// parameters plus the host content store excise/save-selection write into.
// Store is nil for hosts that don't wire a content store; excise and
// save-selection treat a nil Store as a no-op write.
type Event struct {
	Params Params
	Store  hostapi.Store
}
