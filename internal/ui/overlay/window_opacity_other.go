//go:build !windows

package overlay

// Card translucency comes from the background rectangle's alpha on
// platforms where the compositor blends splash windows natively.
func (overlay *Window) applyNativeOpacity(_ uint8) {
}
