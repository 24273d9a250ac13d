package state

import "sort"

// DebugOption names a per-window engine or layout debugging toggle.
type DebugOption string

const (
	DebugFragmentBorders     DebugOption = "fragment-borders"
	DebugParallelDisplayList DebugOption = "parallel-display-list"
	DebugShowParallelLayout  DebugOption = "show-parallel-layout"
	DebugConvertMouseToTouch DebugOption = "mouse-to-touch"
	DebugTileBorders         DebugOption = "tile-borders"
	DebugWRProfiler          DebugOption = "wr-profiler"
	DebugWRTextureCacheDebug DebugOption = "wr-texture-cache-debug"
	DebugWRRenderTargetDebug DebugOption = "wr-render-target-debug"
)

// AllDebugOptions lists every known toggle in display order.
var AllDebugOptions = []DebugOption{
	DebugFragmentBorders,
	DebugParallelDisplayList,
	DebugShowParallelLayout,
	DebugConvertMouseToTouch,
	DebugTileBorders,
	DebugWRProfiler,
	DebugWRTextureCacheDebug,
	DebugWRRenderTargetDebug,
}

// IsRendererOption reports whether toggling o must be forwarded to the engine's
// renderer. The remaining options only affect shell state.
func (o DebugOption) IsRendererOption() bool {
	switch o {
	case DebugWRProfiler, DebugWRTextureCacheDebug, DebugWRRenderTargetDebug:
		return true
	}
	return false
}

// Known reports whether o is one of AllDebugOptions.
func (o DebugOption) Known() bool {
	for _, known := range AllDebugOptions {
		if o == known {
			return true
		}
	}
	return false
}

// DebugOptions is a set of named booleans. Absent keys are false.
type DebugOptions map[DebugOption]bool

// Toggle flips o and returns the new value.
func (d DebugOptions) Toggle(o DebugOption) bool {
	d[o] = !d[o]
	return d[o]
}

// Enabled returns the enabled options sorted by name.
func (d DebugOptions) Enabled() []DebugOption {
	out := make([]DebugOption, 0, len(d))
	for o, on := range d {
		if on {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (d DebugOptions) Clone() DebugOptions {
	dup := make(DebugOptions, len(d))
	for k, v := range d {
		dup[k] = v
	}
	return dup
}
