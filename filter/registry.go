package filter

import (
	"time"

	"github.com/vidcapture/vcs/frame"
)

// TypeID identifies one of the statically enumerated filter types
// (spec.md §4.6).
type TypeID int

const (
	TypeBlur TypeID = iota
	TypeSharpen
	TypeUnsharpMask
	TypeMedian
	TypeDenoiseTemporal
	TypeDenoiseNonlocalMeans
	TypeDecimate
	TypeCrop
	TypeFlip
	TypeRotate
	TypeKernel3x3
	TypeDeltaHistogram
	TypeUniqueCount
)

// Impl is the behavior a filter type contributes to a Node: an in-place
// transform of a BGRA pixel buffer, plus whatever private state the filter
// type needs (spec.md §4.6, "filters do not retain state across frames
// unless documented"). now is the capture timestamp of the frame being
// processed, needed only by time-windowed filters (unique_count).
type Impl interface {
	Apply(pixels []byte, r frame.Resolution, params map[uint32]float64, now time.Time)
}

// typeInfo is one static registry entry.
type typeInfo struct {
	UUID     string
	Name     string
	Category Category
	Params   []ParamSpec
	New      func() Impl
}

// registry is the static filter-type table (spec.md §4.6, "Filter registry
// is static"). UUIDs follow the original_source format, e.g.
// filter_kernel_3x3.h's "95027807-978b-4371-9a14-f6166efc64d9".
var registry = map[TypeID]typeInfo{
	TypeBlur: {
		UUID: "a5428ce0-6614-4aa7-b1f3-561e0f998712", Name: "blur", Category: CategoryReduce,
		Params: []ParamSpec{
			{ID: 0, Name: "radius_tenths", Default: 10, Min: 0, Max: 200, Width: WidthI32},
			{ID: 1, Name: "gaussian", Default: 0, Min: 0, Max: 1, Width: WidthU8},
		},
		New: func() Impl { return &blurFilter{} },
	},
	TypeSharpen: {
		UUID: "c033f2de-8a6e-4d2e-9f21-0a7dcb241d5e", Name: "sharpen", Category: CategoryEnhance,
		Params: []ParamSpec{{ID: 0, Name: "strength", Default: 1, Min: 0, Max: 4, Width: WidthF32}},
		New:    func() Impl { return &sharpenFilter{} },
	},
	TypeUnsharpMask: {
		UUID: "ef0a1b6b-7b77-4b38-9c5a-2c6a2a7f2b55", Name: "unsharp_mask", Category: CategoryEnhance,
		Params: []ParamSpec{
			{ID: 0, Name: "strength", Default: 1, Min: 0, Max: 4, Width: WidthF32},
			{ID: 1, Name: "radius_tenths", Default: 20, Min: 1, Max: 200, Width: WidthI32},
		},
		New: func() Impl { return &unsharpMaskFilter{} },
	},
	TypeMedian: {
		UUID: "6a9f0dbe-9d1b-4a2f-8a57-3a1bfb05a2d4", Name: "median", Category: CategoryReduce,
		Params: []ParamSpec{{ID: 0, Name: "radius", Default: 1, Min: 0, Max: 10, Width: WidthI32}},
		New:    func() Impl { return &medianFilter{} },
	},
	TypeDenoiseTemporal: {
		UUID: "1d9c9f44-5a02-4f2a-9b2a-6e0c5f9b2b1a", Name: "denoise_temporal", Category: CategoryReduce,
		Params: []ParamSpec{{ID: 0, Name: "threshold", Default: 8, Min: 0, Max: 255, Width: WidthU8}},
		New:    func() Impl { return &denoiseTemporalFilter{} },
	},
	TypeDenoiseNonlocalMeans: {
		UUID: "8b2d6a3e-4f5e-4c63-9f3e-0a2a1b4e7c9d", Name: "denoise_nonlocal_means", Category: CategoryReduce,
		Params: []ParamSpec{
			{ID: 0, Name: "luminance_strength", Default: 10, Min: 0, Max: 100, Width: WidthF32},
			{ID: 1, Name: "color_strength", Default: 10, Min: 0, Max: 100, Width: WidthF32},
			{ID: 2, Name: "template_window", Default: 3, Min: 1, Max: 21, Width: WidthI32},
			{ID: 3, Name: "search_window", Default: 7, Min: 1, Max: 35, Width: WidthI32},
		},
		New: func() Impl { return &denoiseNLMFilter{} },
	},
	TypeDecimate: {
		UUID: "3e6d9c0a-2b1f-4a7e-8c4d-9f1a2b3c4d5e", Name: "decimate", Category: CategoryDistort,
		Params: []ParamSpec{
			{ID: 0, Name: "factor", Default: 2, Min: 2, Max: 16, Width: WidthI32},
			{ID: 1, Name: "averaged", Default: 0, Min: 0, Max: 1, Width: WidthU8},
		},
		New: func() Impl { return &decimateFilter{} },
	},
	TypeCrop: {
		UUID: "7c4e9b1d-3a2f-4e6c-8b1d-2a3c4e5f6071", Name: "crop", Category: CategoryDistort,
		Params: []ParamSpec{
			{ID: 0, Name: "x", Default: 0, Min: 0, Max: 4096, Width: WidthI32},
			{ID: 1, Name: "y", Default: 0, Min: 0, Max: 4096, Width: WidthI32},
			{ID: 2, Name: "w", Default: 0, Min: 0, Max: 4096, Width: WidthI32},
			{ID: 3, Name: "h", Default: 0, Min: 0, Max: 4096, Width: WidthI32},
			{ID: 4, Name: "scale_mode", Default: 0, Min: 0, Max: 2, Width: WidthU8},
		},
		New: func() Impl { return &cropFilter{} },
	},
	TypeFlip: {
		UUID: "4f5a6b7c-8d9e-4a1b-9c2d-3e4f5a6b7c8d", Name: "flip", Category: CategoryDistort,
		Params: []ParamSpec{{ID: 0, Name: "axis", Default: 0, Min: 0, Max: 2, Width: WidthU8}},
		New:    func() Impl { return &flipFilter{} },
	},
	TypeRotate: {
		UUID: "9d1e2f3a-4b5c-4d6e-8f7a-1b2c3d4e5f60", Name: "rotate", Category: CategoryDistort,
		Params: []ParamSpec{
			{ID: 0, Name: "angle_tenths_deg", Default: 0, Min: -3600, Max: 3600, Width: WidthI32},
			{ID: 1, Name: "scale_hundredths", Default: 100, Min: 1, Max: 1000, Width: WidthI32},
		},
		New: func() Impl { return &rotateFilter{} },
	},
	TypeKernel3x3: {
		UUID: "95027807-978b-4371-9a14-f6166efc64d9", Name: "kernel_3x3", Category: CategoryEnhance,
		Params: []ParamSpec{
			{ID: 0, Name: "k00", Default: 0, Min: -16, Max: 16, Width: WidthF32},
			{ID: 1, Name: "k01", Default: 0, Min: -16, Max: 16, Width: WidthF32},
			{ID: 2, Name: "k02", Default: 0, Min: -16, Max: 16, Width: WidthF32},
			{ID: 3, Name: "k10", Default: 0, Min: -16, Max: 16, Width: WidthF32},
			{ID: 4, Name: "k11", Default: 1, Min: -16, Max: 16, Width: WidthF32},
			{ID: 5, Name: "k12", Default: 0, Min: -16, Max: 16, Width: WidthF32},
			{ID: 6, Name: "k20", Default: 0, Min: -16, Max: 16, Width: WidthF32},
			{ID: 7, Name: "k21", Default: 0, Min: -16, Max: 16, Width: WidthF32},
			{ID: 8, Name: "k22", Default: 0, Min: -16, Max: 16, Width: WidthF32},
		},
		New: func() Impl { return &kernel3x3Filter{} },
	},
	TypeDeltaHistogram: {
		UUID: "2b3c4d5e-6f70-4182-93a4-b5c6d7e8f901", Name: "delta_histogram", Category: CategoryMeta,
		Params: []ParamSpec{{ID: 0, Name: "corner", Default: 0, Min: 0, Max: 3, Width: WidthU8}},
		New:    func() Impl { return &deltaHistogramFilter{} },
	},
	TypeUniqueCount: {
		UUID: "5e6f7081-9203-4445-a5b6-c7d8e9f0a1b2", Name: "unique_count", Category: CategoryMeta,
		Params: []ParamSpec{
			{ID: 0, Name: "threshold", Default: 12, Min: 0, Max: 255, Width: WidthU8},
			{ID: 1, Name: "corner", Default: 0, Min: 0, Max: 3, Width: WidthU8},
		},
		New: func() Impl { return &uniqueCountFilter{} },
	},
}

// Lookup returns the registry entry for id, or ok=false for an unknown id.
func Lookup(id TypeID) (name string, category Category, params []ParamSpec, ok bool) {
	info, ok := registry[id]
	if !ok {
		return "", 0, nil, false
	}
	return info.Name, info.Category, info.Params, true
}
