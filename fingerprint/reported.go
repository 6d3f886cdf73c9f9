// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fingerprint

import (
	"context"

	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
)

// Reported serves signals the portal UI collected in the browser.
type Reported struct {
	Signals models.DeviceSignals
}

func (r Reported) Canvas(ctx context.Context) (string, error) {
	if r.Signals.Canvas == "" {
		return "", ErrUnavailable
	}
	return r.Signals.Canvas, nil
}

func (r Reported) GPU(ctx context.Context) (GPUInfo, error) {
	if r.Signals.GPUVendor == "" && r.Signals.GPURenderer == "" {
		return GPUInfo{}, ErrUnavailable
	}
	return GPUInfo{Vendor: r.Signals.GPUVendor, Renderer: r.Signals.GPURenderer}, nil
}

func (r Reported) Device(ctx context.Context) (DeviceInfo, error) {
	s := r.Signals
	return DeviceInfo{
		ScreenWidth:         s.ScreenWidth,
		ScreenHeight:        s.ScreenHeight,
		ColorDepth:          s.ColorDepth,
		Language:            s.Language,
		Languages:           s.Languages,
		HardwareConcurrency: s.HardwareConcurrency,
		DeviceMemory:        s.DeviceMemory,
		TimezoneOffset:      s.TimezoneOffset,
		Platform:            s.Platform,
		MaxTouchPoints:      s.MaxTouchPoints,
		Orientation:         s.Orientation,
	}, nil
}
