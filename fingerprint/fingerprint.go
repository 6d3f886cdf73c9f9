// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// Signal names, used in fault reports and metrics labels
const (
	SignalCanvas = "canvas"
	SignalGPU    = "gpu"
	SignalDevice = "device"
)

// ErrUnavailable means the platform does not offer a capability.
var ErrUnavailable = errors.New("capability unavailable")

// Source gathers the raw device signals.
type Source interface {
	Canvas(ctx context.Context) (string, error)
	GPU(ctx context.Context) (GPUInfo, error)
	Device(ctx context.Context) (DeviceInfo, error)
}

type GPUInfo struct {
	Vendor   string
	Renderer string
}

func (g GPUInfo) String() string {
	return g.Vendor + "~" + g.Renderer
}

type DeviceInfo struct {
	ScreenWidth         int
	ScreenHeight        int
	ColorDepth          int
	Language            string
	Languages           []string
	HardwareConcurrency int
	DeviceMemory        float64
	TimezoneOffset      int
	Platform            string
	MaxTouchPoints      int
	Orientation         string
}

// String joins the fields with "|" in their fixed order.
func (d DeviceInfo) String() string {
	parts := []string{
		strconv.Itoa(d.ScreenWidth),
		strconv.Itoa(d.ScreenHeight),
		strconv.Itoa(d.ColorDepth),
		d.Language,
		strings.Join(d.Languages, ","),
		strconv.Itoa(d.HardwareConcurrency),
		strconv.FormatFloat(d.DeviceMemory, 'f', -1, 64),
		strconv.Itoa(d.TimezoneOffset),
		d.Platform,
		strconv.Itoa(d.MaxTouchPoints),
		d.Orientation,
	}
	return strings.Join(parts, "|")
}

// Raw builds the string that gets hashed.
func Raw(canvas, gpu, device string) string {
	return canvas + "||" + gpu + "||" + device
}

// Generator fingerprints the device behind Source.
type Generator struct {
	Source Source
	// OnFault is told about every signal that degraded to "".
	OnFault func(signal string, err error)
}

// Generate collects the three signals concurrently and hashes them.
// It never fails; a signal that errors or panics contributes "".
func (g Generator) Generate(ctx context.Context) string {
	var canvas, gpu, device string

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		canvas = g.collect(ctx, SignalCanvas, func(ctx context.Context) (string, error) {
			return g.Source.Canvas(ctx)
		})
	}()
	go func() {
		defer wg.Done()
		gpu = g.collect(ctx, SignalGPU, func(ctx context.Context) (string, error) {
			info, err := g.Source.GPU(ctx)
			if err != nil {
				return "", err
			}
			return info.String(), nil
		})
	}()
	go func() {
		defer wg.Done()
		device = g.collect(ctx, SignalDevice, func(ctx context.Context) (string, error) {
			info, err := g.Source.Device(ctx)
			if err != nil {
				return "", err
			}
			return info.String(), nil
		})
	}()
	wg.Wait()

	return Hash(Raw(canvas, gpu, device))
}

// Generate is shorthand for Generator{Source: src}.Generate(ctx).
func Generate(ctx context.Context, src Source) string {
	return Generator{Source: src}.Generate(ctx)
}

func (g Generator) collect(ctx context.Context, signal string, fn func(context.Context) (string, error)) (out string) {
	defer func() {
		if r := recover(); r != nil {
			g.fault(signal, fmt.Errorf("panic: %v", r))
			out = ""
		}
	}()

	if g.Source == nil {
		g.fault(signal, ErrUnavailable)
		return ""
	}

	s, err := fn(ctx)
	if err != nil {
		g.fault(signal, err)
		return ""
	}
	return s
}

func (g Generator) fault(signal string, err error) {
	slog.Debug("fingerprint signal degraded", "signal", signal, "error", err)
	if g.OnFault != nil {
		g.OnFault(signal, err)
	}
}
