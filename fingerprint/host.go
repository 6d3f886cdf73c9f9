// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fingerprint

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	drmVendorPath = "sys/class/drm/card0/device/vendor"
	drmDevicePath = "sys/class/drm/card0/device/device"
	meminfoPath   = "proc/meminfo"
)

// Display is the geometry of the screen attached to the host.
type Display struct {
	Width       int
	Height      int
	ColorDepth  int
	TouchPoints int
	Orientation string
}

// HostSource reads signals from the machine the portal runs on.
type HostSource struct {
	Display Display
	// FS is rooted at "/" and used for sysfs and procfs lookups.
	FS     fs.FS
	Getenv func(string) string
	Now    func() time.Time
	NumCPU func() int
	GOOS   string
	GOARCH string
}

func NewHostSource(d Display) *HostSource {
	return &HostSource{
		Display: d,
		FS:      os.DirFS("/"),
		Getenv:  os.Getenv,
		Now:     time.Now,
		NumCPU:  runtime.NumCPU,
		GOOS:    runtime.GOOS,
		GOARCH:  runtime.GOARCH,
	}
}

func (h *HostSource) Canvas(ctx context.Context) (string, error) {
	return RenderCanvas()
}

// GPU reports the PCI vendor and device ids of the first DRM card.
func (h *HostSource) GPU(ctx context.Context) (GPUInfo, error) {
	vendor, err := fs.ReadFile(h.FS, drmVendorPath)
	if err != nil {
		return GPUInfo{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	device, err := fs.ReadFile(h.FS, drmDevicePath)
	if err != nil {
		return GPUInfo{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return GPUInfo{
		Vendor:   strings.TrimSpace(string(vendor)),
		Renderer: strings.TrimSpace(string(device)),
	}, nil
}

func (h *HostSource) Device(ctx context.Context) (DeviceInfo, error) {
	lang := h.primaryLanguage()

	var langs []string
	for _, l := range strings.Split(h.Getenv("LANGUAGE"), ":") {
		if tag := canonicalLanguage(l); tag != "" {
			langs = append(langs, tag)
		}
	}
	if len(langs) == 0 && lang != "" {
		langs = []string{lang}
	}

	_, offset := h.Now().Zone()

	return DeviceInfo{
		ScreenWidth:         h.Display.Width,
		ScreenHeight:        h.Display.Height,
		ColorDepth:          h.Display.ColorDepth,
		Language:            lang,
		Languages:           langs,
		HardwareConcurrency: h.NumCPU(),
		DeviceMemory:        h.deviceMemory(),
		TimezoneOffset:      -offset / 60,
		Platform:            platformName(h.GOOS, h.GOARCH),
		MaxTouchPoints:      h.Display.TouchPoints,
		Orientation:         h.Display.Orientation,
	}, nil
}

func (h *HostSource) primaryLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag := canonicalLanguage(h.Getenv(key)); tag != "" {
			return tag
		}
	}
	return ""
}

// deviceMemory mirrors the browser's bucketing: GiB rounded down to a power
// of two, clamped to [0.25, 8]. Returns 0 when unknown.
func (h *HostSource) deviceMemory() float64 {
	data, err := fs.ReadFile(h.FS, meminfoPath)
	if err != nil {
		return 0
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || fields[0] != "MemTotal:" {
			continue
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || kb <= 0 {
			return 0
		}
		gib := kb / (1024 * 1024)
		bucket := math.Pow(2, math.Floor(math.Log2(gib)))
		return math.Min(math.Max(bucket, 0.25), 8)
	}
	return 0
}

// canonicalLanguage turns a POSIX locale ("en_US.UTF-8") into a BCP 47 tag.
func canonicalLanguage(locale string) string {
	locale, _, _ = strings.Cut(locale, ".")
	locale, _, _ = strings.Cut(locale, "@")
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	return tag.String()
}

func platformName(goos, goarch string) string {
	switch goos {
	case "linux":
		switch goarch {
		case "amd64":
			return "Linux x86_64"
		case "arm64":
			return "Linux aarch64"
		}
		return "Linux " + goarch
	case "darwin":
		return "MacIntel"
	case "windows":
		return "Win32"
	}
	return goos + " " + goarch
}
