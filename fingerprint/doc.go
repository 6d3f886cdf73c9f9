// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package fingerprint derives a short, stable device fingerprint.

The fingerprint is a heuristic anti-duplicate signal sent alongside the
voter's credentials. It is not an identity proof and is not unique.

# Signals

Three signals are gathered concurrently from a Source:

  - canvas: a fixed 200x50 scene rendered and serialized as a data URI
  - gpu: "<vendor>~<renderer>" of the real GPU
  - device: screen, language, CPU, memory, timezone, platform, touch and
    orientation values joined with "|"

A signal that fails or panics contributes an empty string. Generate never
returns an error.

# Sources

  - HostSource reads the machine the portal runs on (sysfs, procfs, env)
  - Reported wraps signals collected by the portal UI in the browser
  - tests supply their own Source

# Hash

	raw := fingerprint.Raw(canvas, gpu, device) // canvas||gpu||device
	fp := fingerprint.Hash(raw)                  // 16 hex characters

Hash runs 32-bit FNV-1a over the UTF-16 code units of raw, keeps that value
as the first half, then continues over the code units in reverse for the
second half. This matches fingerprints recorded by the browser portal.
*/
package fingerprint
