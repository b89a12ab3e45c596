// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package catalog describes the city / district / neighborhood hierarchy
// participants pick from, and loads it from a YAML seed file.
package catalog
