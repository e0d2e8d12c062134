// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import "strings"

// memberPathSeparator separates path segments in archive member names.
const memberPathSeparator = "/"

// isRootMember reports whether the member name has no path separator.
func isRootMember(name string) bool {
	return !strings.Contains(name, memberPathSeparator)
}

// splitFilename splits name into stem and extension at the last dot.
// A name without a dot, or whose only dot is the leading one, has an empty extension.
func splitFilename(name string) (string, string) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return name, ""
	}

	return name[:idx], name[idx+1:]
}
