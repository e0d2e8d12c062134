// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"fmt"
	"slices"
	"sync"
)

// silenceOggBase64 is a short silent Ogg stream in base64 text form.
//
//go:embed silence.ogg.b64
var silenceOggBase64 []byte

// placeholderPayload decodes the embedded silent stream once; the result is shared read-only.
var placeholderPayload = sync.OnceValues(func() ([]byte, error) {
	text := bytes.TrimSpace(silenceOggBase64)
	out := make([]byte, base64.StdEncoding.DecodedLen(len(text)))

	n, err := base64.StdEncoding.Decode(out, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlaceholder, err)
	}

	return out[:n], nil
})

// Placeholder returns a copy of the embedded silent payload written for silenced sounds.
func Placeholder() ([]byte, error) {
	data, err := placeholderPayload()
	if err != nil {
		return nil, err
	}

	return slices.Clone(data), nil
}

// resolvePlaceholder returns the per-call override or the shared embedded payload.
func resolvePlaceholder(opts RewriteOptions) ([]byte, error) {
	if opts.Placeholder != nil {
		return opts.Placeholder, nil
	}

	return placeholderPayload()
}
