// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"fmt"
	"strings"

	"github.com/woozymasta/pathrules"
)

// soundMatcher holds compiled sound selection rules.
type soundMatcher struct {
	matcher *pathrules.Matcher
}

// ParseRules converts gitignore-style patterns into selection rules.
// A leading "!" excludes; every other pattern includes. Later rules win.
func ParseRules(patterns ...string) []pathrules.Rule {
	rules := make([]pathrules.Rule, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		action := pathrules.ActionInclude
		if rest, ok := strings.CutPrefix(pattern, "!"); ok {
			action = pathrules.ActionExclude
			pattern = strings.TrimSpace(rest)
		}

		if pattern == "" {
			continue
		}

		rules = append(rules, pathrules.Rule{Action: action, Pattern: pattern})
	}

	return rules
}

// newSoundMatcher compiles selection rules; no rules yields a nil matcher that matches nothing.
func newSoundMatcher(rules []pathrules.Rule) (*soundMatcher, error) {
	rules = normalizeSoundRules(rules)
	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(rules, pathrules.MatcherOptions{
		CaseInsensitive: true,
		DefaultAction:   pathrules.ActionExclude,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidSoundRules, err)
	}

	return &soundMatcher{matcher: matcher}, nil
}

// normalizeSoundRules trims patterns and drops empty ones.
func normalizeSoundRules(rules []pathrules.Rule) []pathrules.Rule {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := strings.TrimSpace(rule.Pattern)
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	return normalized
}

// Match reports whether sound is included by the rules.
func (m *soundMatcher) Match(sound Sound) bool {
	if m == nil || m.matcher == nil {
		return false
	}

	return m.matcher.Included(sound.String(), false)
}

// SelectSounds returns the sounds of the skin's canonical listing matched by rules.
// Catalog sounds the skin does not define are matched too, which is harmless for rewrites.
func SelectSounds(skin *Skin, rules []pathrules.Rule) (SoundSet, error) {
	matcher, err := newSoundMatcher(rules)
	if err != nil {
		return nil, err
	}

	set := make(SoundSet)
	for _, sound := range SortedSounds(skin) {
		if matcher.Match(sound) {
			set.Add(sound)
		}
	}

	return set, nil
}
