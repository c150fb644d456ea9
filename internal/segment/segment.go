// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package segment

import (
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// SEGMENT TYPES
// =============================================================================

// Fence is the code fence delimiter.
const Fence = "```"

// Segment is one ordered piece of an assistant response.
type Segment struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	IsCode   bool   `json:"is_code"`
	Language string `json:"language,omitempty"`
}

// =============================================================================
// PARSER
// =============================================================================

// Parse splits text into plain and code segments on triple-backtick fences.
//
// The input is trimmed once as a whole, then split on every fence. Parts
// alternate plain, code, plain, code in input order. The first line of each
// code part is its language tag; the tag is stripped from the code text but
// kept on the segment so the highlighter can use it. Parts that are empty
// after trimming produce no segment. An unterminated fence makes the
// trailing part a code segment.
func Parse(text string) []Segment {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var segments []Segment
	for i, part := range strings.Split(trimmed, Fence) {
		if i%2 == 0 {
			if strings.TrimSpace(part) == "" {
				continue
			}
			segments = append(segments, Segment{
				ID:   uuid.NewString(),
				Text: part,
			})
			continue
		}

		language, code := splitLanguageTag(part)
		if strings.TrimSpace(code) == "" {
			continue
		}
		segments = append(segments, Segment{
			ID:       uuid.NewString(),
			Text:     code,
			IsCode:   true,
			Language: language,
		})
	}

	return segments
}

// splitLanguageTag separates the language tag line from the code body.
// A part with no newline is all tag and no code.
func splitLanguageTag(part string) (language, code string) {
	idx := strings.IndexByte(part, '\n')
	if idx < 0 {
		return strings.TrimSpace(part), ""
	}
	return strings.TrimSpace(part[:idx]), part[idx+1:]
}

// HasCode reports whether any segment is a code segment.
func HasCode(segments []Segment) bool {
	for _, seg := range segments {
		if seg.IsCode {
			return true
		}
	}
	return false
}

// Join reassembles segments into display text without fences, separating
// segments with blank lines. Useful for plain-text export.
func Join(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, strings.TrimRight(seg.Text, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
