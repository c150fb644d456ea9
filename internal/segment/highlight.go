// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package segment

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Highlight applies syntax highlighting to code using the chroma library.
// The language tag from the code fence selects the lexer; when the tag is
// empty or unknown, chroma analyses the code and falls back to plain text.
// On any failure the original code is returned unchanged.
func Highlight(code, language string) string {
	return HighlightWithStyle(code, language, DefaultStyle)
}

// HighlightWithStyle is Highlight with an explicit chroma style name.
func HighlightWithStyle(code, language, styleName string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

// DetectLanguage attempts to detect the programming language of code.
// Returns "" when chroma cannot tell.
func DetectLanguage(code string) string {
	lexer := lexers.Analyse(code)
	if lexer != nil {
		return lexer.Config().Name
	}
	return ""
}
