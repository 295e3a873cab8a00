// Package prompt turns decoding options into instructions for chat-style
// models that have no length or beam knobs of their own.
package prompt

import (
	"fmt"
	"strings"

	"pdf-summarizer/internal/domain"
)

const base = `You summarize documents extracted from PDF files.

Rules:
- Write a single plain-text paragraph in the language of the document.
- Keep only the central points, figures and names.
- Do not add facts that are not in the document.
- No headings, lists, markdown or preamble.`

// Instruction renders the system instruction for opts. Lengths are in tokens,
// which the rules state as an approximate word budget.
func Instruction(opts domain.GenerationOptions) string {
	var sb strings.Builder
	sb.WriteString(base)

	if opts.MinLength > 0 {
		fmt.Fprintf(&sb, "\n- Use between %d and %d words.", Words(opts.MinLength), Words(opts.MaxLength))
	} else {
		fmt.Fprintf(&sb, "\n- Use at most %d words.", Words(opts.MaxLength))
	}
	if opts.LengthPenalty != nil && *opts.LengthPenalty > 1 {
		sb.WriteString("\n- Prefer the upper end of the length range.")
	}
	return sb.String()
}

// Words converts a token budget into a rough word count.
func Words(tokens int) int {
	if tokens <= 0 {
		return 0
	}
	w := tokens * 3 / 4
	if w < 1 {
		return 1
	}
	return w
}

