// Package prompt builds the instructions sent to the model. The user's text is
// embedded verbatim: no escaping or sanitization happens here, so a prompt can
// carry text that reads like instructions to the model.
package prompt

import (
	"strings"
)

// AnswerMarker ends every instruction, right where the model's answer is expected.
const AnswerMarker = "Rephrased:"

const preamble = "You are a professional prompt engineer. " +
	"Optimize the following prompt by making it clearer, more concise, and more effective.\n" +
	"Return only the rewritten prompt, with no labels, explanations, or commentary.\n" +
	"If the prompt is already optimal, return it unchanged.\n\n"

// Format wraps raw in the fixed rephrasing instruction.
func Format(raw string) string {
	var b strings.Builder
	b.Grow(len(preamble) + len(raw) + 32)

	b.WriteString(preamble)
	b.WriteString("User request: \"")
	b.WriteString(raw)
	b.WriteString("\"\n")
	b.WriteString(AnswerMarker)

	return b.String()
}

// Craft returns the instruction for raw. A nil canvas yields Format(raw).
func Craft(canvas *Canvas, raw string) string {
	if canvas == nil {
		return Format(raw)
	}
	return canvas.instruction(raw)
}
