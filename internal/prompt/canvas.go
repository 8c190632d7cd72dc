package prompt

import (
	"fmt"
	"strings"
)

// Output formats offered by the front-ends.
const (
	OutputNaturalText   = "Natural Text"
	OutputTechnicalDocs = "Technical Documentation"
	OutputCode          = "Code"
	OutputMarkdown      = "Markdown"
)

// OutputFormats lists the output formats in display order.
var OutputFormats = []string{OutputNaturalText, OutputTechnicalDocs, OutputCode, OutputMarkdown}

// Canvas describes a structured prompt: who the model should be, who it
// writes for, and how the result should look.
type Canvas struct {
	Persona      string   `json:"persona"`
	Audience     string   `json:"audience"`
	Task         string   `json:"task"`
	Steps        []string `json:"steps,omitempty"`
	Context      string   `json:"context"`
	References   []string `json:"references,omitempty"`
	OutputFormat string   `json:"output_format"`
	Tonality     string   `json:"tonality"`
}

func (c *Canvas) instruction(raw string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("You are a %s focused on delivering results for %s.\n\n", c.Persona, c.Audience))
	b.WriteString(fmt.Sprintf("Task: %s\n\n", c.Task))

	b.WriteString("Step-by-Step Approach:\n")
	for _, step := range c.Steps {
		b.WriteString("- " + step + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Context: %s\n\n", c.Context))
	b.WriteString(fmt.Sprintf("References: %s\n\n", strings.Join(c.References, ", ")))

	b.WriteString("Output Requirements:\n")
	b.WriteString(fmt.Sprintf("- Format: %s\n", c.OutputFormat))
	b.WriteString(fmt.Sprintf("- Tone: %s\n\n", c.Tonality))

	b.WriteString("Rewrite the prompt below so it follows this canvas. ")
	b.WriteString("Return only the rewritten prompt, with no labels or commentary.\n\n")
	b.WriteString("Prompt: \"")
	b.WriteString(raw)
	b.WriteString("\"\n")
	b.WriteString(AnswerMarker)

	return b.String()
}

// SplitLines splits a multi-line field into trimmed, non-empty entries.
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
