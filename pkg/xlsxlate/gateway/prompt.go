package gateway

import (
	"strings"

	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/models"
)

// DefaultTerms are product and logistics terms kept verbatim.
var DefaultTerms = []string{"PUDO", "UPS", "Dangerous Goods", "Maotai"}

// DefaultInstruction is the system instruction template. The placeholders
// {{source}}, {{target}} and {{terms}} are substituted per call.
const DefaultInstruction = `You are a logistics and IT expert fluent in {{source}} and {{target}}.
Task: translate the content into {{target}}.
Rules:
- Keep terminology ({{terms}}) and identifiers such as order numbers unchanged.
- Content mixing languages must be merged into a single {{target}} translation.
- Return only the translated text, without commentary.`

// Instruction renders an instruction template for a language pair.
func Instruction(template string, source, target models.Language, terms []string) string {
	if template == "" {
		template = DefaultInstruction
	}
	if terms == nil {
		terms = DefaultTerms
	}
	r := strings.NewReplacer(
		"{{source}}", string(source),
		"{{target}}", string(target),
		"{{terms}}", strings.Join(terms, ", "),
	)
	return r.Replace(template)
}
