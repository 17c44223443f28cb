package translation

import (
	"fmt"

	"codeberg.org/snonux/codetranslator/internal/languages"
)

// SystemPrompt is sent as the system message to chat-style providers
const SystemPrompt = "You are an expert programmer in all programming languages. You only reply with the requested output and never wrap code in markdown code fences."

// BuildPrompt renders the instruction for req. Natural language on either
// side switches the template to explaining or writing code.
func BuildPrompt(req Request) string {
	switch {
	case req.InputLanguage == languages.NaturalLanguage:
		return fmt.Sprintf(`You are an expert programmer in all programming languages. Translate the natural language to "%[1]s" code. Do not include `+"```"+`.

Example translating from natural language to JavaScript:

Natural language:
Print the numbers 0 to 9.

JavaScript code:
for (let i = 0; i < 10; i++) {
  console.log(i);
}

Natural language:
%[2]s

%[1]s code (no `+"```"+`):
`, req.OutputLanguage, req.InputCode)

	case req.OutputLanguage == languages.NaturalLanguage:
		return fmt.Sprintf(`You are an expert programmer in all programming languages. Translate the "%[1]s" code to natural language in plain English that the average adult could understand. Respond as bullet points starting with -.

Example translating from JavaScript to natural language:

JavaScript code:
for (let i = 0; i < 10; i++) {
  console.log(i);
}

Natural language:
- Print the numbers 0 to 9.

%[1]s code:
%[2]s

Natural language:
`, req.InputLanguage, req.InputCode)

	default:
		return fmt.Sprintf(`You are an expert programmer in all programming languages. Translate the "%[1]s" code to "%[2]s" code. Do not include `+"```"+`.

Example translating from JavaScript to Python:

JavaScript code:
for (let i = 0; i < 10; i++) {
  console.log(i);
}

Python code:
for i in range(10):
  print(i)

%[1]s code:
%[3]s

%[2]s code (no `+"```"+`):
`, req.InputLanguage, req.OutputLanguage, req.InputCode)
	}
}
