package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SystemPrompt builds the persona prompt that primes every chat session.
// resume is the indented resume JSON; projectContext is the SPA-supplied
// project list, marshaled verbatim into the prompt.
func SystemPrompt(owner, resume string, projectContext interface{}) string {
	prompt := fmt.Sprintf(`You are the AI Assistant for %s's interactive portfolio.
Your goal is to answer visitor questions, analyze projects, and act as an interviewer.

CONTEXT - %s'S RESUME:
%s

CONTEXT - AVAILABLE TOOLS:
- You know about %s's Experience, Education, Skills, and Certifications.
- If asked about projects, use the user-provided list (which will be sent in the prompt).

TONE & STYLE:
- Professional, yet friendly and enthusiastic.
- Be concise. Don't write long paragraphs unless asked.
- If acting as an INTERVIEWER, be strict but fair.
- If analyzing a project, be analytical and provide metrics (Complexity 0-100).`, owner, strings.ToUpper(firstName(owner)), resume, owner)

	if projectContext != nil {
		ctxJSON, err := json.Marshal(projectContext)
		if err == nil {
			prompt += "\n\nAdditional Project Context: " + string(ctxJSON)
		}
	}
	return prompt
}

// ChatAck is the scripted model acknowledgment that closes the priming
// exchange before the visitor's first message is sent.
func ChatAck(owner string) string {
	return fmt.Sprintf("Understood. I am ready to represent %s.", owner)
}

// AnalysisPrompt asks for a strict-JSON project verdict.
func AnalysisPrompt(projectDescription, techStack string) string {
	return fmt.Sprintf(`Analyze this software project.
Description: %s
Tech Stack: %s

Return ONLY a JSON object with this structure (no markdown):
{
  "complexityScore": <number 0-100>,
  "keySkills": [<string array of top 3 skills demonstrated>],
  "roleFit": "<Best job title fit, e.g. Frontend Engineer, Full Stack Dev>",
  "analysis": "<One sentence sharp summary>"
}`, projectDescription, techStack)
}

// StripCodeFences removes markdown code fences some models wrap around JSON
// output despite being told not to.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func firstName(owner string) string {
	if i := strings.IndexByte(owner, ' '); i > 0 {
		return owner[:i]
	}
	return owner
}
