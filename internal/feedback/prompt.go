package feedback

import (
	_ "embed"
	"strings"
)

// DefaultSystemInstruction is used when the request does not carry one.
const DefaultSystemInstruction = "You are a professional resume reviewer."

//go:embed prompts/reviewer_v1.txt
var reviewerPromptV1 string

// BuildPrompt renders the reviewer prompt embedding the resume and, when present,
// the job description.
func BuildPrompt(req Request) string {
	jd := strings.TrimSpace(req.JobDescription)
	section := ""
	if jd != "" {
		section = "\nJob Description:\n" + jd + "\n"
	}
	replacer := strings.NewReplacer(
		"{{RESUME_TEXT}}", req.ResumeText,
		"{{JOB_DESCRIPTION_SECTION}}", section,
	)
	return replacer.Replace(reviewerPromptV1)
}

// SystemInstruction returns the request's system instruction or the default.
func SystemInstruction(req Request) string {
	if s := strings.TrimSpace(req.SystemInstruction); s != "" {
		return s
	}
	return DefaultSystemInstruction
}
