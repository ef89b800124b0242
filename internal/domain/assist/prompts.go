package assist

import "fmt"

const outreachPrompt = `Write a short, friendly LinkedIn connection message (under 300 characters)
to %s about the %s role at %s. Mention genuine interest in the company and ask for a brief chat.
Return only the message text.`

const tailorPrompt = `You are an expert ATS resume optimizer.
Job Description: %s
Resume: %s

Rewrite the resume bullet points to maximize keyword match with the JD.
Return strictly a JSON object: { "score_before": number, "score_after": number, "improved_bullets": [], "missing_keywords": [], "suggestions": [] }`

const interviewPrompt = `Generate interview prep for the role of %s at %s.
Job Description context: %s

Return strictly a JSON object with:
{
  "questions": [
     { "question": "string", "answer_star_format": "string", "tips": "string" }
  ],
  "company_tips": []
}`

func buildOutreachPrompt(r OutreachRequest) string {
	recipient := r.Name
	if recipient == "" {
		recipient = "the hiring manager"
	}
	return fmt.Sprintf(outreachPrompt, recipient, r.Role, r.Company)
}

func buildTailorPrompt(r TailorRequest) string {
	return fmt.Sprintf(tailorPrompt, r.JDText, r.ResumeText)
}

func buildInterviewPrompt(r InterviewRequest) string {
	return fmt.Sprintf(interviewPrompt, r.Role, r.Company, r.JDText)
}
