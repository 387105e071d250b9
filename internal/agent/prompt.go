package agent

import "fmt"

// parsePrompt instructs the model to emit extraction JSON and nothing else.
// The schema must stay in sync with resume.Resume's JSON tags.
const parsePrompt = `You are a Resume Parsing AI Agent.

Extract clean, structured JSON from the resume text the user provides.
Do NOT add explanations. JSON only.

Return JSON in the following format:

{
    "name": "",
    "email": "",
    "phone": "",
    "location": "",
    "summary": "",
    "skills": [],
    "experience": [
        {
            "job_title": "",
            "company": "",
            "location": "",
            "start_date": "",
            "end_date": "",
            "description": []
        }
    ],
    "education": [
        {
            "degree": "",
            "school": "",
            "year": ""
        }
    ],
    "certifications": [],
    "projects": [],
    "ats_keywords": []
}`

// analyzePrompt instructs the model to produce the optimization report.
const analyzePrompt = `You are an expert Resume Optimization Agent.

Your tasks:
1. Compare the resume with the job description.
2. Provide:
   - Match percentage (0-100)
   - Missing keywords / skills
   - Weak areas in the resume
   - Rewrite or improve bullet points to match the job
   - Suggest an improved summary section
   - Provide final tailored version of the resume content

Begin your analysis now.`

// analyzeInput builds the user message combining both documents.
func analyzeInput(jobDescription, resumeText string) string {
	return fmt.Sprintf("JOB DESCRIPTION:\n%s\n\nRESUME:\n%s", jobDescription, resumeText)
}
