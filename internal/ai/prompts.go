package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	DetectSkills      string
	InferLevel        string
	GenerateQuestions string
	JudgeQuestion     string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	DetectSkills      string
	InferLevel        string
	GenerateQuestions string
	JudgeQuestion     string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	DetectSkills: `You are a technical resume analyzer. You identify technical skills and assess proficiency levels from resume text. Always respond with valid JSON only.`,

	InferLevel: `You are a technical recruiter analyzing skill proficiency levels. Respond with only one level: beginner, intermediate, or advanced.`,

	GenerateQuestions: `You are an expert technical interviewer. You create personalized, level-appropriate technical interview questions based on resume analysis. Always respond with valid JSON only.`,

	JudgeQuestion: `You are a quality reviewer for technical interview questions. You check whether a question actually covers the stated skill and whether its difficulty matches the stated proficiency level. Always respond with valid JSON only.`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	DetectSkills: `Analyze the following resume text and identify technical skills that match these available skills: %s

Resume text:
%s

For each skill you detect, provide:
1. The skill name (must match one of the available skills exactly)
2. The proficiency level: beginner, intermediate, or advanced
3. Brief context from the resume that supports your assessment

Only include skills that are clearly mentioned or implied in the resume. If a job role is specified (%s), prioritize skills relevant to that role.`,

	InferLevel: `Analyze the following resume excerpts that mention the skill "%s" and determine the proficiency level.

Resume excerpts:
%s

Based on the context, experience descriptions, years of experience, project complexity, and language used, determine if the proficiency level is:
- "beginner": Basic knowledge, learning, introductory experience, familiar with
- "intermediate": Proficient, comfortable, 2-4 years experience, working knowledge
- "advanced": Expert, senior level, 5+ years, deep expertise, lead/architect experience`,

	GenerateQuestions: `You are creating personalized interview questions based on a candidate's resume.

Reference question examples (to understand the style and difficulty):
%s

Candidate's detected skills and proficiency levels:
%s

Resume context (relevant excerpts):
%s

Generate 3-5 technical interview questions that:
1. Match the skill and proficiency level for each detected skill
2. Are personalized based on the resume context
3. Are appropriate for the stated proficiency level:
   - Beginner: Basic concepts, definitions, simple usage
   - Intermediate: Practical application, problem-solving, common patterns
   - Advanced: Complex scenarios, optimization, architecture, deep understanding
4. Are specific and technical (not generic "tell me about yourself" questions)

Generate questions for the top skills first. Return exactly 3-5 questions total.`,

	JudgeQuestion: `Review the following interview question.

Skill: %s
Proficiency level: %s
Question: %s

Resume snippet (may be empty):
%s

Decide whether the question passes both checks:
1. Relevance: the question genuinely exercises the stated skill.
2. Difficulty fit: the question's complexity matches the stated level.

If a check fails, report the violation using exactly one of these labels:
- "skill_mismatch" when the question does not cover the skill
- "question_too_basic_for_level" when the question is too easy for the level
- "question_too_advanced_for_level" when the question is too hard for the level`,
}
