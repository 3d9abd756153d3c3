package tutor

import "fmt"

// The Traditional Chinese prompts reproduce the wording course operators have
// tuned against their completion models; treat them as data, not prose to be
// edited casually.

const groundedAnswerPrompt = `請使用繁體中文回答以下問題。根據上下文回答，如果上下文資訊不足，你可以根據你的知識補充回答，但請明確指出哪些是來自上下文，哪些是你的補充說明。請確保回答完全使用繁體中文，不要使用任何英文。

上下文：
%s

問題：%s

請提供詳細的繁體中文回答：`

const generalAnswerPrompt = `請使用繁體中文回答以下問題，提供詳細且有幫助的資訊。請確保回答完全使用繁體中文，不要使用任何英文。

問題：%s

請提供詳細的繁體中文回答：`

const generalKnowledgeNotice = "此回答來自 AI 的一般知識，未參考上傳的課程內容。"

const quizPromptZH = `請根據以下課程內容，生成%d題繁體中文單選題。每題必須嚴格按照以下格式：

題目1：[題目內容]
A. [選項A內容]
B. [選項B內容]
C. [選項C內容]
D. [選項D內容]
答案：[A或B或C或D]

題目2：[題目內容]
...以此類推

注意事項：
1. 每題必須以「題目X：」開頭，X為題號
2. 選項必須為A、B、C、D四個，每個選項單獨一行
3. 答案必須標明為「答案：X」，X為A、B、C、D其中之一
4. 請勿使用「以上皆是」、「以上皆非」等模糊選項
5. 題目必須與提供的課程內容直接相關
6. 所有內容必須使用繁體中文

課程內容：
%s`

const quizPromptEN = `Based on the course content below, generate %d multiple-choice questions in English. Every question must strictly follow this format:

Question 1: [question text]
A. [option A]
B. [option B]
C. [option C]
D. [option D]
Answer: [A, B, C or D]

Question 2: [question text]
...and so on

Requirements:
1. Every question must start with "Question X:" where X is its number
2. Exactly four options A, B, C, D, each on its own line
3. The answer must be stated as "Answer: X" with X one of A, B, C, D
4. Do not use vague options such as "all of the above" or "none of the above"
5. Questions must relate directly to the provided course content

Course content:
%s`

func answerPrompt(question, context string) string {
	if len(context) > 0 {
		return fmt.Sprintf(groundedAnswerPrompt, context, question)
	}
	return fmt.Sprintf(generalAnswerPrompt, question)
}

func quizPrompt(language string, n int, context string) string {
	if language == "en" {
		return fmt.Sprintf(quizPromptEN, n, context)
	}
	return fmt.Sprintf(quizPromptZH, n, context)
}
