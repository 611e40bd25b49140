package analysis

import "fmt"

// The prompt templates demand a strict JSON-only response. Local models with
// chain-of-thought enabled tend to ignore this and emit <think> spans or
// markdown fences anyway, which is what the cleaning stages downstream exist
// for.

const englishPromptTemplate = `You are an AI assistant specialized in analyzing meeting transcripts and generating structured insights. Your goal is to process the provided transcript and extract the following information in a well-formatted JSON object:

1.  **title**: A concise, descriptive title for the entire note, summarizing its main topic.
2.  **summary**: A concise overview of the main points and outcomes discussed.
3.  **ideas**: A list of potential ideas or suggestions that arose from the discussion.
4.  **tasks**: A list of actionable tasks identified, including a title, optional description, and priority (Low, Medium, High, Urgent).
5.  **structured_notes**: A list of key discussion points or decisions, formatted as structured notes with a title, content, relevant tags (as a list of strings), and a note type (Meeting, Brainstorm, Decision, Action, Reference).

IMPORTANT INSTRUCTIONS:
- Ensure the JSON output is valid and strictly follows the specified structure.
- Do NOT include any other text outside the JSON object.
- Do NOT include any thinking process, explanations, or notes about your analysis.
- ONLY output the final JSON result directly.
- Do NOT use <think> tags or any similar markup.
- If the provided transcript is empty or contains only whitespace, return an empty JSON object {}.

Transcript: %s

JSON Output:`

const chinesePromptTemplate = `你是一个文本分析助手，需要处理各种类型的文本内容并生成结构化分析。请客观地分析提供的文本内容，并提取以下信息到一个格式良好的JSON对象中：

1.  **title（标题）**: 为文本内容提供一个简洁、描述性的标题，总结其主要话题。
2.  **summary（摘要）**: 对文本的主要观点和内容进行客观、简洁的概述。
3.  **ideas（观点）**: 文本中提到的主要观点、论述或见解列表。
4.  **tasks（要点）**: 文本中提及的重要事项或关键信息，包括标题、可选描述和重要程度（Low、Medium、High、Urgent）。
5.  **structured_notes（结构化笔记）**: 文本的关键信息点，格式化为结构化笔记，包含标题、内容、相关标签（字符串列表）和类型（Meeting、Brainstorm、Decision、Action、Reference）。

重要指示：
- JSON输出格式必须正确且严格遵循指定结构
- 保持客观中立的分析态度
- 不要在JSON对象之外包含任何其他文本
- 不要包含任何思考过程、解释或分析笔记
- 只输出最终的JSON结果
- 不要使用<think>标签或任何类似的标记
- 如果文本为空或仅包含空白字符，返回空的JSON对象 {}

无论文本内容如何，都请直接输出结构化的JSON分析结果。

Transcript: %s

JSON Output:`

// BuildPrompt renders the instruction template for the detected language with
// the preprocessed transcript interpolated at the end. The transcript is
// natural-language context, not structural syntax, so no escaping is needed.
func BuildPrompt(lang Language, transcript string) string {
	switch lang {
	case LangChinese:
		return fmt.Sprintf(chinesePromptTemplate, transcript)
	default:
		return fmt.Sprintf(englishPromptTemplate, transcript)
	}
}
