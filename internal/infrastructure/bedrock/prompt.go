package bedrock

// buildUserPrompt folds the assembled context into the question. An empty
// context sends the bare question.
func buildUserPrompt(question, contextText string) string {
	if contextText == "" {
		return question
	}
	return "Context:\n" + contextText + "\n\nQuestion: " + question
}
