package chat

import (
	"fmt"
	"strings"

	"github.com/carson-networks/spend-tracker/internal/parser"
)

const (
	GreetingMessage  = "Hi! I'm your AI transaction assistant. Tell me about your spending like: 'I spent $45 on lunch and $12 on coffee today'"
	NoneFoundMessage = "I couldn't find any transactions in that message. Try something like: 'I spent $20 on lunch' or 'Coffee $5, gas $25'"
	CancelledMessage = "Okay, I've cancelled those transactions. What else can I help you with?"
	ReselectMessage  = "Please type a number from the list above to select a transaction, or 'cancel' to start over."

	unavailableMessage = "🔌 Cannot connect to AI service. Please make sure the language model is running."
	unparseableMessage = "🤖 AI processing error. The model might be loading - please try again in a moment."
	genericMessage     = "Sorry, I had trouble processing that. Please try again."

	formSuffix = "I've filled out the form below - please review and submit!"
)

func foundMessage(c parser.Candidate) string {
	return fmt.Sprintf("✅ Found: %s. %s", c.Summary(), formSuffix)
}

func selectedMessage(c parser.Candidate) string {
	return fmt.Sprintf("✅ Selected: %s. %s", c.Summary(), formSuffix)
}

func savedMessage(c parser.Candidate) string {
	return fmt.Sprintf("💾 Saved: %s.", c.Summary())
}

func listMessage(candidates []parser.Candidate) string {
	items := make([]string, len(candidates))
	for i, c := range candidates {
		items[i] = fmt.Sprintf("%d. %s", i+1, c.Summary())
	}
	return fmt.Sprintf("I found %d transactions: %s. Which one would you like me to fill out first? (Type the number)",
		len(candidates), strings.Join(items, ", "))
}
