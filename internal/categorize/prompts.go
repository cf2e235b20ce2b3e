package categorize

import (
	"strings"

	"github.com/dvloznov/money-tracker/internal/model"
	"github.com/dvloznov/money-tracker/internal/taxonomy"
)

// systemPrompt pins the model to its role for the primary extraction call.
const systemPrompt = "You are a financial transaction analysis assistant. Respond only in JSON format."

// compressionSystemPrompt is used by the secondary description-shortening
// call when the sanitized description is not expressible in English.
const compressionSystemPrompt = "You compress transaction descriptions. Respond with the description only, no JSON, no quotes."

// builtinExamples is the fixed few-shot block used until the trainer has
// mined real examples from the ledger.
const builtinExamples = `- "Купил хлеб за 100 рублей" -> {"type": "Expense", "amount": 100, "currency": "RUB", "category": "Groceries", "description": "Bread"}
- "Потратил 300 на кофе" -> {"type": "Expense", "amount": 300, "currency": "RUB", "category": "Restaurants & Cafes", "description": "Coffee"}
- "Spent 50$ on taxi" -> {"type": "Expense", "amount": 50, "currency": "USD", "category": "Transport", "description": "Taxi"}
- "Got salary 5000₪" -> {"type": "Income", "amount": 5000, "currency": "ILS", "category": "Salary", "description": "Salary"}
- "+200 freelance" -> {"type": "Income", "amount": 200, "currency": "ILS", "category": "Freelance", "description": "Freelance"}`

// buildExtractionPrompt assembles the single prompt for the primary model
// call: task instructions, the full current category lists for both types,
// the few-shot example block, and the raw user text.
func buildExtractionPrompt(tax *taxonomy.Taxonomy, examplesBlock, text string) string {
	if strings.TrimSpace(examplesBlock) == "" {
		examplesBlock = builtinExamples
	}

	var b strings.Builder
	b.WriteString("Analyze the following transaction message and extract information.\n\n")
	b.WriteString("Message: \"" + text + "\"\n\n")

	b.WriteString("Return result STRICTLY in JSON format with the following fields:\n")
	b.WriteString("- type: \"Expense\" or \"Income\"\n")
	b.WriteString("- amount: numeric value (number only, without currency symbol)\n")
	b.WriteString("- currency: currency code (ILS, USD, EUR, RUB, GBP, etc.) - determine from context or default to ILS\n")
	b.WriteString("- category: one of the categories below\n")
	b.WriteString("- description: BRIEF description in ENGLISH (2-3 words max, just the essence, NOT the full original message)\n\n")

	b.WriteString("Expense categories: " + strings.Join(tax.Categories(model.Expense), ", ") + "\n")
	b.WriteString("Income categories: " + strings.Join(tax.Categories(model.Income), ", ") + "\n\n")

	b.WriteString("IMPORTANT for description:\n")
	b.WriteString("- Keep it SHORT (2-3 words maximum)\n")
	b.WriteString("- Always in ENGLISH (translate if needed)\n")
	b.WriteString("- Just the ESSENCE - what item/service, NOT the amount, NOT the full sentence\n\n")

	b.WriteString("If amount is not explicitly stated, try to find it in the text. If you can't determine - set 0.\n")
	b.WriteString("If transaction type is not explicit, determine from context (default - Expense).\n")
	b.WriteString("Detect currency from symbols (₪/$/€/£/₽) or words (shekel/dollar/euro/ruble/pound), default to ILS if not specified.\n\n")

	b.WriteString("Examples:\n")
	b.WriteString(examplesBlock)
	b.WriteString("\n\nReturn ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Do NOT use ```json or any Markdown.\n")

	return b.String()
}

// buildCompressionPrompt asks for a 1-3 word English rendering of a
// description that came back in the wrong language.
func buildCompressionPrompt(description string) string {
	var b strings.Builder
	b.WriteString("Compress the following transaction description to 1-3 ENGLISH words.\n")
	b.WriteString("Translate if needed. No digits, no currency symbols, no punctuation.\n\n")
	b.WriteString("Description: \"" + description + "\"\n")
	return b.String()
}
