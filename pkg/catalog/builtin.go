package catalog

import "github.com/flowforge/flowforge/pkg/models"

// defaultTimeSaved estimates minutes saved per run for automations that were
// not instantiated from a template.
var defaultTimeSaved = map[string]int{
	"sales":      30,
	"finance":    45,
	"hr":         20,
	"marketing":  20,
	"operations": 25,
}

// TimeSavedDefault returns the per-run minutes-saved estimate for a category.
// Unknown categories (including "custom") fall back to 10 minutes.
func TimeSavedDefault(category string) int {
	if minutes, ok := defaultTimeSaved[category]; ok {
		return minutes
	}

	return 10
}

func builtinTemplates() []models.Template {
	return []models.Template{
		{
			ID:               "t1",
			Name:             "Auto-sync leads from Gmail to CRM",
			Description:      "Automatically capture new leads from emails and push to your CRM",
			Category:         "sales",
			Icon:             "mail",
			Trigger:          "New email with lead info",
			Action:           "Create CRM contact",
			TimeSavedMinutes: 45,
		},
		{
			ID:               "t2",
			Name:             "Extract invoice data from PDFs",
			Description:      "Parse PDF invoices and populate spreadsheets automatically",
			Category:         "finance",
			Icon:             "file-text",
			Trigger:          "New PDF in Drive",
			Action:           "Extract data to Sheets",
			TimeSavedMinutes: 60,
		},
		{
			ID:               "t3",
			Name:             "New employee onboarding docs",
			Description:      "Send welcome docs to folder and notify team on Slack",
			Category:         "hr",
			Icon:             "users",
			Trigger:          "New employee added",
			Action:           "Send docs + Slack alert",
			TimeSavedMinutes: 30,
		},
		{
			ID:               "t4",
			Name:             "Weekly report to Slack",
			Description:      "Compile weekly metrics and post summary to your Slack channel",
			Category:         "marketing",
			Icon:             "bar-chart",
			Trigger:          "Every Monday 9 AM",
			Action:           "Post report to Slack",
			TimeSavedMinutes: 20,
		},
		{
			ID:               "t5",
			Name:             "Sync inventory across platforms",
			Description:      "Keep inventory levels updated across all your selling platforms",
			Category:         "operations",
			Icon:             "package",
			Trigger:          "Inventory change",
			Action:           "Update all platforms",
			TimeSavedMinutes: 90,
		},
		{
			ID:               "t6",
			Name:             "Auto-respond to customer queries",
			Description:      "AI reads customer emails and drafts responses for review",
			Category:         "sales",
			Icon:             "message-square",
			Trigger:          "New customer email",
			Action:           "Draft AI response",
			TimeSavedMinutes: 35,
		},
		{
			ID:               "t7",
			Name:             "Expense report generation",
			Description:      "Collect receipts from email, categorize, and generate monthly report",
			Category:         "finance",
			Icon:             "credit-card",
			Trigger:          "End of month",
			Action:           "Generate expense report",
			TimeSavedMinutes: 120,
		},
		{
			ID:               "t8",
			Name:             "Social media scheduling",
			Description:      "Queue posts across platforms from a single spreadsheet",
			Category:         "marketing",
			Icon:             "share-2",
			Trigger:          "New row in spreadsheet",
			Action:           "Schedule social posts",
			TimeSavedMinutes: 40,
		},
		{
			ID:               "t9",
			Name:             "Meeting notes to tasks",
			Description:      "Transcribe meetings and create action items in project management tool",
			Category:         "operations",
			Icon:             "clipboard",
			Trigger:          "Meeting ends",
			Action:           "Create tasks from notes",
			TimeSavedMinutes: 25,
		},
		{
			ID:               "t10",
			Name:             "PTO request workflow",
			Description:      "Route PTO requests for approval and update team calendar",
			Category:         "hr",
			Icon:             "calendar",
			Trigger:          "PTO form submitted",
			Action:           "Route for approval",
			TimeSavedMinutes: 15,
		},
		{
			ID:               "t11",
			Name:             "Daily standup summary",
			Description:      "Collect team updates and post daily summary to channel",
			Category:         "operations",
			Icon:             "clock",
			Trigger:          "Daily at 10 AM",
			Action:           "Post summary to Slack",
			TimeSavedMinutes: 15,
		},
		{
			ID:               "t12",
			Name:             "Lead scoring automation",
			Description:      "Score incoming leads based on engagement and notify sales team",
			Category:         "sales",
			Icon:             "target",
			Trigger:          "New lead activity",
			Action:           "Score + notify team",
			TimeSavedMinutes: 50,
		},
	}
}
