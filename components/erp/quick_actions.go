package erp

import "github.com/ettle/strcase"

// buildQuickActions turns labels into inert actions with snake_case codes.
func buildQuickActions(labels []string) []QuickAction {
	actions := make([]QuickAction, 0, len(labels))
	for _, label := range labels {
		if label == "" {
			continue
		}
		actions = append(actions, QuickAction{
			Code:  strcase.ToSnake(label),
			Label: label,
		})
	}
	return actions
}
