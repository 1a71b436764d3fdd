package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	widgetPolicyOnce sync.Once
	widgetPolicy     *bluemonday.Policy
)

// WidgetPolicy returns the sanitising policy applied to rendered widget
// markup. It admits only the choice-widget vocabulary.
func WidgetPolicy() *bluemonday.Policy {
	widgetPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("option", "label", "input", "span", "svg", "use")
		policy.AllowNoAttrs().OnElements("option", "label", "span", "svg")

		policy.AllowAttrs("class").Globally()
		policy.AllowAttrs("value", "disabled", "selected").OnElements("option")
		policy.AllowAttrs("type", "name", "value", "checked").OnElements("input")
		policy.AllowAttrs("data-complexity").OnElements("span")
		policy.AllowAttrs("href", "xlink:href").OnElements("use")

		widgetPolicy = policy
	})
	return widgetPolicy
}

func sanitizeMarkup(policy *bluemonday.Policy, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || policy == nil {
		return trimmed
	}
	return strings.TrimSpace(policy.Sanitize(trimmed))
}
