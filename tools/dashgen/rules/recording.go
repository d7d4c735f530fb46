package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: apiVersion,
		Kind:       kind,
		Metadata: PrometheusRuleMetadata{
			Name:   "social-post-recording-rules",
			Labels: ruleLabels(),
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "social-post-recording",
					Rules: []Rule{
						{
							Record: "social_post:api_calls:rate5m",
							Expr:   `sum by (platform) (rate(social_post_api_calls_total[5m]))`,
						},
						{
							Record: "social_post:api_errors:rate5m",
							Expr:   `sum by (platform) (rate(social_post_api_calls_total{status!~"2.."}[5m]))`,
						},
						{
							Record: "social_post:published:rate5m",
							Expr:   `sum by (platform) (rate(social_post_published_total[5m]))`,
						},
						{
							Record: "social_post:token_failures:rate5m",
							Expr:   `sum by (platform) (rate(social_post_token_refreshes_total{result="failure"}[5m]))`,
						},
					},
				},
			},
		},
	}
}
