package rules

// AlertRules returns a PrometheusRule CR containing alert rules for the
// social-post binaries.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: apiVersion,
		Kind:       kind,
		Metadata: PrometheusRuleMetadata{
			Name:   "social-post-alerts",
			Labels: ruleLabels(),
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "social-post-alerts",
					Rules: []Rule{
						{
							Alert: "SocialPostTokenFailures",
							Expr:  `increase(social_post_token_refreshes_total{result="failure"}[1h]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Token refresh failing for {{ $labels.platform }}",
								"description": "A token refresh or grant failed in the last hour. For eBay, re-run `ebay-list auth`.",
							},
						},
						{
							Alert: "SocialPostAPIErrors",
							Expr:  `social_post:api_errors:rate5m / social_post:api_calls:rate5m > 0.5`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Most {{ $labels.platform }} API calls are failing",
								"description": "More than half of the remote API calls returned a non-2xx status over 10 minutes.",
							},
						},
						{
							Alert: "SocialPostStale",
							Expr:  `time() - max(push_time_seconds{job=~"ebay-list|fb-post|ig-post|reddit-post|tweet"}) > 7 * 86400`,
							For:   "1h",
							Labels: map[string]string{
								"severity": "info",
							},
							Annotations: map[string]string{
								"summary":     "No social-post runs in a week",
								"description": "None of the social-post binaries has pushed metrics for more than 7 days.",
							},
						},
					},
				},
			},
		},
	}
}
