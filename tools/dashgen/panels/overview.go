package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// LastRunStat returns a stat panel showing time since any binary last
// pushed metrics.
func LastRunStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Last Run").
		Description("Time since the last push from any social-post binary").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`time() - max(push_time_seconds{`+JobMatcher+`})`, "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}

// Published24hStat returns a stat panel counting items published in the
// last 24 hours.
func Published24hStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Published (24h)").
		Description("Posts, tweets and listings published in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(social_post_published_total[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// APIErrors24hStat returns a stat panel counting non-2xx API responses in
// the last 24 hours.
func APIErrors24hStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("API Errors (24h)").
		Description("Remote API calls that did not return a 2xx status").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(social_post_api_calls_total{status!~"2.."}[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// TokenFailures24hStat returns a stat panel counting failed token
// acquisitions in the last 24 hours.
func TokenFailures24hStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Token Failures (24h)").
		Description("Failed token refreshes or grants; eBay failures need `ebay-list auth`").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(social_post_token_refreshes_total{result="failure"}[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}
