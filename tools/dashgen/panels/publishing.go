package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// PublishedByPlatform returns a timeseries panel showing hourly publishes
// by platform.
func PublishedByPlatform() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Published / hour").
		Description("Items published per hour by platform").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`social_post:published:rate5m * 3600`, "{{platform}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("sum")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// MediaPollAttempts returns a timeseries panel showing Instagram container
// status polls by media kind.
func MediaPollAttempts() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Container Polls").
		Description("Instagram media container status polls by kind").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(social_post_media_poll_attempts_total[1h])) by (kind)`,
			"{{kind}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
