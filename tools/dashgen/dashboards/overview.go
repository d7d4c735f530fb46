// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/social-post/tools/dashgen/panels"
)

// BuildOverview constructs the Social Post Overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Social Post Overview").
		Uid("social-post-overview").
		Tags([]string{"social-post"}).
		Refresh("1m").
		Time("now-7d", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.LastRunStat()).
		WithPanel(panels.Published24hStat()).
		WithPanel(panels.APIErrors24hStat()).
		WithPanel(panels.TokenFailures24hStat()))

	// Row 2: Remote APIs.
	b.WithRow(dashboard.NewRowBuilder("Remote APIs").
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.APILatency()).
		WithPanel(panels.APIErrorRatio()))

	// Row 3: Publishing.
	b.WithRow(dashboard.NewRowBuilder("Publishing").
		WithPanel(panels.PublishedByPlatform()).
		WithPanel(panels.MediaPollAttempts()))

	// Row 4: Auth.
	b.WithRow(dashboard.NewRowBuilder("Auth").
		WithPanel(panels.TokenRefreshes()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
