// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/social-post/tools/dashgen/rules"
)

// Result collects validation findings.
type Result struct {
	Errors   []error
	Warnings []string
}

// Ok reports whether there were no errors.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

// histogramSuffixes are the series a histogram metric expands into.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Dashboard validates every query expression in dash.
func Dashboard(dash *dashboard.Dashboard, known map[string]bool) *Result {
	res := &Result{}

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Errorf("encoding dashboard: %w", err))
		return res
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Errorf("decoding dashboard: %w", err))
		return res
	}

	exprs := collectExprs(doc, nil)
	if len(exprs) == 0 {
		res.Warnings = append(res.Warnings, "dashboard has no query expressions")
	}
	for _, expr := range exprs {
		checkExpr(res, expr, known)
	}
	return res
}

// Rules validates every rule expression in cr.
func Rules(cr rules.PrometheusRule, known map[string]bool) *Result {
	res := &Result{}
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			switch {
			case r.Record == "" && r.Alert == "":
				res.Errors = append(res.Errors, fmt.Errorf("group %s: rule %q has neither record nor alert", g.Name, r.Expr))
			case r.Record != "" && r.Alert != "":
				res.Errors = append(res.Errors, fmt.Errorf("group %s: rule %s sets both record and alert", g.Name, r.Record))
			}
			checkExpr(res, r.Expr, known)
		}
	}
	return res
}

// collectExprs walks a decoded JSON document gathering "expr" strings.
func collectExprs(v any, out []string) []string {
	switch node := v.(type) {
	case map[string]any:
		if expr, ok := node["expr"].(string); ok {
			out = append(out, expr)
		}
		for _, child := range node {
			out = collectExprs(child, out)
		}
	case []any:
		for _, child := range node {
			out = collectExprs(child, out)
		}
	}
	return out
}

func checkExpr(res *Result, expr string, known map[string]bool) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Errorf("parsing %q: %w", expr, err))
		return
	}

	selectors := 0
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		selectors++
		name := metricName(vs)
		if name == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%q selects without a metric name", expr))
			return nil
		}
		if !isKnown(name, known) {
			res.Errors = append(res.Errors, fmt.Errorf("%q references unknown metric %s", expr, name))
		}
		return nil
	})

	if selectors == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%q references no metrics", expr))
	}
}

func metricName(vs *parser.VectorSelector) string {
	if vs.Name != "" {
		return vs.Name
	}
	for _, m := range vs.LabelMatchers {
		if m.Name == labels.MetricName && m.Type == labels.MatchEqual {
			return m.Value
		}
	}
	return ""
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
