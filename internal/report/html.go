package report

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"sort"
	"strings"
)

const (
	generalGroup = "General"
	timeLayout   = "2006-01-02 15:04:05 MST"
)

// RenderHTML renders a standalone page: an overall banner, a per-target
// summary table, then one card per finding grouped by evidence "target".
func RenderHTML(r *Results) string {
	var b strings.Builder
	b.WriteString("<!doctype html><html><head><meta charset=\"utf-8\"><meta name=\"color-scheme\" content=\"light dark\"><title>cryptoprobe report</title>")
	b.WriteString(`<style>
body{font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:24px;background:#ffffff;color:#111}
.h{font-weight:700;margin:0 0 8px 0}
.card{border:1px solid #eee;border-radius:8px;padding:12px;margin:12px 0;background:#fff}
.badge{display:inline-block;padding:2px 8px;border-radius:999px;font-size:12px;margin-left:8px}
.pass{background:#e6ffed;color:#006644}
.fail{background:#ffebe6;color:#bf2600}
.inc{background:#e6f7ff;color:#0747a6}
.sev-low{background:#eef6ff;color:#0747a6}
.sev-med{background:#fff7e6;color:#a36e00}
.sev-high{background:#ffe6e6;color:#bf2600}
.sev-crit{background:#000;color:#fff}
.active{background:#f0f5ff;color:#2f54eb}
.section{margin-top:16px;padding-top:8px;border-top:1px solid #f0f0f0}
@media (prefers-color-scheme: dark){
  body{background:#0b0b0b;color:#e6e6e6}
  .card{border-color:#2a2a2a;background:#121212}
  .section{border-top-color:#1a1a1a}
  .pass{background:#003d1f;color:#8dffb3}
  .fail{background:#3d0000;color:#ffb3b3}
  .inc{background:#002b4d;color:#8dccff}
  .sev-low{background:#0b2540;color:#8dccff}
  .sev-med{background:#402a00;color:#ffd58a}
  .sev-high{background:#401010;color:#ffb3b3}
  .sev-crit{background:#000;color:#fff}
  .active{background:#001a66;color:#99b3ff}
  .status-pass{background-color:#003d1f}
  .status-fail{background-color:#3d0000}
  .status-inc{background-color:#002b4d}
}
@media print{
  body{margin:8mm}
  .card{page-break-inside:avoid}
}
</style>`)
	b.WriteString("</head><body>")
	b.WriteString(`<div style="margin:8px 0;display:flex;gap:16px;align-items:center">
      <label style="cursor:pointer">
        <input id="toggle-inc" type="checkbox" checked>
        Hide INCONCLUSIVE
      </label>
      <label style="cursor:pointer">
        <input id="toggle-pass" type="checkbox">
        Hide PASS
      </label>
    </div>
    <script>
    (function(){
      function apply(){
        var hideInc = document.getElementById('toggle-inc').checked;
        var hidePass = document.getElementById('toggle-pass').checked;
        var incs = document.querySelectorAll('.status-inc');
        for (var i=0;i<incs.length;i++){ incs[i].style.display = hideInc ? 'none' : ''; }
        var passes = document.querySelectorAll('.status-pass');
        for (var j=0;j<passes.length;j++){ passes[j].style.display = hidePass ? 'none' : ''; }
      }
      document.addEventListener('DOMContentLoaded', apply);
      document.getElementById('toggle-inc').addEventListener('change', apply);
      document.getElementById('toggle-pass').addEventListener('change', apply);
    })();
    </script>`)
	b.WriteString(fmt.Sprintf("<h1 class=\"h\">cryptoprobe report<span class=\"badge\">%s</span></h1>", html.EscapeString(r.TargetType)))
	if len(r.Targets) > 0 {
		b.WriteString("<div>Targets: " + html.EscapeString(strings.Join(r.Targets, ", ")) + "</div>")
	}
	b.WriteString(fmt.Sprintf("<div>Generated: %s</div>", r.GeneratedAt.Format(timeLayout)))

	type agg struct{ pass, fail, inc int }
	groups := map[string][]Finding{}
	sums := map[string]*agg{}
	overall := agg{}
	for _, f := range r.Findings {
		key := groupKey(f)
		groups[key] = append(groups[key], f)
		if sums[key] == nil {
			sums[key] = &agg{}
		}
		switch f.Status {
		case Pass:
			sums[key].pass++
			overall.pass++
		case Fail:
			sums[key].fail++
			overall.fail++
		default:
			sums[key].inc++
			overall.inc++
		}
	}
	b.WriteString(fmt.Sprintf("<div class=\"section\"><div class=\"h\">Overall: <span class=\"badge pass\">PASS %d</span> <span class=\"badge fail\">FAIL %d</span> <span class=\"badge inc\">INC %d</span></div></div>", overall.pass, overall.fail, overall.inc))

	order := groupOrder(groups, r.Targets)
	if len(order) > 0 {
		b.WriteString("<div class=section><div class=h>Summary</div><table style=\"border-collapse:collapse;width:100%;font-size:14px\">")
		b.WriteString("<thead><tr><th style=\"text-align:left;border-bottom:1px solid #ddd\">Target</th><th style=\"text-align:right;border-bottom:1px solid #ddd\">PASS</th><th style=\"text-align:right;border-bottom:1px solid #ddd\">FAIL</th><th style=\"text-align:right;border-bottom:1px solid #ddd\">INCONCLUSIVE</th></tr></thead><tbody>")
		for _, k := range order {
			a := sums[k]
			b.WriteString(fmt.Sprintf("<tr><td style=\"padding:6px 4px\">%s</td><td style=\"padding:6px 4px;text-align:right\">%d</td><td style=\"padding:6px 4px;text-align:right\">%d</td><td style=\"padding:6px 4px;text-align:right\">%d</td></tr>", html.EscapeString(k), a.pass, a.fail, a.inc))
		}
		b.WriteString("</tbody></table></div>")
	}

	for _, k := range order {
		b.WriteString(fmt.Sprintf("<h2 class=\"h section\">%s</h2>", html.EscapeString(k)))
		for _, f := range groups[k] {
			writeCard(&b, f)
		}
	}
	b.WriteString("</body></html>")
	return b.String()
}

func WriteHTMLToFile(r *Results, path string) error {
	return os.WriteFile(path, []byte(RenderHTML(r)), 0o644)
}

func writeCard(b *strings.Builder, f Finding) {
	cl := "inc"
	if f.Status == Pass {
		cl = "pass"
	} else if f.Status == Fail {
		cl = "fail"
	}
	sevCl := "sev-low"
	switch f.Severity {
	case Medium:
		sevCl = "sev-med"
	case High:
		sevCl = "sev-high"
	case Critical:
		sevCl = "sev-crit"
	}
	b.WriteString(fmt.Sprintf("<div class=\"card status-%s\">", cl))
	b.WriteString("<div class=h>")
	b.WriteString(html.EscapeString(f.Name))
	b.WriteString(fmt.Sprintf(" <span class=\"badge %s\">%s</span>", cl, f.Status))
	b.WriteString(fmt.Sprintf(" <span class=\"badge %s\">%s</span>", sevCl, f.Severity))
	if f.Active {
		b.WriteString(" <span class=\"badge active\">ACTIVE</span>")
	}
	b.WriteString("</div>")
	b.WriteString(fmt.Sprintf("<div>Category: %s</div>", html.EscapeString(f.Category)))
	if f.Evidence != nil {
		b.WriteString("<pre style=\"white-space:pre-wrap\">")
		b.WriteString(html.EscapeString(asJSON(f.Evidence)))
		b.WriteString("</pre>")
	}
	if len(f.Mitigations) > 0 {
		b.WriteString("<ul>")
		for _, m := range f.Mitigations {
			b.WriteString("<li>" + html.EscapeString(m) + "</li>")
		}
		b.WriteString("</ul>")
	}
	b.WriteString("</div>")
}

// groupKey is the evidence "target" of a finding, or the general group.
func groupKey(f Finding) string {
	if m, ok := f.Evidence.(map[string]any); ok {
		if t, ok := m["target"].(string); ok && t != "" {
			return t
		}
	}
	return generalGroup
}

// groupOrder lists the general group first, then targets in the order they
// were probed, then anything else alphabetically.
func groupOrder(groups map[string][]Finding, targets []string) []string {
	var order []string
	seen := map[string]bool{}
	add := func(k string) {
		if _, ok := groups[k]; ok && !seen[k] {
			order = append(order, k)
			seen[k] = true
		}
	}
	add(generalGroup)
	for _, t := range targets {
		add(t)
	}
	var rest []string
	for k := range groups {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		add(k)
	}
	return order
}

func asJSON(v any) string {
	bs, _ := json.MarshalIndent(v, "", "  ")
	return string(bs)
}
