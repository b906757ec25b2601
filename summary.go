package main

import (
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print launch counts and payload ranges per site",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		ds, err := LoadDataset(cfg.Data.Path)
		if err != nil {
			return err
		}
		markdown, _ := cmd.Flags().GetBool("markdown")
		writeSummary(cmd.OutOrStdout(), SummarizeSites(ds), markdown)
		return nil
	},
}

func init() {
	summaryCmd.Flags().Bool("markdown", false, "Render the table as Markdown")
}

// SiteSummary aggregates the launches of one site.
type SiteSummary struct {
	Site       string
	Launches   int
	Successes  int
	MinPayload float64
	MaxPayload float64
}

func (s SiteSummary) Failures() int { return s.Launches - s.Successes }

func (s SiteSummary) SuccessRate() float64 {
	if s.Launches == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Launches)
}

// SummarizeSites returns one entry per site in first-appearance order.
func SummarizeSites(ds *Dataset) []SiteSummary {
	sites := ds.Sites()
	pos := make(map[string]int, len(sites))
	out := make([]SiteSummary, len(sites))
	for i, site := range sites {
		pos[site] = i
		out[i] = SiteSummary{Site: site, MinPayload: math.Inf(1), MaxPayload: math.Inf(-1)}
	}
	for _, r := range ds.Records() {
		s := &out[pos[r.LaunchSite]]
		s.Launches++
		if r.Succeeded() {
			s.Successes++
		}
		s.MinPayload = math.Min(s.MinPayload, r.PayloadMassKg)
		s.MaxPayload = math.Max(s.MaxPayload, r.PayloadMassKg)
	}
	return out
}

func writeSummary(w io.Writer, sites []SiteSummary, markdown bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Launch Site", "Launches", "Successes", "Failures", "Success Rate", "Min Payload", "Max Payload"})

	var total SiteSummary
	total.MinPayload, total.MaxPayload = math.Inf(1), math.Inf(-1)
	for _, s := range sites {
		t.AppendRow(table.Row{s.Site, s.Launches, s.Successes, s.Failures(), percent(s.SuccessRate()), kg(s.MinPayload), kg(s.MaxPayload)})
		total.Launches += s.Launches
		total.Successes += s.Successes
		total.MinPayload = math.Min(total.MinPayload, s.MinPayload)
		total.MaxPayload = math.Max(total.MaxPayload, s.MaxPayload)
	}
	t.AppendFooter(table.Row{"Total", total.Launches, total.Successes, total.Failures(), percent(total.SuccessRate()), kg(total.MinPayload), kg(total.MaxPayload)})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	if markdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func percent(f float64) string { return fmt.Sprintf("%.1f%%", f*100) }

func kg(f float64) string {
	if math.IsInf(f, 0) {
		return "-"
	}
	return humanize.Commaf(f) + " kg"
}
