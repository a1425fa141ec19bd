package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/christofides/graph"
	"github.com/katalvlaran/christofides/history"
	"github.com/katalvlaran/christofides/planner"
	"github.com/katalvlaran/christofides/tsp"
)

const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

// encode writes v as YAML or JSON. Text output is command specific.
func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

// vertexName prefers the label and falls back to the index.
func vertexName(vs []graph.Vertex, v int) string {
	if v >= 0 && v < len(vs) && vs[v].Label != "" {
		return vs[v].Label
	}

	return fmt.Sprint(v)
}

func joinPath(vs []graph.Vertex, cycle []int) string {
	parts := make([]string, len(cycle))
	for i, v := range cycle {
		parts[i] = vertexName(vs, v)
	}

	return strings.Join(parts, " -> ")
}

func writeResultText(w io.Writer, vs []graph.Vertex, res *tsp.Result) {
	fmt.Fprintf(w, "tour:   %s\n", joinPath(vs, res.Cycle))
	fmt.Fprintf(w, "cost:   %g\n", res.Cost)
	if res.Cost != res.ShortcutCost {
		fmt.Fprintf(w, "before 2-opt: %g\n", res.ShortcutCost)
	}
	fmt.Fprintf(w, "mst:    %g (%d edges)\n", res.TreeWeight, len(res.Tree))
	fmt.Fprintf(w, "odd:    %d vertices, %d matched pairs\n", len(res.Odd), len(res.Matching))
}

func writeItineraryText(w io.Writer, it *planner.Itinerary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSTOP\tLAT\tLON")
	for i, p := range it.Stops {
		fmt.Fprintf(tw, "%d\t%s\t%.5f\t%.5f\n", i, p.Name, p.Coordinates.Lat, p.Coordinates.Lon)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "distance: %.2f km\n", it.DistanceKm)
	fmt.Fprintf(w, "fuel:     %.2f\n", it.Cost)
}

func writeRunsText(w io.Writer, runs []history.Run) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tCREATED\tVERTICES\tCOST\tSOURCE")
	for i := range runs {
		r := &runs[i]
		var cost float64
		if r.Result != nil {
			cost = r.Result.Cost
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%g\t%s\n",
			r.ID, r.Kind, r.Created().UTC().Format(time.RFC3339), len(r.Vertices), cost, r.Source)
	}
	_ = tw.Flush()
}
