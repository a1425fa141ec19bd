package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/christofides/history"
	"github.com/katalvlaran/christofides/planner"
	"github.com/katalvlaran/christofides/roads"
)

// placesFile is the YAML document read by the plan command.
type placesFile struct {
	Fuel   *planner.Fuel   `yaml:"fuel"`
	Places []planner.Place `yaml:"places"`
	Roads  *roads.Layout   `yaml:"roads"`
}

func readPlaces(path string) (*placesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read places")
	}
	var pf placesFile
	if err = yaml.Unmarshal(data, &pf); err != nil {
		return nil, errors.Wrapf(planner.ErrInvalidPlace, "%s: %v", path, err)
	}

	return &pf, nil
}

func newPlanCommand(o *rootOptions) *cobra.Command {
	var (
		sf          solverFlags
		consumption float64
		price       float64
	)
	cmd := &cobra.Command{
		Use:   "plan <places.yaml>",
		Short: "Plan a fuel-priced round trip through named places",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pf, err := readPlaces(args[0])
			if err != nil {
				return err
			}

			fuel := o.cfg.Fuel
			if pf.Fuel != nil {
				fuel = *pf.Fuel
			}
			if cmd.Flags().Changed("fuel-consumption") {
				fuel.ConsumptionL100 = consumption
			}
			if cmd.Flags().Changed("fuel-price") {
				fuel.PricePerLitre = price
			}

			opts, err := sf.options(cmd.Flags(), o)
			if err != nil {
				return err
			}
			req := planner.Request{
				Places: pf.Places,
				Fuel:   fuel,
				Solve:  opts,
				Enrich: []planner.EnrichOption{planner.WithEnrichLogger(o.log)},
			}
			if pf.Roads != nil {
				net, err := o.network(*pf.Roads)
				if err != nil {
					return err
				}
				req.Source, req.Router = net, net
			}
			o.log.WithFields(logrus.Fields{"source": args[0], "places": len(pf.Places)}).Info("planning")

			ctx := cmd.Context()
			it, err := withTimeout(ctx, o.cfg.Timeout, func() (*planner.Itinerary, error) {
				return planner.Plan(ctx, req)
			})
			if err != nil {
				return err
			}

			if err = o.record(&history.Run{
				Kind:      history.KindPlan,
				Source:    args[0],
				Matching:  matchingName(opts),
				Vertices:  planner.Vertices(pf.Places),
				Result:    it.Result,
				Itinerary: it,
			}); err != nil {
				return err
			}

			if o.output == formatText {
				writeItineraryText(cmd.OutOrStdout(), it)
				return nil
			}
			return encode(cmd.OutOrStdout(), o.output, it)
		},
	}
	sf.bind(cmd.Flags())
	cmd.Flags().Float64Var(&consumption, "fuel-consumption", 0, "litres per 100 km")
	cmd.Flags().Float64Var(&price, "fuel-price", 0, "price per litre")

	return cmd
}

// network builds the road graph and warns when it falls apart into pieces.
func (o *rootOptions) network(layout roads.Layout) (*roads.Network, error) {
	net, err := layout.Build()
	if err != nil {
		return nil, err
	}
	reach, err := net.Reachable(layout.Junctions[0].ID)
	if err != nil {
		return nil, err
	}
	if len(reach) < net.Len() {
		o.log.WithFields(logrus.Fields{
			"junctions": net.Len(),
			"reachable": len(reach),
		}).Warn("road network is not connected")
	}

	return net, nil
}
