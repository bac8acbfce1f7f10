// Command lesgo-demo walks the manufacturing operations API the way a new
// integration would: discover sites and lines, find the newest line via the
// paginated walk, open a dispatch against its last machine, clock an operator
// in, record production, and clock back out.
//
// Configuration comes from LESGO_* environment variables (see internal/config).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/leading2lean/lesgo/internal/config"
	"github.com/leading2lean/lesgo/pkg/api"
	"github.com/leading2lean/lesgo/pkg/client"
	"github.com/leading2lean/lesgo/pkg/logging"
)

var (
	flagLimit    int
	flagOffset   int
	flagLineCode string
	flagBadge    string
	flagMachine  string
	flagDispatch string
	flagProduct  string
	flagActual   int
	flagScrap    int
)

var rootCmd = &cobra.Command{
	Use:           "lesgo-demo",
	Short:         "Demo client for the manufacturing operations API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 25, "page size for list commands")
	rootCmd.PersistentFlags().IntVar(&flagOffset, "offset", 0, "page offset for list commands")

	machinesCmd.Flags().StringVar(&flagLineCode, "line", "", "filter machines by line code")

	dispatchCmd.Flags().StringVar(&flagMachine, "machine", "", "machine code to dispatch against (required)")
	dispatchCmd.Flags().StringVar(&flagDispatch, "type", "MAINT", "dispatch type code")
	dispatchCmd.MarkFlagRequired("machine")

	clockCmd.Flags().StringVar(&flagBadge, "badge", "", "operator badge (required)")
	clockCmd.Flags().StringVar(&flagLineCode, "line", "", "line code for clock-in")
	clockCmd.MarkFlagRequired("badge")

	productionCmd.Flags().StringVar(&flagLineCode, "line", "", "line code (required)")
	productionCmd.Flags().StringVar(&flagProduct, "product", "", "product code")
	productionCmd.Flags().IntVar(&flagActual, "actual", 0, "actual count")
	productionCmd.Flags().IntVar(&flagScrap, "scrap", 0, "scrap count")
	productionCmd.MarkFlagRequired("line")

	walkthroughCmd.Flags().StringVar(&flagBadge, "badge", "", "operator badge (required)")
	walkthroughCmd.MarkFlagRequired("badge")

	rootCmd.AddCommand(sitesCmd, linesCmd, machinesCmd, dispatchCmd, clockCmd, productionCmd, walkthroughCmd)
}

// setup builds the API surface from the environment configuration.
// The returned close function releases the client's credentials.
func setup() (*api.API, *config.Config, func(), error) {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.Pretty,
		Output: os.Stderr,
	})

	creds, err := client.NewCredentials(cfg.APIKey)
	if err != nil {
		return nil, nil, nil, err
	}

	clientCfg := client.DefaultConfig(cfg.BaseURL, creds)
	clientCfg.Timeout = cfg.Timeout
	if cfg.RedisAddr != "" && cfg.CacheTTL > 0 {
		clientCfg.Redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		clientCfg.CacheTTL = cfg.CacheTTL
	}

	c, err := client.New(clientCfg)
	if err != nil {
		return nil, nil, nil, err
	}

	closeFn := func() { c.Close() }
	return api.New(c).WithPageSize(cfg.PageSize), cfg, closeFn, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List sites",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, closeFn, err := setup()
		if err != nil {
			return err
		}
		defer closeFn()

		sites, err := a.ListSites(cmd.Context(), flagLimit, flagOffset)
		if err != nil {
			return err
		}
		return printJSON(sites)
	},
}

var linesCmd = &cobra.Command{
	Use:   "lines",
	Short: "List the configured site's production lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, closeFn, err := setup()
		if err != nil {
			return err
		}
		defer closeFn()

		lines, err := a.ListLines(cmd.Context(), cfg.Site, flagLimit, flagOffset)
		if err != nil {
			return err
		}
		return printJSON(lines)
	},
}

var machinesCmd = &cobra.Command{
	Use:   "machines",
	Short: "List the configured site's machines",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, closeFn, err := setup()
		if err != nil {
			return err
		}
		defer closeFn()

		machines, err := a.ListMachines(cmd.Context(), cfg.Site, flagLineCode, flagLimit, flagOffset)
		if err != nil {
			return err
		}
		return printJSON(machines)
	},
}

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Open a dispatch against a machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, closeFn, err := setup()
		if err != nil {
			return err
		}
		defer closeFn()

		dispatch, err := a.CreateDispatch(cmd.Context(), api.CreateDispatchRequest{
			SiteID:           cfg.Site,
			DispatchTypeCode: flagDispatch,
			Description:      "opened by lesgo-demo",
			MachineCode:      flagMachine,
		})
		if err != nil {
			return err
		}
		return printJSON(dispatch)
	},
}

var clockCmd = &cobra.Command{
	Use:   "clock [in|out]",
	Short: "Clock an operator badge in or out",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, closeFn, err := setup()
		if err != nil {
			return err
		}
		defer closeFn()

		var event *api.ClockEvent
		switch args[0] {
		case "in":
			event, err = a.ClockIn(cmd.Context(), cfg.Site, flagBadge, flagLineCode)
		case "out":
			event, err = a.ClockOut(cmd.Context(), cfg.Site, flagBadge)
		default:
			return fmt.Errorf("unknown direction %q (want in or out)", args[0])
		}
		if err != nil {
			return err
		}
		return printJSON(event)
	},
}

var productionCmd = &cobra.Command{
	Use:   "production",
	Short: "Record a pitch of production counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, closeFn, err := setup()
		if err != nil {
			return err
		}
		defer closeFn()

		now := time.Now()
		record, err := a.RecordProduction(cmd.Context(), api.RecordProductionRequest{
			SiteID:      cfg.Site,
			LineCode:    flagLineCode,
			ProductCode: flagProduct,
			Actual:      flagActual,
			Scrap:       flagScrap,
			Start:       now.Add(-time.Hour),
			End:         now,
		})
		if err != nil {
			return err
		}
		return printJSON(record)
	},
}

var walkthroughCmd = &cobra.Command{
	Use:   "walkthrough",
	Short: "Run the full demo sequence against the configured site",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, closeFn, err := setup()
		if err != nil {
			return err
		}
		defer closeFn()

		return runWalkthrough(cmd.Context(), a, cfg.Site, flagBadge)
	},
}

// runWalkthrough chains the calls the way the tutorial does: each step feeds
// the next one.
func runWalkthrough(ctx context.Context, a *api.API, siteID int, badge string) error {
	line, err := a.LastLine(ctx, siteID)
	if err != nil {
		return fmt.Errorf("find last line: %w", err)
	}
	fmt.Printf("last line: %s (%s)\n", line.Code, line.Name)

	machine, err := a.LastMachine(ctx, siteID, line.Code)
	if err != nil {
		return fmt.Errorf("find last machine on %s: %w", line.Code, err)
	}
	fmt.Printf("last machine: %s\n", machine.Code)

	dispatch, err := a.CreateDispatch(ctx, api.CreateDispatchRequest{
		SiteID:           siteID,
		DispatchTypeCode: "MAINT",
		Description:      "walkthrough dispatch",
		MachineCode:      machine.Code,
	})
	if err != nil {
		return fmt.Errorf("open dispatch: %w", err)
	}
	fmt.Printf("opened dispatch %d\n", dispatch.DispatchNumber.Int())

	if _, err := a.ClockIn(ctx, siteID, badge, line.Code); err != nil {
		return fmt.Errorf("clock in: %w", err)
	}
	fmt.Printf("clocked %s in on %s\n", badge, line.Code)

	now := time.Now()
	record, err := a.RecordProduction(ctx, api.RecordProductionRequest{
		SiteID:   siteID,
		LineCode: line.Code,
		Actual:   1,
		Start:    now.Add(-time.Minute),
		End:      now,
	})
	if err != nil {
		return fmt.Errorf("record production: %w", err)
	}
	fmt.Printf("recorded production entry %d\n", record.ID.Int())

	if _, err := a.ClockOut(ctx, siteID, badge); err != nil {
		return fmt.Errorf("clock out: %w", err)
	}
	fmt.Printf("clocked %s out\n", badge)

	if _, err := a.CloseDispatch(ctx, siteID, dispatch.ID.Int()); err != nil {
		return fmt.Errorf("close dispatch: %w", err)
	}
	fmt.Printf("closed dispatch %d\n", dispatch.DispatchNumber.Int())

	return nil
}
