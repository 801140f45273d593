package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"container-tracker/internal/app"
	"container-tracker/internal/core/config"
	"container-tracker/internal/core/logger"
	"container-tracker/internal/features/lookup/domain"
	"container-tracker/internal/features/lookup/ports"
	lookupservice "container-tracker/internal/features/lookup/service"

	"github.com/spf13/cobra"
)

var (
	configDir  string
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:          "tracker",
	Short:        "Look up shipping containers and assess their delivery risk",
	SilenceUsage: true,
}

// trackCmd looks up one or more containers in order
var trackCmd = &cobra.Command{
	Use:   "track <container-id>...",
	Short: "Track containers and print their status and insight",
	Long: `Track one or more containers. Each ID is looked up in order; when the carrier
API is unreachable the record is simulated and marked as such.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTrack,
}

// watchCmd reads container IDs from stdin; each new ID supersedes the lookup in flight
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Read container IDs from stdin and print the latest result",
	Long: `Read container IDs from stdin, one per line. Every new line starts a lookup and
supersedes the previous one; results of superseded lookups are discarded.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing the .env file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(watchCmd)
}

func buildServices(ctx context.Context) (*app.Services, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return app.Build(ctx, cfg)
}

func runTrack(cmd *cobra.Command, args []string) error {
	services, err := buildServices(cmd.Context())
	if err != nil {
		return err
	}
	defer services.Close()
	defer logger.Sync()

	return track(cmd.Context(), services.Lookup, cmd.OutOrStdout(), args, jsonOutput)
}

func runWatch(cmd *cobra.Command, args []string) error {
	services, err := buildServices(cmd.Context())
	if err != nil {
		return err
	}
	defer services.Close()
	defer logger.Sync()

	session := lookupservice.NewSession(services.Lookup)
	return watch(cmd.Context(), session, cmd.InOrStdin(), cmd.OutOrStdout(), jsonOutput)
}

// track runs a lookup per ID, one after the other.
func track(ctx context.Context, lookups ports.LookupService, out io.Writer, ids []string, asJSON bool) error {
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := render(out, lookups.Run(ctx, id), asJSON); err != nil {
			return err
		}
	}
	return nil
}

// watch starts a lookup for every non-blank input line and prints only results that are
// still current when they complete.
func watch(ctx context.Context, session *lookupservice.Session, in io.Reader, out io.Writer, asJSON bool) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		printErr error
	)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}

		lookup := session.Begin()
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, current := lookup(ctx, id)
			if !current {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if err := render(out, result, asJSON); err != nil && printErr == nil {
				printErr = err
			}
		}()
	}
	wg.Wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read container IDs: %w", err)
	}
	return printErr
}

func render(out io.Writer, result domain.LookupResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	d, in := result.Details, result.Insight
	source := "live"
	if !d.IsRealTime {
		source = "simulated"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s  %d%%  (%s, %s)\n", d.ContainerID, d.Carrier, d.Status, d.Percentage, source, d.LastSync)
	fmt.Fprintf(&b, "  Vessel: %s  Voyage: %s\n", d.Vessel, d.Voyage)
	fmt.Fprintf(&b, "  Route:  %s -> %s  ETA: %s\n", d.Origin, d.Destination, d.ETA)
	for _, ev := range d.Events {
		fmt.Fprintf(&b, "  [%s] %s  %s  %s\n", ev.Type, ev.Timestamp, ev.Location, ev.Description)
	}
	fmt.Fprintf(&b, "  Risk: %s  %s\n", in.RiskLevel, in.Summary)
	fmt.Fprintf(&b, "  Prediction: %s\n", in.Prediction)
	for _, rec := range in.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", rec)
	}

	_, err := io.WriteString(out, b.String())
	return err
}
