package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/newsdesk/newsdesk/client"
)

// cliState holds the persistent flags shared by every sub-command.
type cliState struct {
	baseURL         string
	debug           bool
	output          string
	articlesTimeout time.Duration
	summaryTimeout  time.Duration
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	st := &cliState{}

	rootCmd := &cobra.Command{
		Use:           "newsdeskctl",
		Short:         "newsdeskctl calls the newsdesk article and summary API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})

			// Set log level based on debug flag
			if st.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}

			switch st.output {
			case "json", "yaml":
				return nil
			default:
				return fmt.Errorf("unsupported output format %q (want json or yaml)", st.output)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&st.baseURL, "base-url", "", "Backend base URL (default $NEWSDESK_API_BASE_URL or "+client.DefaultBaseURL+")")
	rootCmd.PersistentFlags().BoolVarP(&st.debug, "debug", "d", false, "Enable verbose debug output, including HTTP dumps")
	rootCmd.PersistentFlags().StringVarP(&st.output, "output", "o", "json", "Output format: json|yaml")
	rootCmd.PersistentFlags().DurationVar(&st.articlesTimeout, "articles-timeout", 0, "Override the article call timeout")
	rootCmd.PersistentFlags().DurationVar(&st.summaryTimeout, "summary-timeout", 0, "Override the summary call timeout")

	// Sub-commands
	rootCmd.AddCommand(newQueryCmd(st))
	rootCmd.AddCommand(newUpdateCmd(st))
	rootCmd.AddCommand(newDeleteCmd(st))
	rootCmd.AddCommand(newCheckDataCmd(st))
	rootCmd.AddCommand(newSummaryCmd(st))

	return rootCmd
}

// newClient resolves configuration from the environment, then applies the
// command-line overrides.
func (st *cliState) newClient() (*client.Client, error) {
	cfg, err := client.LoadConfig()
	if err != nil {
		return nil, err
	}
	if st.baseURL != "" {
		cfg.BaseURL = st.baseURL
	}
	if st.articlesTimeout > 0 {
		cfg.ArticlesTimeout = st.articlesTimeout
	}
	if st.summaryTimeout > 0 {
		cfg.SummaryTimeout = st.summaryTimeout
	}
	cfg.Debug = cfg.Debug || st.debug
	return client.New(cfg, client.WithUserAgent("newsdeskctl/"+client.Version))
}

func newQueryCmd(st *cliState) *cobra.Command {
	var startTime, endTime string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query articles inside a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := st.newClient()
			if err != nil {
				return err
			}
			req := client.QueryArticlesRequest{StartTime: startTime, EndTime: endTime}
			return st.run(cmd, "query articles", func(ctx context.Context) (*client.Response, error) {
				return c.QueryArticles(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&startTime, "start-time", "", "Range start, as the backend expects it (required)")
	cmd.Flags().StringVar(&endTime, "end-time", "", "Range end (required)")
	_ = cmd.MarkFlagRequired("start-time")
	_ = cmd.MarkFlagRequired("end-time")

	return cmd
}

func newUpdateCmd(st *cliState) *cobra.Command {
	var id int64
	var fields []string
	var stringValues bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields of one article",
		Example: `  newsdeskctl update --id 42 --field title="New Title"
  newsdeskctl update --id 42 --field pinned=true --field score=4.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseKeyValues(fields, stringValues)
			if err != nil {
				return err
			}
			c, err := st.newClient()
			if err != nil {
				return err
			}
			req := client.UpdateArticleRequest{ID: id, Fields: parsed}
			return st.run(cmd, "update article", func(ctx context.Context) (*client.Response, error) {
				return c.UpdateArticle(ctx, req)
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Article ID (required)")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "Field to set as key=value; values are parsed as JSON when possible (repeatable, required)")
	cmd.Flags().BoolVar(&stringValues, "string-values", false, "Send every field value as a string")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func newDeleteCmd(st *cliState) *cobra.Command {
	var startTime, endTime string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete every article inside a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := st.newClient()
			if err != nil {
				return err
			}
			req := client.DeleteArticlesRequest{StartTime: startTime, EndTime: endTime}
			return st.run(cmd, "delete articles", func(ctx context.Context) (*client.Response, error) {
				return c.DeleteArticles(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&startTime, "start-time", "", "Range start (required)")
	cmd.Flags().StringVar(&endTime, "end-time", "", "Range end (required)")
	_ = cmd.MarkFlagRequired("start-time")
	_ = cmd.MarkFlagRequired("end-time")

	return cmd
}

func newCheckDataCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:     "check-data",
		Aliases: []string{"backfill"},
		Short:   "Trigger the backend data check and backfill job",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := st.newClient()
			if err != nil {
				return err
			}
			return st.run(cmd, "check data", c.CheckAndBackfill)
		},
	}
}

func newSummaryCmd(st *cliState) *cobra.Command {
	var params []string
	var paramsJSON string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Generate an AI summary",
		Example: `  newsdeskctl summary --param startTime=2024-01-01 --param endTime=2024-01-02
  newsdeskctl summary --params-json '{"topic":"markets","maxWords":150}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.SummaryRequest{}
			if paramsJSON != "" {
				if err := json.Unmarshal([]byte(paramsJSON), &req); err != nil {
					return fmt.Errorf("invalid --params-json: %w", err)
				}
			}
			kv, err := parseKeyValues(params, false)
			if err != nil {
				return err
			}
			for k, v := range kv {
				req[k] = v
			}

			c, err := st.newClient()
			if err != nil {
				return err
			}
			return st.run(cmd, "fetch summary", func(ctx context.Context) (*client.Response, error) {
				return c.FetchSummary(ctx, req)
			})
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "Parameter as key=value; values are parsed as JSON when possible (repeatable)")
	cmd.Flags().StringVar(&paramsJSON, "params-json", "", "Parameters as a JSON object; --param entries are merged on top")

	return cmd
}

// run executes one call, logs its timing and prints the response body.
// The body of a non-2xx response is still printed before the error returns.
func (st *cliState) run(cmd *cobra.Command, what string, call client.Call) error {
	log.Debug().Str("operation", what).Msg("sending request")

	start := time.Now()
	resp, err := call(cmd.Context())
	elapsed := time.Since(start)

	if resp != nil {
		log.Debug().
			Str("operation", what).
			Int("status", resp.StatusCode).
			Str("request_id", resp.RequestID).
			Dur("elapsed", elapsed).
			Msg("response received")
		if perr := printBody(cmd.OutOrStdout(), st.output, resp); perr != nil {
			return perr
		}
	}
	if err != nil {
		if client.IsTimeout(err) {
			return fmt.Errorf("%s: timed out after %s: %w", what, elapsed.Round(time.Millisecond), err)
		}
		var se *client.StatusError
		if errors.As(err, &se) {
			return fmt.Errorf("%s failed with HTTP %d", what, se.StatusCode)
		}
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

// printBody renders a JSON body in the requested format. Non-JSON bodies
// are printed verbatim.
func printBody(w io.Writer, format string, resp *client.Response) error {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		_, err := fmt.Fprintf(w, "HTTP %d (empty body)\n", resp.StatusCode)
		return err
	}

	var v any
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		_, err = fmt.Fprintln(w, string(resp.Body))
		return err
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// parseKeyValues turns key=value pairs into a map. Unless asStrings is set,
// values that parse as JSON keep their JSON type (numbers, booleans, null,
// objects, arrays); everything else is a string.
func parseKeyValues(pairs []string, asStrings bool) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid key=value pair %q", p)
		}
		if asStrings {
			out[k] = v
			continue
		}
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			out[k] = decoded
		} else {
			out[k] = v
		}
	}
	return out, nil
}
