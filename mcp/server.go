package mcp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/newsdesk/newsdesk/client"
	"github.com/newsdesk/newsdesk/client/mcp/internal/handlers"
)

// EnvPrefix is the prefix of the MCP server's environment variables.
const EnvPrefix = "NEWSDESK_MCP"

// Config holds all settings for the MCP server. Backend settings (base URL,
// timeouts) are read separately by client.LoadConfig.
type Config struct {
	ServerName      string        `envconfig:"SERVER_NAME"       default:"newsdesk-mcp-server"`
	ServerVersion   string        `envconfig:"SERVER_VERSION"    default:"0.3.0"`
	Transport       string        `envconfig:"TRANSPORT"         default:"auto"` // auto|stdio|http
	HTTPAddr        string        `envconfig:"HTTP_ADDR"         default:":11546"`
	LogLevel        string        `envconfig:"LOG_LEVEL"         default:"info"`
	LogFile         string        `envconfig:"LOG_FILE"`
	LogMaxSizeMB    int           `envconfig:"LOG_MAX_SIZE_MB"   default:"50"`
	LogMaxBackups   int           `envconfig:"LOG_MAX_BACKUPS"   default:"3"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT"  default:"10s"`
	HTTPReadTimeout time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPIdleTimeout time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
}

// LoadConfig reads the NEWSDESK_MCP_* environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	switch cfg.Transport {
	case "auto", "stdio", "http":
	default:
		return Config{}, fmt.Errorf("invalid transport %q: want auto, stdio or http", cfg.Transport)
	}
	return cfg, nil
}

// initLogger routes logs to stderr or, when LogFile is set, to a rotating
// file. Stdout is reserved for the stdio transport.
func (c Config) initLogger() io.Closer {
	zerolog.SetGlobalLevel(parseLogLevel(c.LogLevel))
	if c.LogFile == "" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Caller().Logger()
		return io.NopCloser(nil)
	}
	lj := &lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		Compress:   true,
	}
	log.Logger = zerolog.New(lj).With().Timestamp().Caller().Logger()
	return lj
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server exposing the newsdesk operations as tools.
func NewServer(c *client.Client, name, version string) (*server.MCPServer, error) {
	s := server.NewMCPServer(name, version, server.WithToolCapabilities(true))

	registered := []struct {
		name    string
		handler toolRegisterer
	}{
		{"article", handlers.NewArticleHandler(c)},
		{"summary", handlers.NewSummaryHandler(c)},
	}
	for _, r := range registered {
		if err := r.handler.RegisterTools(s); err != nil {
			return nil, fmt.Errorf("register %s tools: %w", r.name, err)
		}
	}
	return s, nil
}

// RunMCPServer starts the MCP server and blocks until it exits.
func RunMCPServer() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	logCloser := cfg.initLogger()
	defer logCloser.Close()

	newsClient, err := client.NewFromEnv()
	if err != nil {
		log.Error().Err(err).Msg("Failed to create client")
		return err
	}
	log.Info().Str("base_url", newsClient.BaseURL()).Msg("Client created")

	s, err := NewServer(newsClient, cfg.ServerName, cfg.ServerVersion)
	if err != nil {
		return err
	}

	if shouldUseStdio(cfg.Transport) {
		log.Info().Msg("Starting newsdesk MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(s, cfg)
}

func serveHTTP(s *server.MCPServer, cfg Config) error {
	log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting newsdesk MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      streamSrv,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: 0, // streaming responses may outlive any fixed deadline
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	shutdownComplete := make(chan struct{})
	go func() {
		defer close(shutdownComplete)

		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio resolves the transport. In auto mode stdio is used when
// stdin is not a terminal, i.e. the process was launched by an MCP host.
func shouldUseStdio(transport string) bool {
	switch transport {
	case "stdio":
		return true
	case "http":
		return false
	}
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
