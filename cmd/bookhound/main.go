package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"bookhound"
	"bookhound/aggregate"
	bookhttp "bookhound/http"
	"bookhound/jnet"
	"bookhound/kakao"
	"bookhound/memcache"
	"bookhound/redis"
	bookslog "bookhound/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Logger shared by all services.
	Logger *slog.Logger

	// Registry of catalog services, assembled in Run.
	Registry *aggregate.Registry
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// A local .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: m.Logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bookhound"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bookhound --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.Registry = aggregate.NewRegistry()
	if err := m.wireServices(); err != nil {
		return err
	}
	deps.Registry = m.Registry
	deps.Aggregator = aggregate.New(m.Registry, aggregate.WithLogger(m.Logger))

	return kongCtx.Run(deps)
}

// wireServices builds the shared collaborators from the environment and
// registers every catalog site.
func (m *Main) wireServices() error {
	fetcher := m.fetcher()
	cache := m.cache()
	geocoder := m.geocoder()

	for _, cfg := range jnet.Sites() {
		searcher := jnet.New(cfg,
			jnet.WithFetcher(fetcher),
			jnet.WithCache(cache),
			jnet.WithGeocoder(geocoder),
			jnet.WithLogger(m.Logger),
		)
		svc := bookslog.NewLoggingService(searcher, cfg.Name, m.Logger)
		if err := m.Registry.Register(cfg.Name, svc); err != nil {
			return err
		}
	}
	return nil
}

func (m *Main) fetcher() bookhound.Fetcher {
	rps := 2.0
	if v := os.Getenv("BOOKHOUND_RPS"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			rps = parsed
		} else {
			m.Logger.Warn("ignoring invalid BOOKHOUND_RPS", "value", v)
		}
	}
	return bookhttp.NewFetcher(bookhttp.WithHostLimiter(bookhttp.NewHostLimiter(rps)))
}

// cache picks Redis when configured, otherwise the in-process cache.
// Either way directory scrapes are memoized.
func (m *Main) cache() bookhound.Cache {
	var cache bookhound.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = redis.New(addr)
	} else {
		cache = memcache.New()
	}
	return bookslog.NewLoggingCache(cache, m.Logger)
}

// geocoder returns the Kakao geocoder when a key is configured, nil
// otherwise. Without one, libraries simply carry no coordinates.
func (m *Main) geocoder() bookhound.Geocoder {
	key := os.Getenv("KAKAO_API_KEY")
	if key == "" {
		m.Logger.Info("KAKAO_API_KEY not set, library coordinates disabled")
		return nil
	}
	return bookslog.NewLoggingGeocoder(kakao.New(key, kakao.WithLogger(m.Logger)), m.Logger)
}
