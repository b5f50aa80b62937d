package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	supportagent "github.com/tanpawarit/Chative-Support-Agent/agent/agents/support"
	catalogx "github.com/tanpawarit/Chative-Support-Agent/agent/catalog"
	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
	intentx "github.com/tanpawarit/Chative-Support-Agent/agent/intent"
	llmx "github.com/tanpawarit/Chative-Support-Agent/agent/llm"
	promptx "github.com/tanpawarit/Chative-Support-Agent/agent/prompt"
	configx "github.com/tanpawarit/Chative-Support-Agent/pkg/config"
	logx "github.com/tanpawarit/Chative-Support-Agent/pkg/logger"
	_ "github.com/tanpawarit/Chative-Support-Agent/pkg/logger/autoload"
	postgresx "github.com/tanpawarit/Chative-Support-Agent/pkg/postgres"
)

type AppConfig struct {
	CatalogBackend string `envconfig:"CATALOG_BACKEND" default:"file" validate:"oneof=file postgres"`
	ProductsPath   string `envconfig:"PRODUCTS_PATH"`
	OrdersPath     string `envconfig:"ORDERS_PATH"`
	EvaluationTime string `envconfig:"EVALUATION_TIME"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCfg := configx.MustNew[AppConfig]("")
	// autoload ran before the env file was exported.
	logx.Init(*configx.MustNew[logx.Config]("LOG"))

	catalog, closeCatalog := mustCatalog(ctx, *appCfg)
	defer closeCatalog()

	classifier, closeClassifier := mustClassifier(ctx)
	defer closeClassifier()

	agent, err := supportagent.New(catalog, classifier, supportagent.Config{
		EvaluationTime: appCfg.EvaluationTime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize support agent")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if args := flag.Args(); len(args) > 0 {
		emit(enc, agent.Process(ctx, strings.Join(args, " ")))
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		emit(enc, agent.Process(ctx, line))
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("failed to read stdin")
	}
}

func mustCatalog(ctx context.Context, cfg AppConfig) (contractx.CatalogSource, func()) {
	if cfg.CatalogBackend != "postgres" {
		return catalogx.NewFileSource(catalogx.FileConfig{
			ProductsPath: cfg.ProductsPath,
			OrdersPath:   cfg.OrdersPath,
		}), func() {}
	}

	pgCfg := configx.MustNew[postgresx.Config]("POSTGRES")
	db, err := postgresx.Open(ctx, *pgCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect catalog database")
	}
	return catalogx.NewPostgresSource(db), func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close catalog database")
		}
	}
}

// mustClassifier returns a nil classifier when no provider is configured; the
// agent then classifies by keywords only.
func mustClassifier(ctx context.Context) (contractx.Classifier, func()) {
	llmCfg := configx.MustNew[llmx.Config]("LLM")
	gen, err := llmx.NewGenerator(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize llm generator")
	}
	if gen == nil {
		log.Info().Msg("llm provider disabled, using keyword classification")
		return nil, func() {}
	}

	closeGen := closerFor(gen)

	classifier, err := intentx.NewModelClassifier(gen, promptx.LoadPromptSet().Router)
	if err != nil {
		closeGen()
		log.Fatal().Err(err).Msg("failed to initialize classifier")
	}
	return classifier, closeGen
}

// closerFor releases clients that hold connections, such as the Gemini client.
func closerFor(v any) func() {
	closer, ok := v.(io.Closer)
	if !ok {
		return func() {}
	}
	return func() {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close llm client")
		}
	}
}

func emit(enc *json.Encoder, result contractx.Result) {
	if err := enc.Encode(result); err != nil {
		log.Error().Err(err).Msg("failed to encode result")
	}
}
