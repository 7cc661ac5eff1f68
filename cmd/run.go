package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/spigell/kw-ranker/internal/analysis"
	"github.com/spigell/kw-ranker/internal/embedding"
	"github.com/spigell/kw-ranker/internal/export"
	"github.com/spigell/kw-ranker/internal/keywords"
	"github.com/spigell/kw-ranker/internal/logger"
	"github.com/spigell/kw-ranker/internal/posting"
	"github.com/spigell/kw-ranker/internal/resume"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptExport   = "Export results"
	PromptSummary  = "Show summary"
	PromptSections = "Report coverage by section"
	PromptDump     = "Dump scored keywords to file"
	PromptExit     = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Next action?",
	Items: []string{PromptExport, PromptSummary, PromptSections, PromptDump, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the kw-ranker analysis pipeline",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("summary", "s", false, "print the run summary after the analysis")
	runCmd.Flags().BoolP("yes", "y", false, "export results and exit without prompting")
	runCmd.Flags().Bool("drop-buzzwords", false, "drop buzzword keywords instead of penalizing them")
	runCmd.Flags().StringP("output-dir", "o", "", "directory for exported files. Default is ./working.")

	viper.BindPFlag("analysis.drop-buzzwords", runCmd.Flags().Lookup("drop-buzzwords"))
	viper.BindPFlag("output-dir", runCmd.Flags().Lookup("output-dir"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the kw-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if err := config.Analysis.Validate(); err != nil {
		logger.Fatal("validating the analysis config", zap.Error(err))
	}

	if config.Keywords == "" {
		logger.Fatal("keywords file is required under the 'keywords' key")
	}

	if config.Posting == "" {
		logger.Fatal("job posting file is required under the 'posting' key")
	}

	list, err := keywords.Load(config.Keywords)
	if err != nil {
		logger.Fatal("loading keywords", zap.Error(err))
	}

	logger.Info("loading keywords", zap.Int("count", list.Len()))

	if list.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no keywords found"))
		return
	}

	doc, err := posting.Load(config.Posting)
	if err != nil {
		logger.Fatal("loading the job posting", zap.Error(err))
	}

	if doc.Empty() {
		logger.Warn("the job posting has no content", zap.String("file", config.Posting))
	}

	corpus, err := loadCorpus(config, logger)
	if err != nil {
		logger.Fatal("loading the resume", zap.Error(err))
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		logger.Fatal("loading the embedding model", zap.Error(err))
	}
	defer embedder.Close()

	stages := []analysis.Stage{
		analysis.NewNormalize(),
		analysis.NewCategorize(),
		analysis.NewScore(),
		analysis.NewGuardrails(),
		analysis.NewCluster(),
		analysis.NewTrim(),
		analysis.NewInject(),
	}

	if corpus == nil {
		analysis.DisableByName(stages, "inject", "no resume configured")
	}

	deps := &analysis.Deps{
		Logger:   logger,
		Config:   config.Analysis,
		Embedder: embedder,
		Posting:  doc,
		Corpus:   corpus,
		CacheDir: config.Embedding.CacheDir,
	}

	state := analysis.NewState(list)
	if err := analysis.Run(ctx, deps, stages, state); err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}

	if state.Keywords.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no keywords left after analysis"))
		return
	}

	if cmd.Flag("summary").Value.String() == "true" {
		printSummary(logger, config, state)
	}

	if cmd.Flag("yes").Value.String() == "true" {
		if err := exportResults(logger, config, state); err != nil {
			logger.Fatal("exporting results", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, config, state); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, state *analysis.State) error {
	switch action {
	case PromptExport:
		return exportResults(logger, config, state)
	case PromptSummary:
		printSummary(logger, config, state)
		return nil
	case PromptSections:
		pretty, _ := json.MarshalIndent(export.CoverageBySection(state.Reports), "", "  ")
		logger.Info(string(pretty), zap.Int("reports count", len(state.Reports)))
		return nil
	case PromptDump:
		filename, err := state.Keywords.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// loadCorpus reads the optional resume. A missing 'resume' key skips the
// injection analysis instead of failing the run.
func loadCorpus(config *Config, logger *zap.Logger) (*resume.Corpus, error) {
	if config.Resume == "" {
		logger.Info("no resume configured", zap.String("hint", "set the 'resume' key to enable injection analysis"))
		return nil, nil
	}

	res, err := resume.Load(config.Resume)
	if err != nil {
		return nil, err
	}

	corpus := res.Corpus()
	logger.Info("loading the resume", zap.Int("sentences", corpus.Len()))

	return corpus, nil
}

// newEmbedder builds the shared encoder wrapped in the vector cache.
func newEmbedder(config *Config) (embedding.Embedder, error) {
	if err := config.Embedding.Validate(); err != nil {
		return nil, err
	}

	encoder, err := embedding.Shared(*config.Embedding)
	if err != nil {
		return nil, err
	}

	return embedding.NewCache(encoder, config.Embedding.CacheDir)
}

func exportResults(logger *zap.Logger, config *Config, state *analysis.State) error {
	result := export.BuildResult(state.Keywords)

	exporter := export.NewExporter(config.OutputDir, config.Analysis.TopSkills)
	paths, err := exporter.Export(result, state.Reports)
	if err != nil {
		return fmt.Errorf("exporting results: %w", err)
	}

	logger.Info("exported analysis results", zap.Strings("files", paths))
	return nil
}

func printSummary(logger *zap.Logger, config *Config, state *analysis.State) {
	summary := export.BuildSummary(state.Keywords, config.Analysis.TopSkills)

	pretty, _ := json.MarshalIndent(summary, "", "  ")
	logger.Info(string(pretty),
		zap.Int("knockouts count", len(summary.Knockouts)),
		zap.Int("skills shown", len(summary.TopSkills)),
	)
}
