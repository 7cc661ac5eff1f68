package cmd

import (
	"log"

	"github.com/spigell/kw-ranker/internal/embedding"
	"github.com/spigell/kw-ranker/internal/ranking"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "kw-ranker"
)

type Config struct {
	// Keywords is the JSON file with the keywords to rank.
	Keywords string `mapstructure:"keywords"`
	// Posting is the job posting text file.
	Posting string `mapstructure:"posting"`
	// Resume is the optional resume JSON. Without it the injection analysis
	// is skipped.
	Resume string `mapstructure:"resume"`
	// OutputDir is where exported files land. Default is ./working.
	OutputDir string `mapstructure:"output-dir"`

	Analysis  *ranking.Config   `mapstructure:"analysis"`
	Embedding *embedding.Config `mapstructure:"embedding"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "kw-ranker ranks job posting keywords and checks how well a resume covers them",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is kw-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only the run command needs a config file.
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

// getConfig decodes the config file over the built-in defaults, so a file
// only has to name the knobs it changes.
func getConfig() (*Config, error) {
	config := &Config{
		Analysis:  ranking.DefaultConfig(),
		Embedding: embedding.DefaultConfig(),
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	return config, nil
}
