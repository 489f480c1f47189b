package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/statlab/statlab-cli/api/http"
	"github.com/statlab/statlab-cli/cache"
	"github.com/statlab/statlab-cli/client"
	"github.com/statlab/statlab-cli/cmd/statlab/utils"
	"github.com/statlab/statlab-cli/config"
	"github.com/statlab/statlab-cli/internal"
)

var (
	interactiveMode bool
	verboseMode     bool
	noCache         bool
	clearCache      bool
	cacheInfo       bool
	showConfig      bool
	methodFlag      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "statlab [route] [json_payload]",
		Short:         "Client for the statlab computation API",
		Long:          "Submits signed computation requests (PCA, forecasting, ...) to a statlab service and caches responses locally.",
		Args:          cobra.MaximumNArgs(2),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&interactiveMode, "interactive", "i", false, "Read route and payload lines from stdin until quit/exit")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Disable the response cache for this invocation")
	rootCmd.PersistentFlags().BoolVar(&clearCache, "clear-cache", false, "Remove all cached responses and exit")
	rootCmd.PersistentFlags().BoolVar(&cacheInfo, "cache-info", false, "Print cache statistics and exit")
	rootCmd.PersistentFlags().BoolVar(&showConfig, "show-config", false, "Print the effective configuration and exit")
	rootCmd.PersistentFlags().StringVarP(&methodFlag, "method", "X", "", "HTTP method to request (payloads force POST)")

	viper.AutomaticEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	internal.InitLogger(verboseMode)

	cacheHome, err := internal.GetCacheHome()
	if err != nil {
		return err
	}
	store := cache.NewFileStore(cacheHome)

	// cache and config maintenance work without a token
	if clearCache {
		return cache.New(store).Clear()
	}
	if cacheInfo {
		stats := cache.New(store).Info()
		fmt.Printf("directory: %s\nrecords: %d\ntotal bytes: %d\n", stats.Directory, stats.Count, stats.TotalBytes)
		return nil
	}

	cs := config.New()
	cm := config.NewManager(cs).WithEnvironment()

	if showConfig {
		rendered, err := cm.ShowConfig()
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	}

	c, err := client.New(http.RealCallerFactory, cs, store, viper.GetString(cm.TokenEnvVarName()))
	if err != nil {
		return err
	}
	if noCache {
		c = c.WithCaching(false)
	}

	if interactiveMode {
		return runInteractive(c)
	}

	if len(args) == 0 {
		return errors.New("you must specify a route")
	}

	route := args[0]
	var payload any
	if len(args) == 2 {
		if payload, err = utils.ParsePayload(args[1]); err != nil {
			return err
		}
	}

	response, err := c.Request(route, payload, methodFlag)
	if err != nil {
		return err
	}

	output, err := utils.FormatResponse(response)
	if err != nil {
		return err
	}
	fmt.Println(output)

	return nil
}

func runInteractive(c *client.Client) error {
	rl, err := readline.New(c.Config.CommandPrompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		route, payload, err := utils.ParseLine(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			continue
		}

		response, err := c.Request(route, payload, methodFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			continue
		}

		output, err := utils.FormatResponse(response)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			continue
		}
		fmt.Println(output)
	}
}
