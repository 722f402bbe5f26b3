// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gorse-io/evalviz/base/log"
	"github.com/gorse-io/evalviz/base/progress"
	"github.com/gorse-io/evalviz/cmd/version"
	"github.com/gorse-io/evalviz/config"
	"github.com/gorse-io/evalviz/report"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCommand() *cobra.Command {
	var conf *config.Config
	tracer := progress.NewTracer("evalviz")
	rootCommand := &cobra.Command{
		Use:           "evalviz",
		Short:         "Evaluation reports of machine learning models.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// setup logger
			debug, _ := cmd.Flags().GetBool("debug")
			log.SetLogger(cmd.Flags(), debug)
			// load config
			configPath, _ := cmd.Flags().GetString("config")
			var err error
			if conf, err = config.LoadConfig(configPath); err != nil {
				return errors.Annotate(err, "failed to load config")
			}
			log.Logger().Debug("load config", zap.String("config", configPath), zap.Any("figure", conf.Figure))
			cmd.SetContext(progress.NewContext(cmd.Context(), tracer))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			for _, p := range tracer.List() {
				log.Logger().Info(p.Name,
					zap.String("status", string(p.Status)),
					zap.Int("steps", p.Count),
					zap.Duration("elapsed", p.FinishTime.Sub(p.StartTime)))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				_, err := fmt.Fprint(cmd.OutOrStdout(), version.BuildInfo())
				return err
			}
			return cmd.Help()
		},
	}
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCommand.Flags().BoolP("version", "v", false, "evalviz version")

	getConfig := func() *config.Config { return conf }
	rootCommand.AddCommand(
		newROCCommand(getConfig),
		newMetricsCommand(getConfig),
		newScatterCommand(getConfig),
		newHeatmapCommand(getConfig),
		newImportanceCommand(getConfig),
		newLearningCurveCommand(getConfig),
	)
	return rootCommand
}

// saveFigure writes a figure to the output directory. The file name is
// taken from the --output flag.
func saveFigure(cmd *cobra.Command, conf *config.Config, fig *report.Figure) (string, error) {
	name, _ := cmd.Flags().GetString("output")
	fig.SetSize(conf.Figure.Width, conf.Figure.Height)
	if err := os.MkdirAll(conf.Figure.OutputDir, os.ModePerm); err != nil {
		return "", errors.Trace(err)
	}
	path := filepath.Join(conf.Figure.OutputDir, name+"."+conf.Figure.Format)
	if err := fig.Save(path); err != nil {
		return "", errors.Trace(err)
	}
	log.Logger().Info("save figure", zap.String("path", path))
	return path, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		log.Logger().Fatal("evalviz failed", zap.Error(err))
	}
	stop()
}
