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
	"fmt"
	"strconv"

	"github.com/gorse-io/evalviz/base/log"
	"github.com/gorse-io/evalviz/config"
	"github.com/gorse-io/evalviz/importance"
	"github.com/gorse-io/evalviz/model"
	"github.com/gorse-io/evalviz/model/linear"
	"github.com/gorse-io/evalviz/model/selection"
	"github.com/gorse-io/evalviz/report"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

func newROCCommand(getConfig func() *config.Config) *cobra.Command {
	command := &cobra.Command{
		Use:   "roc <csv>",
		Short: "Plot ROC curve of positive class scores.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTable(args[0])
			if err != nil {
				return errors.Trace(err)
			}
			labelColumn, _ := cmd.Flags().GetString("label")
			scoreColumn, _ := cmd.Flags().GetString("score")
			labels, err := t.ints(labelColumn)
			if err != nil {
				return errors.Trace(err)
			}
			scores, err := t.floats(scoreColumn)
			if err != nil {
				return errors.Trace(err)
			}
			auc, fig, err := report.ROCAUC(labels, scores)
			if err != nil {
				return errors.Trace(err)
			}
			log.Logger().Info("roc curve", zap.Float64("auc", auc))
			_, err = saveFigure(cmd, getConfig(), fig)
			return err
		},
	}
	command.Flags().String("label", "label", "column of actual labels")
	command.Flags().String("score", "score", "column of positive class scores")
	command.Flags().StringP("output", "o", "roc", "figure file name without extension")
	return command
}

func newMetricsCommand(getConfig func() *config.Config) *cobra.Command {
	command := &cobra.Command{
		Use:   "metrics <csv>",
		Short: "Evaluate a binary classifier.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTable(args[0])
			if err != nil {
				return errors.Trace(err)
			}
			labelColumn, _ := cmd.Flags().GetString("label")
			predictionColumn, _ := cmd.Flags().GetString("prediction")
			scoreColumn, _ := cmd.Flags().GetString("score")
			labels, err := t.ints(labelColumn)
			if err != nil {
				return errors.Trace(err)
			}
			predictions, err := t.ints(predictionColumn)
			if err != nil {
				return errors.Trace(err)
			}
			scores, err := t.floats(scoreColumn)
			if err != nil {
				return errors.Trace(err)
			}
			performance, fig, err := report.PerformanceMetrics(cmd.OutOrStdout(), labels, predictions, scores)
			if err != nil {
				return errors.Trace(err)
			}
			// Render table
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("TN", "FP", "FN", "TP", "AUC", "Precision", "Recall", "F-Score", "PPV", "NPV")
			if err = table.Append([]string{
				strconv.Itoa(performance.TN),
				strconv.Itoa(performance.FP),
				strconv.Itoa(performance.FN),
				strconv.Itoa(performance.TP),
				fmt.Sprintf("%0.2f", performance.AUC),
				fmt.Sprintf("%0.2f", performance.Precision),
				fmt.Sprintf("%0.2f", performance.Recall),
				fmt.Sprintf("%0.2f", performance.FScore),
				fmt.Sprintf("%0.4f", performance.PPV),
				fmt.Sprintf("%0.4f", performance.NPV),
			}); err != nil {
				return errors.Trace(err)
			}
			if err = table.Render(); err != nil {
				return errors.Trace(err)
			}
			_, err = saveFigure(cmd, getConfig(), fig)
			return err
		},
	}
	command.Flags().String("label", "label", "column of actual labels")
	command.Flags().String("prediction", "prediction", "column of predicted labels")
	command.Flags().String("score", "score", "column of positive class scores")
	command.Flags().StringP("output", "o", "roc", "figure file name without extension")
	return command
}

func newScatterCommand(getConfig func() *config.Config) *cobra.Command {
	command := &cobra.Command{
		Use:   "scatter <csv>",
		Short: "Plot predicted values against actual values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTable(args[0])
			if err != nil {
				return errors.Trace(err)
			}
			actualColumn, _ := cmd.Flags().GetString("actual")
			predictedColumn, _ := cmd.Flags().GetString("predicted")
			actual, err := t.floats(actualColumn)
			if err != nil {
				return errors.Trace(err)
			}
			predicted, err := t.floats(predictedColumn)
			if err != nil {
				return errors.Trace(err)
			}
			fig, err := report.PlotActualVsPredicted(actual, predicted)
			if err != nil {
				return errors.Trace(err)
			}
			_, err = saveFigure(cmd, getConfig(), fig)
			return err
		},
	}
	command.Flags().String("actual", "actual", "column of actual values")
	command.Flags().String("predicted", "predicted", "column of predicted values")
	command.Flags().StringP("output", "o", "scatter", "figure file name without extension")
	return command
}

func newHeatmapCommand(getConfig func() *config.Config) *cobra.Command {
	command := &cobra.Command{
		Use:   "heatmap <csv>",
		Short: "Plot mean scores of a two-parameter grid search.",
		Long:  "Plot mean scores of a two-parameter grid search. Every column except the score column is a hyper-parameter.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := getConfig()
			t, err := readTable(args[0])
			if err != nil {
				return errors.Trace(err)
			}
			scoreColumn, _ := cmd.Flags().GetString("score")
			grid := &report.GridTable{Columns: make(map[model.ParamName][]interface{})}
			if grid.Scores, err = t.floats(scoreColumn); err != nil {
				return errors.Trace(err)
			}
			for _, name := range lo.Without(t.header, scoreColumn) {
				paramName := model.ParamName(name)
				grid.Names = append(grid.Names, paramName)
				if grid.Columns[paramName], err = t.values(name); err != nil {
					return errors.Trace(err)
				}
			}
			opts := report.DefaultHeatmapOptions()
			opts.Midpoint = conf.Heatmap.Midpoint
			opts.VMin = conf.Heatmap.VMin
			fig, err := report.PlotGridSearch(grid, opts)
			if err != nil {
				return errors.Trace(err)
			}
			_, err = saveFigure(cmd, conf, fig)
			return err
		},
	}
	command.Flags().String("score", "mean_test_score", "column of mean validation scores")
	command.Flags().StringP("output", "o", "heatmap", "figure file name without extension")
	return command
}

func newImportanceCommand(getConfig func() *config.Config) *cobra.Command {
	command := &cobra.Command{
		Use:   "importance <csv>",
		Short: "Rank features by importances of ensemble members.",
		Long:  "Rank features by importances of ensemble members. Each row is a feature name followed by its importance in every member.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := getConfig()
			t, err := readTable(args[0])
			if err != nil {
				return errors.Trace(err)
			}
			if len(t.header) < 2 {
				return errors.NotValidf("%d columns (need name and at least one member)", len(t.header))
			}
			names, _ := t.column(t.header[0])
			members := make([][]float64, len(t.header)-1)
			for i, member := range t.header[1:] {
				if members[i], err = t.floats(member); err != nil {
					return errors.Trace(err)
				}
			}
			ensemble, err := importance.NewTable(members)
			if err != nil {
				return errors.Trace(err)
			}
			_, fig, err := report.FeatureImportance(cmd.OutOrStdout(), ensemble, names,
				conf.Importance.TopN, conf.Importance.StdDeviation)
			if err != nil {
				return errors.Trace(err)
			}
			_, err = saveFigure(cmd, conf, fig)
			return err
		},
	}
	command.Flags().StringP("output", "o", "importance", "figure file name without extension")
	return command
}

func newLearningCurveCommand(getConfig func() *config.Config) *cobra.Command {
	command := &cobra.Command{
		Use:   "learning-curve <csv>",
		Short: "Plot the learning curve of ridge regression.",
		Long:  "Plot the learning curve of ridge regression. Every column except the target column is a feature.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := getConfig()
			t, err := readTable(args[0])
			if err != nil {
				return errors.Trace(err)
			}
			targetColumn, _ := cmd.Flags().GetString("target")
			y, err := t.floats(targetColumn)
			if err != nil {
				return errors.Trace(err)
			}
			features := lo.Without(t.header, targetColumn)
			if len(y) == 0 {
				return errors.NotValidf("%s has no samples", args[0])
			}
			if len(features) == 0 {
				return errors.NotValidf("%s has no feature columns", args[0])
			}
			x := mat.NewDense(len(y), len(features), nil)
			for j, feature := range features {
				column, err := t.floats(feature)
				if err != nil {
					return errors.Trace(err)
				}
				x.SetCol(j, column)
			}
			alpha, _ := cmd.Flags().GetFloat64("alpha")
			title, _ := cmd.Flags().GetString("title")
			result, err := selection.LearningCurve(cmd.Context(), linear.NewRidge(model.Params{linear.Alpha: alpha}), x, y,
				selection.LearningCurveOptions{
					TrainSizes: conf.LearningCurve.TrainSizes,
					CV:         conf.LearningCurve.CV,
					Shuffle:    conf.LearningCurve.Shuffle,
					Seed:       conf.LearningCurve.Seed,
					Jobs:       conf.LearningCurve.Jobs,
				})
			if err != nil {
				return errors.Trace(err)
			}
			// Render table
			trainMean, _ := result.TrainMeanStd()
			testMean, _ := result.TestMeanStd()
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Train Size", "Training Score", "Cross-Validation Score")
			for i, size := range result.TrainSizes {
				if err = table.Append([]string{
					strconv.Itoa(size),
					fmt.Sprintf("%.4f", trainMean[i]),
					fmt.Sprintf("%.4f", testMean[i]),
				}); err != nil {
					return errors.Trace(err)
				}
			}
			if err = table.Render(); err != nil {
				return errors.Trace(err)
			}
			fig, err := report.RenderLearningCurve(title, result, nil)
			if err != nil {
				return errors.Trace(err)
			}
			_, err = saveFigure(cmd, conf, fig)
			return err
		},
	}
	command.Flags().String("target", "target", "column of regression targets")
	command.Flags().Float64("alpha", 1.0, "L2 regularization strength of ridge regression")
	command.Flags().String("title", "Learning Curves (Ridge)", "figure title")
	command.Flags().StringP("output", "o", "learning_curve", "figure file name without extension")
	return command
}
