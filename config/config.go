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

package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/juju/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config is the configuration for reports.
type Config struct {
	Figure        FigureConfig        `mapstructure:"figure"`
	Heatmap       HeatmapConfig       `mapstructure:"heatmap"`
	LearningCurve LearningCurveConfig `mapstructure:"learning_curve"`
	Importance    ImportanceConfig    `mapstructure:"importance"`
}

// FigureConfig controls how figures are written. A zero width or height keeps
// the size each figure is designed for.
type FigureConfig struct {
	Width     float64 `mapstructure:"width" validate:"gte=0"`  // inches
	Height    float64 `mapstructure:"height" validate:"gte=0"` // inches
	Format    string  `mapstructure:"format" validate:"oneof=png svg pdf jpg jpeg tif tiff eps"`
	OutputDir string  `mapstructure:"output_dir" validate:"required"`
}

type HeatmapConfig struct {
	Midpoint float64 `mapstructure:"midpoint"`
	VMin     float64 `mapstructure:"vmin" validate:"ltfield=Midpoint"`
}

type LearningCurveConfig struct {
	CV         int       `mapstructure:"cv" validate:"gte=2"`
	Jobs       int       `mapstructure:"jobs" validate:"gte=1"`
	TrainSizes []float64 `mapstructure:"train_sizes" validate:"required,dive,gt=0"`
	Shuffle    bool      `mapstructure:"shuffle"`
	Seed       int64     `mapstructure:"seed"`
}

type ImportanceConfig struct {
	TopN         int  `mapstructure:"top_n" validate:"gte=0"` // 0 means all features
	StdDeviation bool `mapstructure:"std_deviation"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Figure: FigureConfig{
			Format:    "png",
			OutputDir: ".",
		},
		Heatmap: HeatmapConfig{
			Midpoint: 0.7,
			VMin:     0.2,
		},
		LearningCurve: LearningCurveConfig{
			CV:         5,
			Jobs:       1,
			TrainSizes: []float64{0.1, 0.325, 0.55, 0.775, 1.0},
		},
		Importance: ImportanceConfig{},
	}
}

func setDefault(v *viper.Viper) {
	defaultConfig := GetDefaultConfig()
	// [figure]
	v.SetDefault("figure.width", defaultConfig.Figure.Width)
	v.SetDefault("figure.height", defaultConfig.Figure.Height)
	v.SetDefault("figure.format", defaultConfig.Figure.Format)
	v.SetDefault("figure.output_dir", defaultConfig.Figure.OutputDir)
	// [heatmap]
	v.SetDefault("heatmap.midpoint", defaultConfig.Heatmap.Midpoint)
	v.SetDefault("heatmap.vmin", defaultConfig.Heatmap.VMin)
	// [learning_curve]
	v.SetDefault("learning_curve.cv", defaultConfig.LearningCurve.CV)
	v.SetDefault("learning_curve.jobs", defaultConfig.LearningCurve.Jobs)
	v.SetDefault("learning_curve.train_sizes", defaultConfig.LearningCurve.TrainSizes)
	v.SetDefault("learning_curve.shuffle", defaultConfig.LearningCurve.Shuffle)
	v.SetDefault("learning_curve.seed", defaultConfig.LearningCurve.Seed)
	// [importance]
	v.SetDefault("importance.top_n", defaultConfig.Importance.TopN)
	v.SetDefault("importance.std_deviation", defaultConfig.Importance.StdDeviation)
}

// LoadConfig loads configuration from a TOML file. Environment variables
// prefixed with EVALVIZ_ override the file, e.g. EVALVIZ_HEATMAP_MIDPOINT.
// An empty path loads defaults and environment variables only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)
	v.SetEnvPrefix("EVALVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "read config %s", path)
		}
	}
	var conf Config
	if err := v.Unmarshal(&conf, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		stringToFloat64SliceHookFunc(","),
	))); err != nil {
		return nil, errors.Annotate(err, "parse config")
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

// stringToFloat64SliceHookFunc decodes separated numbers, e.g. "0.5,1", into
// a []float64.
func stringToFloat64SliceHookFunc(sep string) mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf([]float64{}) {
			return data, nil
		}
		raw := strings.TrimSpace(reflect.ValueOf(data).String())
		if raw == "" {
			return []float64{}, nil
		}
		fields := strings.Split(raw, sep)
		values := make([]float64, len(fields))
		for i, field := range fields {
			value, err := cast.ToFloat64E(strings.TrimSpace(field))
			if err != nil {
				return nil, errors.NotValidf("%q in %q", field, raw)
			}
			values[i] = value
		}
		return values, nil
	}
}

// Validate checks value ranges.
func (config *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		return errors.NewNotValid(err, "invalid config")
	}
	return nil
}
