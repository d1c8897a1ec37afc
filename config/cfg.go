package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	validator "github.com/go-playground/validator/v10"
	"github.com/rupor-github/gencfg"
	"golang.org/x/text/language"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	PageConfig struct {
		Title              string        `yaml:"title" validate:"required"`
		Heading            string        `yaml:"heading"`
		Description        string        `yaml:"description"`
		Language           string        `yaml:"language" validate:"required"`
		StylesheetPath     string        `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		StylesheetName     string        `yaml:"stylesheet_name" validate:"required"`
		OutputNameTemplate string        `yaml:"output_name_template"`
		BaselineOrder      BaselineOrder `yaml:"baseline_order"`
		RowAnchors         bool          `yaml:"row_anchors"`
		DefaultSource      string        `yaml:"default_source" validate:"required"`
	}

	FetchConfig struct {
		Timeout   time.Duration `yaml:"timeout" validate:"gte=0"`
		UserAgent string        `yaml:"user_agent"`
	}

	WatchConfig struct {
		Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
	}

	CheckConfig struct {
		Workers int `yaml:"workers" validate:"min=1,max=64"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Page      PageConfig     `yaml:"page"`
		Fetch     FetchConfig    `yaml:"fetch"`
		Watch     WatchConfig    `yaml:"watch"`
		Check     CheckConfig    `yaml:"check"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(additionalChecks)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// additionalChecks validates what could not be expressed with tags.
func additionalChecks(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	if _, err := language.Parse(cfg.Page.Language); err != nil {
		sl.ReportError(cfg.Page.Language, "Page.Language", "Language", "bcp47_language_tag", "")
	}
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

// Dump returns actual configuration as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
