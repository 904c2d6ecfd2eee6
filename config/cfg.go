package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"slimock/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	StylesConfig struct {
		RemoveDataURLs       bool              `yaml:"remove_data_urls"`
		RemoveFontFaces      bool              `yaml:"remove_font_faces"`
		PurgeSelectors       bool              `yaml:"purge_selectors"`
		PruneVariables       bool              `yaml:"prune_variables"`
		PrunePropertyRules   bool              `yaml:"prune_property_rules"`
		RemoveVendorPrefixes bool              `yaml:"remove_vendor_prefixes"`
		Format               common.FormatMode `yaml:"format" validate:"gte=0,lte=2"`
	}

	TailwindConfig struct {
		StripClasses bool   `yaml:"strip_classes"`
		CDNURL       string `yaml:"cdn_url" validate:"omitempty,url"`
	}

	ImagesConfig struct {
		RemoveInlineDataURLs bool   `yaml:"remove_inline_data_urls"`
		Placeholder          bool   `yaml:"placeholder"`
		PlaceholderTemplate  string `yaml:"placeholder_template" validate:"required_if=Placeholder true"`
		DefaultWidth         int    `yaml:"default_width" validate:"min=1,max=10000"`
		DefaultHeight        int    `yaml:"default_height" validate:"min=1,max=10000"`
	}

	CleanupConfig struct {
		RemoveUnnecessary bool `yaml:"remove_unnecessary"`
	}

	DocumentConfig struct {
		Charset   string            `yaml:"charset"`
		Normalize bool              `yaml:"normalize"`
		Styles    StylesConfig      `yaml:"styles"`
		Tailwind  TailwindConfig    `yaml:"tailwind"`
		Images    ImagesConfig      `yaml:"images"`
		Cleanup   CleanupConfig     `yaml:"cleanup"`
		Format    common.FormatMode `yaml:"format" validate:"gte=0,lte=2"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	PlaceholderTemplateFieldName TemplateFieldName = "placeholder_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(PlaceholderTemplateFieldName)),
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
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
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

	// overwrite cfg values with values from the file
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

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
