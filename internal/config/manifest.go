package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"colorize/internal/model"
)

// Source describes one video to sample.
type Source struct {
	URL      string  `yaml:"url"`
	Filename string  `yaml:"filename"`  // local name without extension
	SkipOpen float64 `yaml:"skip_open"` // seconds
	SkipEnd  float64 `yaml:"skip_end"`  // seconds
	Mode     string  `yaml:"mode"`      // RGB or L
}

// Manifest is the batch job: which sources feed which table.
type Manifest struct {
	Train []Source `yaml:"train"`
	Test  []Source `yaml:"test"`
}

// DefaultManifest is the capstone dataset: five color episodes for training
// (title sequence and credits skipped) and one black-and-white episode for testing.
func DefaultManifest() *Manifest {
	trainURLs := []string{
		"https://www.youtube.com/watch?v=aRRYIe6hXTQ&list=PLklyfwlKNjxD52EQbChCopHxWdAXBX0cg",
		"https://www.youtube.com/watch?v=NZlBM8hw3cg&list=PLklyfwlKNjxD52EQbChCopHxWdAXBX0cg&index=3",
		"https://www.youtube.com/watch?v=_PhHKIufB4Q&list=PLklyfwlKNjxD52EQbChCopHxWdAXBX0cg&index=4",
		"https://www.youtube.com/watch?v=w4Jfm4J-9tw",
		"https://www.youtube.com/watch?v=PmZP_efIOhQ",
	}

	m := &Manifest{}
	for i, url := range trainURLs {
		m.Train = append(m.Train, Source{
			URL:      url,
			Filename: fmt.Sprintf("video_%d", i),
			SkipOpen: 75,
			SkipEnd:  60,
			Mode:     model.ModeColor.String(),
		})
	}
	m.Test = []Source{{
		URL:      "https://www.youtube.com/watch?v=QSegeI5Qn6A",
		Filename: "test_data",
		Mode:     model.ModeGray.String(),
	}}
	return m
}

// LoadManifest reads a YAML manifest, or returns DefaultManifest when path is empty.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return DefaultManifest(), nil
	}

	m := &Manifest{}
	if err := cleanenv.ReadConfig(path, m); err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return m, nil
}

// Validate checks every source and fills in the default mode per table.
func (m *Manifest) Validate() error {
	if len(m.Train) == 0 && len(m.Test) == 0 {
		return fmt.Errorf("no sources configured")
	}
	if err := validateSources("train", m.Train, model.ModeColor); err != nil {
		return err
	}
	return validateSources("test", m.Test, model.ModeGray)
}

func validateSources(section string, sources []Source, want model.Mode) error {
	for i := range sources {
		src := &sources[i]
		if strings.TrimSpace(src.URL) == "" {
			return fmt.Errorf("%s[%d]: url is required", section, i)
		}
		if strings.TrimSpace(src.Filename) == "" {
			return fmt.Errorf("%s[%d]: filename is required", section, i)
		}
		if src.SkipOpen < 0 || src.SkipEnd < 0 {
			return fmt.Errorf("%s[%d]: skip_open and skip_end must be >= 0", section, i)
		}
		if src.Mode == "" {
			src.Mode = want.String()
		}
		mode, err := model.ParseMode(src.Mode)
		if err != nil {
			return fmt.Errorf("%s[%d]: %w", section, i, err)
		}
		if mode != want {
			return fmt.Errorf("%s[%d]: mode %s does not match the %s table", section, i, mode, section)
		}
	}
	return nil
}
