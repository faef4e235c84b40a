package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openmed/species-detect/lib"
	"github.com/openmed/species-detect/lib/detector"
	"github.com/openmed/species-detect/lib/invoker"
	http_invoker "github.com/openmed/species-detect/lib/invoker/http-invoker"
	sagemaker_invoker "github.com/openmed/species-detect/lib/invoker/sagemaker-invoker"
	"github.com/openmed/species-detect/lib/report"
	"github.com/openmed/species-detect/lib/tabular"
)

// config structure
type batchExampleConfig struct {
	lib.BaseConfig
	Endpoint struct {
		Name    string
		Region  string
		Backend string
		Url     string
	}
	MaxWorkers int `mapstructure:"max_workers"`
	Input      struct {
		Path       string
		TextColumn string `mapstructure:"text_column"`
		OutputPath string `mapstructure:"output_path"`
	}
}

var config batchExampleConfig

var sampleTexts = []string{
	"Patient diagnosed with pneumonia caused by Streptococcus pneumoniae.",
	"Blood culture positive for Escherichia coli and Staphylococcus aureus.",
	"Wound infection with Pseudomonas aeruginosa resistant to multiple antibiotics.",
	"Candida albicans isolated from respiratory specimen.",
	"Microbiome analysis shows Lactobacillus acidophilus and Bifidobacterium longum.",
	"MRSA (methicillin-resistant Staphylococcus aureus) infection in surgical site.",
	"Clostridium difficile-associated diarrhea following antibiotic treatment.",
	"Helicobacter pylori detected in gastric biopsy specimen.",
	"Aspergillus fumigatus infection in immunocompromised patient.",
	"Neisseria gonorrhoeae confirmed by nucleic acid amplification testing.",
}

func initConfig() {
	// Set default config values
	err := lib.InitializeConfig("./config/batch-example.yml", map[string]interface{}{
		"log_level":   "info",
		"max_workers": detector.DefaultMaxWorkers,
		"endpoint": map[string]interface{}{
			"name":    "openmed-ner-species-detection-endpoint",
			"region":  "us-east-1",
			"backend": "sagemaker",
			"url":     "",
		},
		"input": map[string]interface{}{
			"path":        "",
			"text_column": detector.DefaultTextColumn,
			"output_path": "",
		},
	}, &config)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func main() {
	initConfig()
	ctx := context.Background()

	var client invoker.Client
	var err error
	switch config.Endpoint.Backend {
	case "sagemaker":
		client, err = sagemaker_invoker.New(ctx, config.Endpoint.Name, config.Endpoint.Region)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
	case "http":
		client = http_invoker.New(config.Endpoint.Url)
	default:
		log.Fatal().Str("backend", config.Endpoint.Backend).Msg("invalid invoker backend")
	}

	d := detector.New(client, detector.WithMaxWorkers(config.MaxWorkers))

	fmt.Println("=== OpenMed NER Species Detection - Batch Processing Example ===")
	fmt.Printf("Processing %d sample texts...\n\n", len(sampleTexts))

	start := time.Now()
	results := d.PredictBatch(ctx, sampleTexts)
	report.Write(os.Stdout, results, time.Since(start))

	if config.Input.Path != "" {
		processFile(ctx, d)
	}

	fmt.Println("\n=== Batch Processing Complete ===")
}

// processFile runs the tabular path: read a CSV, detect species in the
// configured text column and write the flattened per-entity rows back out.
func processFile(ctx context.Context, d *detector.Detector) {
	rows, err := d.ProcessFile(ctx, config.Input.Path, config.Input.TextColumn)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	out := os.Stdout
	if config.Input.OutputPath != "" {
		out, err = os.Create(config.Input.OutputPath)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		defer out.Close()
	}

	if err := tabular.WriteRows(out, rows); err != nil {
		log.Fatal().Err(err).Send()
	}
}
