package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"roiconnect/pkg/config"
	"roiconnect/pkg/connectivity"
	"roiconnect/pkg/export"
	"roiconnect/pkg/labels"
	"roiconnect/pkg/niftiio"
)

func main() {
	// Parse command line arguments
	funcPath := flag.String("func", "", "4D functional NIfTI volume, aligned to the atlas grid")
	atlasPath := flag.String("atlas", "", "3D integer-labeled atlas NIfTI volume")
	labelPath := flag.String("labels", "", "Label table mapping atlas ids to region names (optional)")
	sensitivity := flag.Float64("k", 1.0, "Sensitivity: threshold = mean + k*std of off-diagonal correlations")
	reportPath := flag.String("report", "fc_report.csv", "Output CSV for the thresholded pair report")
	matrixPath := flag.String("matrix", "", "Optional output .npy for the full correlation matrix")
	numCores := flag.Int("cores", runtime.NumCPU(), "Number of CPU cores to use (default: all available)")
	configPath := flag.String("config", "", "Optional YAML configuration file")
	flag.Parse()

	// Load configuration defaults and let flags override them
	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "k":
			cfg.Analysis.Sensitivity = *sensitivity
		case "cores":
			cfg.Analysis.NumCores = *numCores
		case "report":
			cfg.Output.ReportPath = *reportPath
		case "matrix":
			cfg.Output.MatrixPath = *matrixPath
		}
	})

	// Validate inputs
	if *funcPath == "" || *atlasPath == "" {
		flag.Usage()
		log.Fatal("Both -func and -atlas are required")
	}

	fmt.Println("================================")
	fmt.Println("ROI FUNCTIONAL CONNECTIVITY REPORT")
	fmt.Println("================================")

	// Load the two input volumes
	fmt.Println("Loading functional volume...")
	functional, err := niftiio.LoadFunctional(*funcPath)
	if err != nil {
		log.Fatalf("Failed to load functional volume: %v", err)
	}
	fmt.Printf("Functional volume: %dx%dx%d, %d timepoints\n", functional.X, functional.Y, functional.Z, functional.T)

	fmt.Println("Loading atlas volume...")
	atlas, err := niftiio.LoadAtlas(*atlasPath)
	if err != nil {
		log.Fatalf("Failed to load atlas volume: %v", err)
	}
	fmt.Printf("Atlas volume: %dx%dx%d\n", atlas.X, atlas.Y, atlas.Z)

	// Load the label dictionary; absence degrades to synthetic ROI names
	dict := labels.NewDictionary(nil)
	if *labelPath != "" {
		loaded, err := labels.Load(*labelPath)
		if err != nil {
			fmt.Printf("Warning: %v; using synthetic ROI names\n", err)
		} else {
			dict = loaded
			fmt.Printf("Loaded %d region names\n", dict.Len())
		}
	}

	// Run the analysis pipeline
	params := &connectivity.Params{
		Sensitivity: cfg.Analysis.Sensitivity,
		NumCores:    cfg.Analysis.NumCores,
		Verbose:     cfg.Output.Verbose,
	}
	analyzer := connectivity.NewAnalyzer(params)

	startTime := time.Now()
	result, err := analyzer.Run(functional, atlas, dict)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
	processingTime := time.Since(startTime)

	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}

	// Print the run summary
	numROIs := len(result.ROIs)
	fmt.Printf("\nAnalysis completed in %.2f seconds\n", processingTime.Seconds())
	fmt.Printf("ROIs: %d\n", numROIs)
	fmt.Printf("Off-diagonal mean: %.4f, std: %.4f\n", result.Report.OffDiagMean, result.Report.OffDiagStd)
	fmt.Printf("Threshold (k=%.2f): %.4f\n", cfg.Analysis.Sensitivity, result.Report.Threshold)
	fmt.Printf("Pair records selected: %d\n", len(result.Report.Records))

	// Write outputs; failures are warnings, the in-memory result stands
	if cfg.Output.ReportPath != "" {
		if err := export.WriteReportCSV(cfg.Output.ReportPath, result.Report.Records); err != nil {
			fmt.Printf("Warning: failed to write report: %v\n", err)
		} else {
			fmt.Printf("Pair report saved to: %s\n", cfg.Output.ReportPath)
		}
	}

	if cfg.Output.MatrixPath != "" {
		if err := export.WriteMatrixNPY(cfg.Output.MatrixPath, result.Matrix); err != nil {
			fmt.Printf("Warning: failed to write matrix: %v\n", err)
		} else {
			fmt.Printf("Correlation matrix saved to: %s\n", cfg.Output.MatrixPath)
		}
	}
}
