package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	pdfserver "github.com/Leastj/pdf-server"
)

func main() {
	var (
		inputFile  string
		outputFile string
		logoPath   string
		qrCode     bool
		verbose    bool
	)

	flag.StringVar(&inputFile, "input", "", "Input inspection JSON file path")
	flag.StringVar(&outputFile, "output", "", "Output PDF file path")
	flag.StringVar(&logoPath, "logo", "", "Cover logo (path, URL or data URL); built-in logo when empty")
	flag.BoolVar(&qrCode, "qr", false, "Print the installation reference as a QR code on the cover")
	flag.BoolVar(&verbose, "debug", false, "Enable debug logging")
	flag.Parse()

	if inputFile == "" {
		fmt.Println("Error: input file is required")
		flag.Usage()
		os.Exit(1)
	}

	if outputFile == "" {
		ext := filepath.Ext(inputFile)
		outputFile = inputFile[:len(inputFile)-len(ext)] + ".pdf"
	}

	generator := pdfserver.New().WithOptions(
		pdfserver.WithLogoPath(logoPath),
		pdfserver.WithReferenceCode(qrCode),
		pdfserver.WithDebug(verbose),
	)
	result, err := generator.GenerateFile(context.Background(), inputFile, outputFile)
	if err != nil {
		fmt.Printf("Error rendering report: %v\n", err)
		os.Exit(1)
	}
	for _, of := range result.Overflows {
		fmt.Printf("Warning: %v\n", of)
	}

	if verbose {
		fmt.Printf("Successfully rendered %s to %s (%d pages)\n", inputFile, outputFile, result.Pages)
	}
}
