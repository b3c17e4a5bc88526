package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func main() {
	pdfPath := flag.String("file", "", "Path to an exported deck PDF")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide an exported deck path using -file flag")
		os.Exit(1)
	}

	fmt.Printf("Checking deck: %s\n", *pdfPath)

	if err := api.ValidateFile(*pdfPath, nil); err != nil {
		fmt.Printf("Deck failed PDF validation: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("PDF structure: OK")

	dims, err := api.PageDimsFile(*pdfPath)
	if err != nil {
		fmt.Printf("Error getting page dimensions: %v\n", err)
		os.Exit(1)
	}

	// a deck must use one fixed page size throughout
	for i, dim := range dims {
		fmt.Printf("\nPage %d:\n", i+1)
		fmt.Printf("Dimensions (Width x Height): %.3f x %.3f points\n", dim.Width, dim.Height)
		if dim.Width != dims[0].Width || dim.Height != dims[0].Height {
			fmt.Printf("WARNING: page %d differs from page 1\n", i+1)
		}
	}
	fmt.Printf("\nTotal pages: %d\n", len(dims))
}
