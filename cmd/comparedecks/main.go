package main

import (
	"fmt"
	"os"

	"github.com/gen2brain/go-fitz"

	"github.com/cardpress/cardpress/pkg/utils"
)

// comparedecks rasterizes two exported decks page by page and compares
// pixel hashes, which is how export determinism gets checked by hand:
// two exports of the same set must produce identical page rasters.
func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: comparedecks first.pdf second.pdf")
		os.Exit(1)
	}

	doc1, err := fitz.New(os.Args[1])
	if err != nil {
		fmt.Printf("Error opening first deck: %v\n", err)
		os.Exit(1)
	}
	defer doc1.Close()

	doc2, err := fitz.New(os.Args[2])
	if err != nil {
		fmt.Printf("Error opening second deck: %v\n", err)
		os.Exit(1)
	}
	defer doc2.Close()

	fmt.Printf("Deck 1 pages: %d\n", doc1.NumPage())
	fmt.Printf("Deck 2 pages: %d\n", doc2.NumPage())
	if doc1.NumPage() != doc2.NumPage() {
		fmt.Println("Page counts differ")
		os.Exit(1)
	}

	identical := true
	for pageNum := 0; pageNum < doc1.NumPage(); pageNum++ {
		img1, err := doc1.Image(pageNum)
		if err != nil {
			fmt.Printf("Error rasterizing page %d of deck 1: %v\n", pageNum+1, err)
			os.Exit(1)
		}
		img2, err := doc2.Image(pageNum)
		if err != nil {
			fmt.Printf("Error rasterizing page %d of deck 2: %v\n", pageNum+1, err)
			os.Exit(1)
		}

		h1 := utils.RasterHash(img1)
		h2 := utils.RasterHash(img2)
		match := h1 == h2
		if !match {
			identical = false
		}
		fmt.Printf("Page %d: match=%v\n", pageNum+1, match)
	}

	if !identical {
		fmt.Println("Decks differ")
		os.Exit(1)
	}
	fmt.Println("Decks are pixel-identical")
}
