package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/cardpress/cardpress/internal/config"
	"github.com/cardpress/cardpress/internal/csvimport"
	"github.com/cardpress/cardpress/internal/export"
	"github.com/cardpress/cardpress/internal/store"
	"github.com/cardpress/cardpress/internal/validate"
	"github.com/cardpress/cardpress/pkg/logger"
	"github.com/cardpress/cardpress/pkg/models"
	"github.com/cardpress/cardpress/pkg/utils"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	csvPath := flag.String("csv", "", "CSV file with word/subtitle/imageUrl rows to import")
	outPath := flag.String("out", "cards.pdf", "output PDF path")
	setName := flag.String("set", "", "name of the set to export (defaults to the active set)")
	preset := flag.Int("preset", 0, "cards per page: 6, 8 or 12 (overrides the set)")
	doubleSided := flag.Bool("double-sided", false, "export front and back pages")
	cutGuides := flag.Bool("cut-guides", false, "draw cut guides around each card")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	flag.Parse()

	log := logger.New(logger.WithPrefix("[cardpress] "))
	log.SetVerbose(*verbose)
	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal("Error loading config: %v", err)
		}
		log.Debug("No config file at %s, using defaults", *configPath)
		cfg = config.Default()
	}

	db, err := store.Open(cfg.DatabasePath, log)
	if err != nil {
		log.Fatal("Error opening workspace database: %v", err)
	}
	defer db.Close()

	ws, err := db.Load()
	if err != nil {
		log.Fatal("Error loading workspace: %v", err)
	}
	if ws == nil {
		log.Info("Creating a new workspace")
		ws = newWorkspace(cfg)
	}

	set := pickSet(ws, *setName)
	if set == nil {
		log.Fatal("No set named %q in the workspace", *setName)
	}

	if *csvPath != "" {
		f, err := os.Open(*csvPath)
		if err != nil {
			log.Fatal("Error opening CSV: %v", err)
		}
		rows, err := csvimport.Parse(f)
		f.Close()
		if err != nil {
			log.Fatal("Error importing CSV: %v", err)
		}
		set.Rows = append(set.Rows, rows...)
		set.UpdatedAt = time.Now()
		log.Info("Imported %d rows from %s", len(rows), *csvPath)
	}

	if len(set.Rows) == 0 {
		log.Fatal("Set %q has no rows to export", set.Name)
	}
	if *preset != 0 {
		set.Preset = models.Preset(*preset)
	}
	if *doubleSided {
		set.DoubleSided = true
	}
	if *cutGuides {
		set.ShowCutGuides = true
	}

	page := export.PageGeometry{
		WidthMM:  cfg.Page.WidthMM,
		HeightMM: cfg.Page.HeightMM,
		MarginMM: cfg.Page.MarginMM,
		GutterMM: cfg.Page.GutterMM,
	}
	engine, err := export.NewEngine(page, cfg.CJKFontPath, log)
	if err != nil {
		log.Fatal("Export unavailable: %v", err)
	}

	validator := validate.New(engine.Measurer)
	for id, rv := range validator.Rows(set) {
		if rv.WordOverflow {
			log.Warn("row %s: word text overflows its box", id)
		}
		if rv.SubtitleOverflow {
			log.Warn("row %s: subtitle text overflows its box", id)
		}
		if rv.ImageIssue != "" {
			log.Debug("row %s: %s", id, rv.ImageIssue)
		}
	}

	result, err := engine.Export(context.Background(), set, func(stage string, percent int) {
		log.Debug("%3d%% %s", percent, stage)
	})
	if err != nil {
		log.Fatal("Export failed: %v", err)
	}

	if err := os.WriteFile(*outPath, result.Bytes, 0644); err != nil {
		log.Fatal("Error writing %s: %v", *outPath, err)
	}
	log.Info("Wrote %s (%d bytes)", *outPath, len(result.Bytes))
	result.Report.Print(log)
	log.Info("%s", result.Report.Summary())

	db.Save(ws)
}

func newWorkspace(cfg *config.Config) *models.Workspace {
	now := time.Now()
	set := models.FlashcardSet{
		ID:            utils.NewID(),
		Name:          "My first set",
		Template:      models.DefaultTemplate(),
		Preset:        models.Preset(cfg.Export.Preset),
		ShowCutGuides: cfg.Export.ShowCutGuides,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return &models.Workspace{
		Sets:        []models.FlashcardSet{set},
		ActiveSetID: set.ID,
	}
}

func pickSet(ws *models.Workspace, name string) *models.FlashcardSet {
	if name == "" {
		return ws.ActiveSet()
	}
	for i := range ws.Sets {
		if ws.Sets[i].Name == name {
			return &ws.Sets[i]
		}
	}
	return nil
}
