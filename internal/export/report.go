package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/cardpress/cardpress/pkg/logger"
)

// Report summarizes one export run for the user-facing status line.
type Report struct {
	StartTime  time.Time
	EndTime    time.Time
	Pages      int
	Cards      int
	ImageCount int
	Issues     map[string]string
}

// Summary distinguishes full success from success-with-issues. Rows
// with blocked remote images get the local-copy workaround hint.
func (r Report) Summary() string {
	if len(r.Issues) == 0 {
		return fmt.Sprintf("Exported %d cards on %d pages.", r.Cards, r.Pages)
	}
	return fmt.Sprintf(
		"Exported %d cards on %d pages; %d image(s) could not be loaded. "+
			"For blocked remote images, supply a local copy instead of the URL.",
		r.Cards, r.Pages, len(r.Issues))
}

func (r Report) Print(log *logger.Logger) {
	log.Info("Export complete:")
	log.Info("- Pages: %d", r.Pages)
	log.Info("- Cards: %d", r.Cards)
	log.Info("- Duration: %s", r.EndTime.Sub(r.StartTime).Round(time.Millisecond))
	if len(r.Issues) == 0 {
		return
	}
	log.Info("- Image issues: %d", len(r.Issues))
	ids := make([]string, 0, len(r.Issues))
	for id := range r.Issues {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		log.Warn("  row %s: %s", id, r.Issues[id])
	}
}
