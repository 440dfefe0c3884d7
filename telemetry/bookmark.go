package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFrameHitch  BookmarkType = "frame_hitch"
	BookmarkSpeedDrift  BookmarkType = "speed_drift"
	BookmarkStalled     BookmarkType = "stalled"
	BookmarkCornerRally BookmarkType = "corner_rally"
)

// Detector thresholds
const (
	hitchFactor     = 4.0  // frame max over rolling mean frame time
	hitchMinMs      = 50.0 // ignore hitches shorter than this
	driftTolerance  = 1e-6 // relative speed change that counts as drift
	stalledWindows  = 5    // consecutive windows without a paddle contact
	cornerRallyMin  = 3    // corner contacts in one window
	minHistoryCheck = 3
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Frame       int64        `csv:"frame"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"frame", b.Frame,
		"description", b.Description,
	)
}

// BookmarkDetector flags telemetry windows worth a closer look.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	quietWindows  int  // consecutive windows without contacts
	driftReported bool // speed drift is reported once per episode
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < minHistoryCheck {
		historySize = minHistoryCheck
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkFrameHitch(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSpeedDrift(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkStalled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkCornerRally(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkFrameHitch fires when one frame in the window took much longer than
// the recent average frame.
func (bd *BookmarkDetector) checkFrameHitch(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < minHistoryCheck {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.FrameMsMean
	}
	avg := total / float64(len(history))
	if avg <= 0 {
		return nil
	}

	if stats.FrameMsMax > avg*hitchFactor && stats.FrameMsMax >= hitchMinMs {
		return &Bookmark{
			Type:  BookmarkFrameHitch,
			Frame: stats.WindowEndFrame,
			Description: fmt.Sprintf("Frame of %.1f ms is %.1fx the average (%.2f ms), %d substeps",
				stats.FrameMsMax, stats.FrameMsMax/avg, avg, stats.SubstepsMax),
		}
	}
	return nil
}

// checkSpeedDrift fires once when the ball speed leaves the starting speed.
func (bd *BookmarkDetector) checkSpeedDrift(stats WindowStats) *Bookmark {
	if stats.SpeedDrift <= driftTolerance {
		bd.driftReported = false
		return nil
	}
	if bd.driftReported {
		return nil
	}
	bd.driftReported = true
	return &Bookmark{
		Type:        BookmarkSpeedDrift,
		Frame:       stats.WindowEndFrame,
		Description: fmt.Sprintf("Ball speed drifted %.3g from its starting value", stats.SpeedDrift),
	}
}

// checkStalled fires once when several windows pass without any paddle
// contact, e.g. a ball bouncing vertically between the paddles.
func (bd *BookmarkDetector) checkStalled(stats WindowStats) *Bookmark {
	if stats.Contacts > 0 {
		bd.quietWindows = 0
		return nil
	}
	bd.quietWindows++
	if bd.quietWindows == stalledWindows { // trigger exactly once
		return &Bookmark{
			Type:        BookmarkStalled,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("No paddle contact for %d windows", stalledWindows),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkCornerRally(stats WindowStats) *Bookmark {
	if stats.CornerContacts >= cornerRallyMin && 2*stats.CornerContacts > stats.Contacts {
		return &Bookmark{
			Type:        BookmarkCornerRally,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("%d of %d contacts hit a corner", stats.CornerContacts, stats.Contacts),
		}
	}
	return nil
}
