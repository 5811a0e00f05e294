// ABOUTME: Segmenter splits raw document text into topic-labeled segments
// ABOUTME: Prefers TOC-anchored splitting, falls back to generic header heuristics, then merges short segments
package ingest

import (
	"regexp"
	"strings"

	"github.com/harper/studybuddy/internal/models"
)

const (
	// tocLineLimit is the line length past which a candidate TOC block is
	// assumed to have run into body text
	tocLineLimit = 300
	// maxTOCHeaders caps how many headers are harvested from a TOC block
	maxTOCHeaders = 30
	// headerLineLimit rejects header matches embedded in long body lines
	headerLineLimit = 100
	// heuristicHeaderLimit rejects overlong lines in the generic header check
	heuristicHeaderLimit = 80
	// heuristicMergeThreshold folds short heuristic segments into neighbors.
	// TOC-derived segments are trusted as-is (threshold 0).
	heuristicMergeThreshold = 300
)

var (
	tocMarkerRe = regexp.MustCompile(`(?i)^(Table of Contents|Contents|Index)$`)

	// A TOC entry: numbered or labelled prefix, title, optional dot leaders
	// (including the ". . ." spaced form common in PDF extractions) and an
	// optional page number.
	tocEntryRe = regexp.MustCompile(`^(\d+\.?\s+|Chapter\s+\d+:?\s+|Module\s+\d+:?\s+)(.+?)(?:\s*(?:\. ?){2,}\s*|\s{2,})?(\d+)?$`)

	// Trailing dot leaders and page numbers that leaked into a header title
	tocTrailRe = regexp.MustCompile(`[.\s]{3,}.*$`)

	// Lines that are TOC entries themselves, not body headers
	tocBodyLineRe  = regexp.MustCompile(`\.{3,}\s*\d+$`)
	dotLeaderRe    = regexp.MustCompile(`\.{4,}`)
	numberStartRe  = regexp.MustCompile(`^\d+\s+[A-Za-z]+`)
	genericHeaders = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Chapter\s+\d+.*$`),
		regexp.MustCompile(`(?i)^\d+\.\s+[A-Z][a-zA-Z\s]+$`),
		regexp.MustCompile(`(?i)^(Introduction|Preliminaries|Appendix|Index|Glossary|Bibliography|References)$`),
		regexp.MustCompile(`(?i)^Table of Contents$`),
		regexp.MustCompile(`(?i)^Contents$`),
		regexp.MustCompile(`(?i)^Module\s+\d+.*$`),
		regexp.MustCompile(`(?i)^Unit\s+\d+.*$`),
		regexp.MustCompile(`(?i)^Section\s+\d+.*$`),
		regexp.MustCompile(`(?i)^Topic\s+\d+.*$`),
	}
)

// Segmenter infers chapter and topic boundaries in extracted text without
// a formal document model. It is deterministic and never errors: worst
// case it returns nil, signalling "use the caller's fallback topic".
type Segmenter struct{}

// NewSegmenter creates a new Segmenter instance
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment splits text into an ordered sequence of topic-labeled segments.
// TOC-anchored splitting is tried first; when it yields no usable
// boundaries the generic header heuristic runs instead. A nil result means
// no boundaries were found.
func (s *Segmenter) Segment(text string) []models.Segment {
	tocHeaders := s.extractTOCHeaders(text)

	var raw []models.Segment
	usedTOC := false
	if len(tocHeaders) > 0 {
		raw = s.splitByKnownHeaders(text, tocHeaders)
		usedTOC = len(raw) > 1
	}
	if !usedTOC {
		// Also reached when TOC headers never matched the body text
		// (OCR noise can mangle them); retry with the generic heuristic
		// instead of silently giving up on the whole document.
		raw = s.splitByHeaderHeuristic(text)
	}

	if len(raw) <= 1 {
		return nil
	}

	threshold := heuristicMergeThreshold
	if usedTOC {
		threshold = 0
	}
	return mergeShortSegments(raw, threshold)
}

// extractTOCHeaders scans for a table-of-contents block and harvests up to
// maxTOCHeaders chapter titles from it. Single pass: an overlong line ends
// the current candidate block, but a later marker may open another one.
func (s *Segmenter) extractTOCHeaders(text string) []string {
	var headers []string
	inTOC := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if tocMarkerRe.MatchString(line) {
			inTOC = true
			continue
		}
		if !inTOC {
			continue
		}

		if len(line) > tocLineLimit {
			// Body text, not a TOC entry
			inTOC = false
			continue
		}

		m := tocEntryRe.FindStringSubmatch(line)
		if m != nil {
			header := strings.TrimSpace(m[1]) + " " + strings.TrimSpace(m[2])
			header = strings.TrimSpace(tocTrailRe.ReplaceAllString(header, ""))
			headers = append(headers, header)
		}

		if len(headers) > maxTOCHeaders {
			break
		}
	}

	return headers
}

// splitByKnownHeaders splits text using the specific headers harvested from
// a TOC, skipping lines that are TOC entries themselves.
func (s *Segmenter) splitByKnownHeaders(text string, headers []string) []models.Segment {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(h)
	}

	return splitLines(text, func(line string) bool {
		// Skip TOC lines like "1. Intro . . . . 5" so the TOC block is
		// not mistaken for body content
		if tocBodyLineRe.MatchString(line) || dotLeaderRe.MatchString(line) {
			return false
		}
		// Reject matches embedded in long lines ("Chapter 1" opening a
		// full sentence is body text, not a header)
		if len(line) > headerLineLimit {
			return false
		}
		ll := strings.ToLower(line)
		for _, h := range lowered {
			if strings.HasPrefix(ll, h) {
				return true
			}
		}
		return false
	})
}

// splitByHeaderHeuristic splits text on lines that look like structural headers
func (s *Segmenter) splitByHeaderHeuristic(text string) []models.Segment {
	return splitLines(text, isHeaderLine)
}

// splitLines walks the document line by line, starting a new segment
// whenever isHeader fires. The matching line becomes the next segment's
// topic; accumulated lines close out the previous segment.
func splitLines(text string, isHeader func(string) bool) []models.Segment {
	var segments []models.Segment
	currentTopic := "Introduction"
	var currentContent []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			currentContent = append(currentContent, line)
			continue
		}

		if isHeader(line) {
			if len(currentContent) > 0 {
				segments = append(segments, models.Segment{
					Topic:   currentTopic,
					Content: strings.Join(currentContent, "\n"),
				})
			}
			currentTopic = line
			currentContent = nil
		} else {
			currentContent = append(currentContent, line)
		}
	}

	if len(currentContent) > 0 {
		segments = append(segments, models.Segment{
			Topic:   currentTopic,
			Content: strings.Join(currentContent, "\n"),
		})
	}

	return segments
}

// isHeaderLine applies the generic header-likelihood heuristic to one line
func isHeaderLine(line string) bool {
	if len(line) > heuristicHeaderLimit {
		return false
	}

	switch line[len(line)-1] {
	case ',', ';', ':':
		return false
	}

	// Blacklist garbage headers before pattern matching
	if strings.Contains(line, "|") {
		return false
	}
	// Address-like false positives: "1005 Gravenstein" has no early period
	if numberStartRe.MatchString(line) && !strings.Contains(line[:min(5, len(line))], ".") {
		return false
	}
	if strings.Contains(line, "Page") && len(line) < 15 {
		return false
	}

	for _, re := range genericHeaders {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// mergeShortSegments folds segments whose content is below threshold into
// the following segment (or the previous accumulated one at the tail), so
// a false-positive header becomes harmless extra content instead of a
// spurious tiny topic. When every segment is short the document is simply
// fine-grained and the pass is skipped entirely.
func mergeShortSegments(raw []models.Segment, threshold int) []models.Segment {
	if threshold <= 0 {
		return raw
	}

	allShort := true
	for _, seg := range raw {
		if len(seg.Content) >= threshold {
			allShort = false
			break
		}
	}
	if allShort {
		return raw
	}

	var merged []models.Segment
	for i := 0; i < len(raw); i++ {
		seg := raw[i]
		if len(seg.Content) >= threshold {
			merged = append(merged, seg)
			continue
		}
		if i+1 < len(raw) {
			raw[i+1].Content = seg.Topic + "\n" + seg.Content + "\n" + raw[i+1].Content
		} else if len(merged) > 0 {
			merged[len(merged)-1].Content += "\n" + seg.Topic + "\n" + seg.Content
		} else {
			merged = append(merged, seg)
		}
	}
	return merged
}
