// Package ingest turns non-audio input into the engine's segment
// format: plain text becomes pseudo-segments with synthetic uniform
// timestamps, so the same extraction pipeline handles transcripts and
// documents alike.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/store"
)

const (
	segmentTargetChars = 200
	readingCharsPerSec = 20.0
	minChunkChars      = 20
)

var (
	paragraphRe = regexp.MustCompile(`\n\s*\n`)
	sentenceRe  = regexp.MustCompile(`(?:[.!?])\s+`)
)

// SegmentsFromText splits text into pseudo-segments: paragraphs first,
// long paragraphs chunked at sentence boundaries near the target size,
// timestamps advancing at a synthetic reading speed. The timings only
// matter for ordering.
func SegmentsFromText(text string) []model.TimedSegment {
	var segments []model.TimedSegment
	ts := 0.0
	for _, para := range paragraphRe.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		for _, chunk := range chunkParagraph(para) {
			if len(chunk) < minChunkChars {
				continue
			}
			duration := float64(len(chunk)) / readingCharsPerSec
			if duration < 1 {
				duration = 1
			}
			segments = append(segments, model.TimedSegment{
				Text:   chunk,
				StartS: round3(ts),
				EndS:   round3(ts + duration),
			})
			ts += duration
		}
	}
	return segments
}

// chunkParagraph splits at sentence endings, accumulating to roughly
// the target chunk size.
func chunkParagraph(para string) []string {
	if len(para) <= segmentTargetChars {
		return []string{para}
	}
	// Split keeping terminators: find boundaries after .!? + space.
	var sentences []string
	last := 0
	for _, loc := range sentenceRe.FindAllStringIndex(para, -1) {
		sentences = append(sentences, strings.TrimSpace(para[last:loc[0]+1]))
		last = loc[1]
	}
	if last < len(para) {
		sentences = append(sentences, strings.TrimSpace(para[last:]))
	}

	var chunks []string
	current := ""
	for _, sent := range sentences {
		if current != "" && len(current)+len(sent) > segmentTargetChars {
			chunks = append(chunks, current)
			current = sent
		} else if current == "" {
			current = sent
		} else {
			current += " " + sent
		}
	}
	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// TextFile ingests a plain-text file as a new source: creates the
// source row and persists its synthetic segments.
func TextFile(st store.Store, path, title string, now time.Time) (model.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Source{}, fmt.Errorf("%w: read %s: %v", model.ErrInput, path, err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return model.Source{}, fmt.Errorf("%w: file %s is empty", model.ErrInput, path)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return Text(st, text, title, path, now)
}

// Text ingests a raw string as a new source.
func Text(st store.Store, text, title, originURL string, now time.Time) (model.Source, error) {
	segments := SegmentsFromText(text)
	if len(segments) == 0 {
		return model.Source{}, fmt.Errorf("%w: no usable text", model.ErrInput)
	}
	src := model.Source{
		ID:         model.NewID(),
		Kind:       model.SourceText,
		Title:      title,
		OriginURL:  originURL,
		IngestedAt: now.UTC(),
	}
	if err := st.SaveSource(src); err != nil {
		return model.Source{}, err
	}
	if err := st.SaveSegments(src.ID, segments); err != nil {
		return model.Source{}, err
	}
	return src, nil
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}
