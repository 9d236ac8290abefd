// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// pageTokens is the number of tokens each page contributes to a packed string.
const pageTokens = 4

var (
	// ErrPagesMissing means a chapter row arrived without its packed pages column.
	ErrPagesMissing = errors.New("manga: chapter has no packed pages")

	// ErrNoPages means the packed pages column held no decodable page.
	ErrNoPages = errors.New("manga: chapter has no decodable pages")
)

// PackedChapter is one row of the grouped chapter query: the chapter's own
// columns plus every page folded into AllPages.
//
// AllPages holds repeated groups of "page_id url page_number chapter_id"
// separated by single spaces, in page order.
type PackedChapter struct {
	ID             string
	Name           string
	Number         string
	UpdatedAt      *time.Time
	MangaID        string
	LastWatchTime  int64
	SequenceNumber int32
	AllPages       *string
}

// DecodeChapter turns a packed row into a [Chapter].
//
// A missing AllPages column, or one with no decodable page, fails the chapter.
func DecodeChapter(row PackedChapter) (Chapter, error) {
	if row.AllPages == nil {
		return Chapter{}, fmt.Errorf("%w: chapter %s", ErrPagesMissing, row.ID)
	}

	pages := DecodePages(*row.AllPages)
	if len(pages) == 0 {
		return Chapter{}, fmt.Errorf("%w: chapter %s", ErrNoPages, row.ID)
	}

	return Chapter{
		ID:             row.ID,
		Name:           row.Name,
		Number:         row.Number,
		MangaID:        row.MangaID,
		LastWatchTime:  row.LastWatchTime,
		SequenceNumber: row.SequenceNumber,
		UpdatedAt:      row.UpdatedAt,
		Pages:          pages,
	}, nil
}

// DecodePages splits a packed pages string into pages, keeping input order.
//
// Decoding is best effort:
//   - a trailing group with fewer than four tokens is ignored;
//   - a group whose id or page number is not a number is skipped, and the
//     remaining groups still decode.
//
// No sorting happens here; the producing query orders pages by page number.
func DecodePages(packed string) []Page {
	tokens := strings.Fields(packed)

	pages := make([]Page, 0, len(tokens)/pageTokens)
	for start := 0; start+pageTokens <= len(tokens); start += pageTokens {
		page, ok := decodePage(tokens[start : start+pageTokens])
		if !ok {
			continue
		}
		pages = append(pages, page)
	}

	return pages
}

// decodePage parses one "page_id url page_number chapter_id" group.
func decodePage(group []string) (Page, bool) {
	id, err := strconv.ParseInt(group[0], 10, 64)
	if err != nil {
		return Page{}, false
	}

	number, err := strconv.ParseUint(group[2], 10, 32)
	if err != nil {
		return Page{}, false
	}

	return Page{
		ID:         id,
		URL:        group[1],
		PageNumber: uint32(number),
		ChapterID:  group[3],
	}, true
}

// EncodePages is the inverse of [DecodePages]. URLs must not contain whitespace.
func EncodePages(pages []Page) string {
	var builder strings.Builder
	for i, page := range pages {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(strconv.FormatInt(page.ID, 10))
		builder.WriteByte(' ')
		builder.WriteString(page.URL)
		builder.WriteByte(' ')
		builder.WriteString(strconv.FormatUint(uint64(page.PageNumber), 10))
		builder.WriteByte(' ')
		builder.WriteString(page.ChapterID)
	}
	return builder.String()
}
