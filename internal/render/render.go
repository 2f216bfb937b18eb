// Package render adapts an EPUB container into the paginated reading surface
// the rest of the application consumes: pages of text, opaque fragment
// identifiers addressing spans inside the book, position events, and the
// table of contents.
package render

import (
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// DefaultWordsPerPage is the page size before any font scaling is applied.
const DefaultWordsPerPage = 160

// Chapter is one spine item's extracted text.
type Chapter struct {
	Title string
	Words []string
}

// Page is a fixed-size window of one chapter's words.
type Page struct {
	Chapter int
	Offset  int // word offset of the page's first word within its chapter
	Words   []string
}

// Position describes where the reading surface currently is. Fragments are
// opaque to consumers; PageIndex runs 0..LastPage.
type Position struct {
	StartFragment string
	EndFragment   string
	PageIndex     int
	LastPage      int
	SectionLabel  string
}

// Engine owns one open book: its chapter text, the current pagination, and
// the current page. Navigation notifies registered position listeners, one
// event per settled move, delivered synchronously on the caller's goroutine.
type Engine struct {
	path      string
	chapters  []Chapter
	toc       []TOCEntry
	pages     []Page
	page      int
	pageSize  int
	listeners []func(Position)
}

// Open extracts the book's spine text and builds the initial pagination.
// wordsPerPage <= 0 selects DefaultWordsPerPage.
func Open(filename string, wordsPerPage int) (*Engine, error) {
	if wordsPerPage <= 0 {
		wordsPerPage = DefaultWordsPerPage
	}

	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("open epub: no rootfiles in %s", filename)
	}
	book := rc.Rootfiles[0]

	titles := chapterTitlesByHref(filename, book)
	hrefToChapter := make(map[string]int)
	var chapters []Chapter
	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}
		words := strings.Fields(textFromHTML(string(data)))
		if len(words) == 0 {
			continue
		}
		if href := ref.Item.HREF; href != "" {
			hrefToChapter[href] = len(chapters)
			hrefToChapter[path.Base(href)] = len(chapters)
		}
		chapters = append(chapters, Chapter{
			Title: chapterTitle(titles, ref.Item.HREF, len(chapters)+1),
			Words: words,
		})
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("open epub: no readable text in %s", filename)
	}

	e := &Engine{
		path:     filename,
		chapters: chapters,
		pageSize: wordsPerPage,
	}
	e.toc = buildTOC(filename, book, hrefToChapter)
	e.pages = paginate(chapters, wordsPerPage)
	return e, nil
}

// paginate slices each chapter into pages of at most wordsPerPage words.
// Pages never span chapter boundaries.
func paginate(chapters []Chapter, wordsPerPage int) []Page {
	var pages []Page
	for ci, ch := range chapters {
		for off := 0; off < len(ch.Words); off += wordsPerPage {
			end := off + wordsPerPage
			if end > len(ch.Words) {
				end = len(ch.Words)
			}
			pages = append(pages, Page{Chapter: ci, Offset: off, Words: ch.Words[off:end]})
		}
	}
	return pages
}

// OnPosition registers a listener for position events.
func (e *Engine) OnPosition(fn func(Position)) {
	e.listeners = append(e.listeners, fn)
}

// Emit delivers the current position to all listeners. Called once after
// wiring so consumers see the initial position, and after every move.
func (e *Engine) Emit() {
	pos := e.position(e.page)
	for _, fn := range e.listeners {
		fn(pos)
	}
}

func (e *Engine) position(page int) Position {
	start, end := e.PageRange(page)
	return Position{
		StartFragment: start,
		EndFragment:   end,
		PageIndex:     page,
		LastPage:      len(e.pages) - 1,
		SectionLabel:  e.SectionLabel(page),
	}
}

// CurrentPage returns the current page index.
func (e *Engine) CurrentPage() int { return e.page }

// PageCount returns the number of pages in the current pagination.
func (e *Engine) PageCount() int { return len(e.pages) }

// Next advances one page. Returns false at the end of the book.
func (e *Engine) Next() bool {
	if e.page >= len(e.pages)-1 {
		return false
	}
	e.page++
	e.Emit()
	return true
}

// Prev steps back one page. Returns false at the start of the book.
func (e *Engine) Prev() bool {
	if e.page <= 0 {
		return false
	}
	e.page--
	e.Emit()
	return true
}

// GoToPage jumps to the given page index.
func (e *Engine) GoToPage(i int) error {
	if i < 0 || i >= len(e.pages) {
		return fmt.Errorf("page %d out of range [0,%d]", i, len(e.pages)-1)
	}
	e.page = i
	e.Emit()
	return nil
}

// GoToChapter jumps to the first page of the given chapter.
func (e *Engine) GoToChapter(ch int) error {
	for i, p := range e.pages {
		if p.Chapter == ch && p.Offset == 0 {
			return e.GoToPage(i)
		}
	}
	return fmt.Errorf("chapter %d has no pages", ch)
}

// GoToFragment jumps to the page containing the given fragment identifier.
func (e *Engine) GoToFragment(frag string) error {
	i, err := e.ResolvePage(frag)
	if err != nil {
		return err
	}
	return e.GoToPage(i)
}

// PageText returns the page's words joined for display.
func (e *Engine) PageText(i int) string {
	if i < 0 || i >= len(e.pages) {
		return ""
	}
	return strings.Join(e.pages[i].Words, " ")
}

// PageExcerpt returns up to maxWords of the page's text, for anchor snippets.
func (e *Engine) PageExcerpt(i, maxWords int) string {
	if i < 0 || i >= len(e.pages) {
		return ""
	}
	words := e.pages[i].Words
	if len(words) > maxWords {
		return strings.Join(words[:maxWords], " ") + "..."
	}
	return strings.Join(words, " ")
}

// PageRange returns the fragment identifiers for the page's first and last
// word. Both endpoints are inclusive.
func (e *Engine) PageRange(i int) (start, end string) {
	if i < 0 || i >= len(e.pages) {
		return "", ""
	}
	p := e.pages[i]
	return Fragment(p.Chapter, p.Offset), Fragment(p.Chapter, p.Offset+len(p.Words)-1)
}

// SectionLabel returns the chapter title for the given page.
func (e *Engine) SectionLabel(i int) string {
	if i < 0 || i >= len(e.pages) {
		return ""
	}
	return e.chapters[e.pages[i].Chapter].Title
}

// TOC returns the table of contents.
func (e *Engine) TOC() []TOCEntry { return e.toc }

// Path returns the file the engine was opened from.
func (e *Engine) Path() string { return e.path }

// Repaginate rebuilds pages with a new page size, keeping the reading
// position anchored at the current page's first word. Emits the resulting
// position.
func (e *Engine) Repaginate(wordsPerPage int) {
	if wordsPerPage <= 0 {
		wordsPerPage = DefaultWordsPerPage
	}
	anchor, _ := e.PageRange(e.page)
	e.pageSize = wordsPerPage
	e.pages = paginate(e.chapters, wordsPerPage)
	if i, err := e.ResolvePage(anchor); err == nil {
		e.page = i
	} else if e.page >= len(e.pages) {
		e.page = len(e.pages) - 1
	}
	e.Emit()
}

// Fragment builds the opaque identifier for a word position. Consumers must
// not parse it; only the engine resolves fragments back to pages.
func Fragment(chapter, offset int) string {
	return strconv.Itoa(chapter) + "/" + strconv.Itoa(offset)
}

func parseFragment(frag string) (chapter, offset int, err error) {
	head, tail, ok := strings.Cut(frag, "/")
	if !ok {
		return 0, 0, fmt.Errorf("malformed fragment %q", frag)
	}
	if chapter, err = strconv.Atoi(head); err != nil {
		return 0, 0, fmt.Errorf("malformed fragment %q", frag)
	}
	if offset, err = strconv.Atoi(tail); err != nil {
		return 0, 0, fmt.Errorf("malformed fragment %q", frag)
	}
	return chapter, offset, nil
}

// ResolvePage maps a fragment identifier to the page containing it under the
// current pagination.
func (e *Engine) ResolvePage(frag string) (int, error) {
	ch, off, err := parseFragment(frag)
	if err != nil {
		return 0, err
	}
	for i, p := range e.pages {
		if p.Chapter == ch && off >= p.Offset && off < p.Offset+len(p.Words) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("fragment %q outside book", frag)
}

func chapterTitle(titles map[string]string, href string, n int) string {
	if href != "" {
		if t, ok := titles[href]; ok && t != "" {
			return t
		}
		if t, ok := titles[baseHref(href)]; ok && t != "" {
			return t
		}
	}
	return fmt.Sprintf("Section %d", n)
}
