package render

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// TOCEntry is one navigation target in the table of contents. Chapter indexes
// into the engine's extracted chapters; Level is the nesting depth.
type TOCEntry struct {
	Title   string
	Chapter int
	Level   int
}

// NCX XML structure, the EPUB 2 navigation document.
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	Label    navLabel   `xml:"navLabel"`
	Content  navContent `xml:"content"`
	Children []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// chapterTitlesByHref parses the NCX and maps content hrefs (full, fragment
// stripped, and basename forms) to navigation labels. Returns an empty map
// when the book has no usable NCX; callers fall back to numbered sections.
func chapterTitlesByHref(filename string, book *epub.Rootfile) map[string]string {
	result := make(map[string]string)

	data, err := readNCX(filename, book)
	if err != nil {
		return result
	}
	var doc ncx
	if err := xml.Unmarshal(data, &doc); err != nil {
		return result
	}

	var collect func(points []navPoint)
	collect = func(points []navPoint) {
		for _, np := range points {
			title := strings.TrimSpace(np.Label.Text)
			for _, key := range hrefKeys(np.Content.Src) {
				if _, exists := result[key]; !exists {
					result[key] = title
				}
			}
			collect(np.Children)
		}
	}
	collect(doc.NavMap.NavPoints)
	return result
}

// buildTOC flattens the NCX nav tree into entries pointing at extracted
// chapter indexes. Nav points whose target is not a readable chapter are
// dropped.
func buildTOC(filename string, book *epub.Rootfile, hrefToChapter map[string]int) []TOCEntry {
	data, err := readNCX(filename, book)
	if err != nil {
		return nil
	}
	var doc ncx
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil
	}

	var entries []TOCEntry
	var flatten func(points []navPoint, level int)
	flatten = func(points []navPoint, level int) {
		for _, np := range points {
			if ch, ok := resolveChapter(hrefToChapter, np.Content.Src); ok {
				entries = append(entries, TOCEntry{
					Title:   strings.TrimSpace(np.Label.Text),
					Chapter: ch,
					Level:   level,
				})
			}
			flatten(np.Children, level+1)
		}
	}
	flatten(doc.NavMap.NavPoints, 0)
	return entries
}

func resolveChapter(hrefToChapter map[string]int, src string) (int, bool) {
	for _, key := range hrefKeys(src) {
		if ch, ok := hrefToChapter[key]; ok {
			return ch, true
		}
	}
	return 0, false
}

// hrefKeys returns the lookup forms of an href: as written, fragment
// stripped, and basename. Identifier schemes inside EPUBs are inconsistent
// about directory prefixes and #anchors.
func hrefKeys(href string) []string {
	keys := []string{href}
	if stripped := baseHref(href); stripped != href {
		keys = append(keys, stripped)
	}
	b := path.Base(baseHref(href))
	if b != href {
		keys = append(keys, b)
	}
	return keys
}

// baseHref strips a #fragment suffix.
func baseHref(href string) string {
	if i := strings.Index(href, "#"); i != -1 {
		return href[:i]
	}
	return href
}

// readNCX locates and reads the NCX document: by manifest media type first,
// then by extension scan of the archive.
func readNCX(filename string, book *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ncxPath string
	for _, item := range book.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			ncxPath = item.HREF
			break
		}
	}
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}
	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX document in %s", filename)
	}

	for _, f := range zr.File {
		if f.Name == ncxPath || strings.HasSuffix(f.Name, "/"+ncxPath) || path.Base(f.Name) == path.Base(ncxPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("NCX document %s missing from archive", ncxPath)
}
