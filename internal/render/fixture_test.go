package render

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const contentOPF = `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" xmlns:dc="http://purl.org/dc/elements/1.1/" version="2.0" unique-identifier="uid">
  <metadata>
    <dc:title>A Study in Testing</dc:title>
    <dc:creator>Ada Example</dc:creator>
    <dc:identifier id="uid">test-book-1</dc:identifier>
    <dc:language>en</dc:language>
    <meta name="cover" content="cover-img"/>
  </metadata>
  <manifest>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="ch2.xhtml" media-type="application/xhtml+xml"/>
    <item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>
    <item id="cover-img" href="cover.png" media-type="image/png"/>
  </manifest>
  <spine toc="ncx">
    <itemref idref="ch1"/>
    <itemref idref="ch2"/>
  </spine>
</package>`

const tocNCX = `<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <navMap>
    <navPoint id="np1" playOrder="1">
      <navLabel><text>The First Chapter</text></navLabel>
      <content src="ch1.xhtml"/>
      <navPoint id="np1a" playOrder="2">
        <navLabel><text>A Subsection</text></navLabel>
        <content src="ch1.xhtml#sub"/>
      </navPoint>
    </navPoint>
    <navPoint id="np2" playOrder="3">
      <navLabel><text>The Second Chapter</text></navLabel>
      <content src="ch2.xhtml"/>
    </navPoint>
  </navMap>
</ncx>`

// ch1 has 10 words, ch2 has 5.
const ch1XHTML = `<html><body><p>one two three four five</p><p>six seven eight nine ten</p></body></html>`
const ch2XHTML = `<html><body><p>alpha beta gamma delta epsilon</p></body></html>`

// pngBytes is not a decodable image; the cover path only moves bytes.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

// writeTestEPUB assembles a minimal two-chapter EPUB on disk and returns its
// path. The mimetype entry goes first, as the container spec requires.
func writeTestEPUB(t *testing.T) string {
	t.Helper()

	files := []struct {
		name    string
		content []byte
	}{
		{"mimetype", []byte("application/epub+zip")},
		{"META-INF/container.xml", []byte(containerXML)},
		{"OEBPS/content.opf", []byte(contentOPF)},
		{"OEBPS/toc.ncx", []byte(tocNCX)},
		{"OEBPS/ch1.xhtml", []byte(ch1XHTML)},
		{"OEBPS/ch2.xhtml", []byte(ch2XHTML)},
		{"OEBPS/cover.png", pngBytes},
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, f := range files {
		fw, err := zw.Create(f.name)
		if err != nil {
			t.Fatalf("writeTestEPUB: create %s: %v", f.name, err)
		}
		if _, err := io.Copy(fw, bytes.NewReader(f.content)); err != nil {
			t.Fatalf("writeTestEPUB: write %s: %v", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("writeTestEPUB: close: %v", err)
	}

	fp := filepath.Join(t.TempDir(), "test.epub")
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writeTestEPUB: %v", err)
	}
	return fp
}
