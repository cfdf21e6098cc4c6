package transcript

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const documentPart = "word/document.xml"

var ErrEmptyDocument = errors.New("document has no text")

// wordprocessingml namespace
const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// ReadDocx returns the text of every paragraph in a .docx file joined by
// single spaces. A document without any text returns ErrEmptyDocument.
func ReadDocx(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer archive.Close()

	for _, f := range archive.File {
		if f.Name != documentPart {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return "", err
		}
		defer r.Close()
		paragraphs, err := paragraphs(r)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		text := strings.Join(paragraphs, " ")
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("read %s: %w", path, ErrEmptyDocument)
		}
		return text, nil
	}
	return "", fmt.Errorf("%s has no %s", path, documentPart)
}

func paragraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		out     []string
		current strings.Builder
		inText  bool
		inPara  bool
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = true
			case "tab":
				current.WriteString("\t")
			case "br":
				current.WriteString("\n")
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				if inPara {
					out = append(out, current.String())
				}
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
}

// LoadText resolves a text argument: a .docx or .txt path is read from disk,
// anything else is taken as the text itself.
func LoadText(input string) (string, error) {
	lower := strings.ToLower(input)
	switch {
	case strings.HasSuffix(lower, ".docx"):
		return ReadDocx(input)
	case strings.HasSuffix(lower, ".txt"):
		buf, err := os.ReadFile(input)
		if err != nil {
			return "", err
		}
		return string(buf), nil
	}
	return input, nil
}
