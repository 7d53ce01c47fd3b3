// Package tsfile implements reading and writing of Qt Linguist TS files,
// the XML translation format produced by lupdate and Transifex.
package tsfile

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
)

// TypeUnfinished marks a translation that is not ready for shipment.
const TypeUnfinished = "unfinished"

// TypeVanished marks a translation whose source string no longer exists.
const TypeVanished = "vanished"

// Document is a parsed TS file.
type Document struct {
	XMLName        xml.Name   `xml:"TS"`
	Version        string     `xml:"version,attr,omitempty"`
	Language       string     `xml:"language,attr,omitempty"`
	SourceLanguage string     `xml:"sourcelanguage,attr,omitempty"`
	Contexts       []*Context `xml:"context"`
}

// Context groups the messages of one translation context (usually a class).
type Context struct {
	Name     string     `xml:"name"`
	Messages []*Message `xml:"message"`
}

// Message is a single source string with its translation. The less common
// children (oldsource, developer and translator comments, userdata) are
// carried through untouched: postprocessing only ever rewrites the
// translation and drops locations, never the rest of the message.
type Message struct {
	ID                string      `xml:"id,attr,omitempty"`
	Numerus           string      `xml:"numerus,attr,omitempty"`
	Locations         []Location  `xml:"location"`
	Source            string      `xml:"source"`
	OldSource         string      `xml:"oldsource,omitempty"`
	Comment           string      `xml:"comment,omitempty"`
	OldComment        string      `xml:"oldcomment,omitempty"`
	ExtraComment      string      `xml:"extracomment,omitempty"`
	TranslatorComment string      `xml:"translatorcomment,omitempty"`
	Translation       Translation `xml:"translation"`
	UserData          string      `xml:"userdata,omitempty"`
}

// Location is a source-code reference attached to a message. Stripped on
// output: it churns on every upstream change and makes diffs noisy.
type Location struct {
	Filename string `xml:"filename,attr,omitempty"`
	Line     string `xml:"line,attr,omitempty"`
}

// Translation holds either a plain translated string or, for numerus
// messages, one numerusform per grammatical-number form of the language.
type Translation struct {
	Type         string   `xml:"type,attr,omitempty"`
	Text         string   `xml:",chardata"`
	NumerusForms []string `xml:"numerusform"`
}

// IsNumerus reports whether the message is plural-aware.
func (m *Message) IsNumerus() bool {
	return m.Numerus == "yes"
}

// Variants returns the translated strings of the message: the numerusforms
// for plural-aware messages, otherwise the single translation text.
func (m *Message) Variants() []string {
	if m.IsNumerus() {
		return m.Translation.NumerusForms
	}
	return []string{m.Translation.Text}
}

// Unfinished reports whether the translation is marked unfinished.
func (t *Translation) Unfinished() bool {
	return t.Type == TypeUnfinished
}

// Clear resets the translation to an empty unfinished state. The message
// stays structurally present for future re-translation but is excluded
// from shipped output by PruneUnfinished.
func (t *Translation) Clear() {
	t.Text = ""
	t.NumerusForms = nil
	t.Type = TypeUnfinished
}

// controlChars matches control bytes that are invalid in XML 1.0:
// everything below 0x20 except \n and \r.
var controlChars = regexp.MustCompile(`[\x00-\x09\x0b\x0c\x0e-\x1f]`)

// Sanitize removes invalid control characters from raw file data. Must run
// over the whole file before parsing, otherwise the XML decoder fails.
func Sanitize(data []byte) []byte {
	return controlChars.ReplaceAll(data, nil)
}

// Parse reads and sanitizes a TS document.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = Sanitize(data)

	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing TS document: %w", err)
	}

	// chardata on numerus translations is just whitespace between the
	// numerusform elements; drop it so it does not leak into output.
	for _, ctx := range doc.Contexts {
		for _, m := range ctx.Messages {
			if m.IsNumerus() {
				m.Translation.Text = ""
			}
		}
	}
	return &doc, nil
}

// ParseFile reads a TS document from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// StripLocations removes all location elements from the document.
func (d *Document) StripLocations() {
	for _, ctx := range d.Contexts {
		for _, m := range ctx.Messages {
			m.Locations = nil
		}
	}
}

// PruneUnfinished removes messages whose translation is unfinished and
// returns how many were dropped.
func (d *Document) PruneUnfinished() int {
	dropped := 0
	for _, ctx := range d.Contexts {
		kept := ctx.Messages[:0]
		for _, m := range ctx.Messages {
			if m.Translation.Unfinished() {
				dropped++
				continue
			}
			kept = append(kept, m)
		}
		ctx.Messages = kept
	}
	return dropped
}

// MessageCount returns the number of messages across all contexts.
func (d *Document) MessageCount() int {
	n := 0
	for _, ctx := range d.Contexts {
		n += len(ctx.Messages)
	}
	return n
}

// Stats returns translation statistics for status output.
func (d *Document) Stats() (total, finished, unfinished, vanished int) {
	for _, ctx := range d.Contexts {
		for _, m := range ctx.Messages {
			total++
			switch m.Translation.Type {
			case TypeUnfinished:
				unfinished++
			case TypeVanished:
				vanished++
			default:
				finished++
			}
		}
	}
	return
}

// header precedes the marshaled tree, matching lupdate output.
const header = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<!DOCTYPE TS>\n"

// Write serializes the document.
func (d *Document) Write(w io.Writer) error {
	out, err := xml.MarshalIndent(d, "", "    ")
	if err != nil {
		return fmt.Errorf("serializing TS document: %w", err)
	}

	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// WriteFile serializes the document to disk.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return d.Write(f)
}
