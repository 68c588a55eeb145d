package workspace

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileName is the contents file inside a workspace bundle.
const FileName = "contents.xcworkspacedata"

type xmlItem struct {
	XMLName  xml.Name
	Location string    `xml:"location,attr"`
	Name     string    `xml:"name,attr"`
	Items    []xmlItem `xml:",any"`
}

type xmlWorkspace struct {
	XMLName xml.Name  `xml:"Workspace"`
	Version string    `xml:"version,attr"`
	Items   []xmlItem `xml:",any"`
}

// Decode parses a contents file.
func Decode(r io.Reader) (*Workspace, error) {
	var raw xmlWorkspace
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedWorkspace, err)
	}
	items, err := decodeItems(raw.Items)
	if err != nil {
		return nil, err
	}
	return &Workspace{Version: raw.Version, Items: items}, nil
}

func decodeItems(raw []xmlItem) ([]Item, error) {
	var out []Item
	for _, x := range raw {
		var it Item
		switch x.XMLName.Local {
		case "FileRef":
			it.Kind = FileRef
			if len(x.Items) > 0 {
				return nil, fmt.Errorf("%w: FileRef %q has children", ErrMalformedWorkspace, x.Location)
			}
		case "Group":
			it.Kind = Group
			it.Name = x.Name
			children, err := decodeItems(x.Items)
			if err != nil {
				return nil, err
			}
			it.Items = children
		default:
			return nil, fmt.Errorf("%w: unexpected element <%s>", ErrMalformedWorkspace, x.XMLName.Local)
		}
		loc, err := ParseLocation(x.Location)
		if err != nil {
			return nil, err
		}
		it.Location = loc
		out = append(out, it)
	}
	return out, nil
}

// ReadFile reads a contents file, or the contents file of a workspace
// bundle directory.
func ReadFile(path string) (*Workspace, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = path + string(os.PathSeparator) + FileName
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ws, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ws, nil
}

// Encode writes the contents file in the layout the IDE uses: one attribute
// per line, three-space indentation.
func (w *Workspace) Encode(out io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<Workspace\n   version = \"")
	if err := xml.EscapeText(&buf, []byte(w.Version)); err != nil {
		return err
	}
	buf.WriteString("\">\n")
	if err := encodeItems(&buf, w.Items, 1); err != nil {
		return err
	}
	buf.WriteString("</Workspace>\n")
	_, err := buf.WriteTo(out)
	return err
}

func encodeItems(buf *bytes.Buffer, items []Item, depth int) error {
	pad := strings.Repeat("   ", depth)
	for _, it := range items {
		tag := it.Kind.String()
		buf.WriteString(pad + "<" + tag + "\n")
		buf.WriteString(pad + "   location = \"")
		if err := xml.EscapeText(buf, []byte(it.Location.String())); err != nil {
			return err
		}
		buf.WriteString("\"")
		if it.Kind == Group && it.Name != "" {
			buf.WriteString("\n" + pad + "   name = \"")
			if err := xml.EscapeText(buf, []byte(it.Name)); err != nil {
				return err
			}
			buf.WriteString("\"")
		}
		buf.WriteString(">\n")
		if it.Kind == Group {
			if err := encodeItems(buf, it.Items, depth+1); err != nil {
				return err
			}
		}
		buf.WriteString(pad + "</" + tag + ">\n")
	}
	return nil
}
