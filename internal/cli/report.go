package cli

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vk/pbxproj/internal/app"
)

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeReports(w io.Writer, reports []app.IdentifierReport) {
	for _, r := range reports {
		if r.Clean() {
			fmt.Fprintf(w, "%s: %d objects, no problems\n", r.Path, r.Objects)
			continue
		}
		fmt.Fprintf(w, "%s: %d objects\n", r.Path, r.Objects)
		for _, e := range r.Temporary {
			fmt.Fprintf(w, "  temporary   %s %s %q\n", e.ID, e.Kind, e.Name)
		}
		for _, e := range r.Unreachable {
			fmt.Fprintf(w, "  unreachable %s %s %q\n", e.ID, e.Kind, e.Name)
		}
		for _, d := range r.Dangling {
			fmt.Fprintf(w, "  dangling    %s.%s -> %s\n", d.From.ID, d.Field, d.ID)
		}
	}
}
