package solution

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// ParseSlnx parses the XML solution format. Folders are flattened; projects keep document order.
func ParseSlnx(text []byte, baseDir string) (*domain.Solution, []domain.ParseWarning, error) {
	sol := &domain.Solution{
		BaseDir: baseDir,
		Format:  domain.FormatSlnx,
	}
	var warnings []domain.ParseWarning
	configs := newOrderedSet()
	identities := newOrderedSet()

	dec := xml.NewDecoder(bytes.NewReader(text))
	sawRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line, _ := dec.InputPos()
			return nil, nil, zerr.With(zerr.Wrap(domain.ErrSolutionParse, err.Error()), "line", line)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		line, _ := dec.InputPos()

		switch start.Name.Local {
		case "Solution":
			sawRoot = true
		case "Project":
			p, reason := slnxProject(start)
			if reason != "" {
				warnings = append(warnings, domain.ParseWarning{Line: line, Text: elementText(start), Reason: reason})
				continue
			}
			if !identities.add(identityKey(p.Identity)) {
				warnings = append(warnings, domain.ParseWarning{Line: line, Text: elementText(start), Reason: duplicateReason(p.Identity)})
				continue
			}
			sol.Projects = append(sol.Projects, p)
		case "BuildType":
			if name := attr(start, "Name"); name != "" {
				configs.add(name)
			}
		case "StartupProject":
			if v := attr(start, "Path"); v != "" {
				sol.StartupProject = projectName(v)
			} else if v := attr(start, "Name"); v != "" {
				sol.StartupProject = v
			}
		}
	}

	if !sawRoot {
		return nil, nil, zerr.Wrap(domain.ErrSolutionParse, "missing <Solution> element")
	}

	sol.Configurations = configs.items()
	if len(sol.Configurations) == 0 {
		sol.Configurations = append([]string(nil), defaultConfigurations...)
	}
	return sol, warnings, nil
}

func slnxProject(el xml.StartElement) (domain.ProjectDescriptor, string) {
	path := strings.TrimSpace(attr(el, "Path"))
	if path == "" {
		return domain.ProjectDescriptor{}, "project has no Path attribute"
	}

	kindTag := domain.CSharpProjectKind
	if t := domain.NormalizeIdentity(attr(el, "Type")); t != "" {
		kindTag = t
	}

	identity := domain.NormalizeIdentity(attr(el, "Id"))
	if identity == "" {
		identity = pathIdentity(path)
	}

	name := attr(el, "DisplayName")
	if name == "" {
		name = projectName(path)
	}

	return domain.ProjectDescriptor{
		Name:         name,
		RelativePath: normalizePath(path),
		Identity:     identity,
		KindTag:      kindTag,
	}, ""
}

// pathIdentity derives a stable GUID-shaped identity from a project path.
func pathIdentity(path string) string {
	h := xxhash.Sum64String(strings.ReplaceAll(path, `\`, "/"))
	return strings.ToUpper(fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		uint32(h>>32),
		uint16(h>>16),
		uint16(h),
		uint16(h>>48),
		h&0xFFFFFFFFFFFF,
	))
}

// projectName returns the file name of a project path without its extension.
func projectName(path string) string {
	base := filepath.Base(normalizePath(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func elementText(el xml.StartElement) string {
	var b strings.Builder
	b.WriteString("<" + el.Name.Local)
	for _, a := range el.Attr {
		fmt.Fprintf(&b, " %s=%q", a.Name.Local, a.Value)
	}
	b.WriteString(">")
	return b.String()
}
