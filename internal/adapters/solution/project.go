package solution

import (
	"encoding/xml"
	"strings"

	"go.trai.ch/dbridge/internal/core/domain"
)

// projectFile is the subset of an MSBuild project file that dbridge reads.
type projectFile struct {
	Sdk            string          `xml:"Sdk,attr"`
	PropertyGroups []propertyGroup `xml:"PropertyGroup"`
	ItemGroups     []itemGroup     `xml:"ItemGroup"`
}

type propertyGroup struct {
	OutputType       string `xml:"OutputType"`
	AssemblyName     string `xml:"AssemblyName"`
	TargetFramework  string `xml:"TargetFramework"`
	TargetFrameworks string `xml:"TargetFrameworks"`
	IsTestProject    string `xml:"IsTestProject"`
}

type itemGroup struct {
	PackageReferences []packageReference `xml:"PackageReference"`
}

type packageReference struct {
	Include string `xml:"Include,attr"`
}

// ParseProject decodes what a project file declares about itself.
// Later property groups override earlier ones, as MSBuild evaluates them.
func ParseProject(data []byte) (domain.ProjectInfo, error) {
	var pf projectFile
	if err := xml.Unmarshal(data, &pf); err != nil {
		return domain.ProjectInfo{}, err
	}

	info := domain.ProjectInfo{Sdk: pf.Sdk}
	for _, pg := range pf.PropertyGroups {
		if v := strings.TrimSpace(pg.OutputType); v != "" {
			info.OutputType = v
		}
		if v := strings.TrimSpace(pg.AssemblyName); v != "" {
			info.AssemblyName = v
		}
		if v := strings.TrimSpace(pg.TargetFramework); v != "" {
			info.TargetFrameworks = []string{v}
		}
		if v := strings.TrimSpace(pg.TargetFrameworks); v != "" {
			info.TargetFrameworks = splitList(v)
		}
		if v := strings.TrimSpace(pg.IsTestProject); v != "" {
			info.IsTestProject = strings.EqualFold(v, "true")
		}
	}

	for _, ig := range pf.ItemGroups {
		for _, ref := range ig.PackageReferences {
			if name := strings.TrimSpace(ref.Include); name != "" {
				info.PackageReferences = append(info.PackageReferences, name)
			}
		}
	}
	return info, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
