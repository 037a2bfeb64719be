package domain

import "strings"

// ProjectInfo is what a project file declares about itself.
type ProjectInfo struct {
	Sdk               string
	OutputType        string
	AssemblyName      string
	TargetFrameworks  []string
	IsTestProject     bool
	PackageReferences []string
}

// testPackages are package references that only test projects carry.
var testPackages = []string{
	"Microsoft.NET.Test.Sdk",
	"xunit",
	"xunit.v3",
	"NUnit",
	"MSTest.TestFramework",
	"MSTest",
}

// executableSdks produce runnable programs without an explicit OutputType.
var executableSdks = []string{
	"Microsoft.NET.Sdk.Web",
	"Microsoft.NET.Sdk.Worker",
	"Microsoft.NET.Sdk.BlazorWebAssembly",
}

// Kind reports the kind declared by the project file and whether the file was conclusive.
func (i ProjectInfo) Kind() (ProjectKind, bool) {
	if i.IsTestProject || i.hasTestPackage() {
		return KindTest, true
	}
	switch strings.ToLower(i.OutputType) {
	case "exe", "winexe":
		return KindExecutable, true
	case "library":
		return KindLibrary, true
	}
	for _, sdk := range executableSdks {
		if strings.EqualFold(i.Sdk, sdk) {
			return KindExecutable, true
		}
	}
	return KindExecutable, false
}

func (i ProjectInfo) hasTestPackage() bool {
	for _, ref := range i.PackageReferences {
		for _, pkg := range testPackages {
			if strings.EqualFold(ref, pkg) {
				return true
			}
		}
	}
	return false
}
