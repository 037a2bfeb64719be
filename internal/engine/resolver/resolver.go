// Package resolver picks the project to debug out of a parsed solution.
package resolver

import (
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver selects startup projects with a swappable classifier.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	classify domain.Classifier
}

// New creates a Resolver. A nil classifier selects the default name heuristic.
func New(classify domain.Classifier) *Resolver {
	if classify == nil {
		classify = domain.DefaultClassifier()
	}
	return &Resolver{classify: classify}
}

// WithClassifier returns a copy of r that classifies projects with classify.
func (r *Resolver) WithClassifier(classify domain.Classifier) *Resolver {
	return New(classify)
}

// Kind classifies p.
func (r *Resolver) Kind(p domain.ProjectDescriptor) domain.ProjectKind {
	return r.classify(p.Name, p.KindTag)
}

// ResolveStartup picks the startup project of sol. The first rule that yields a project wins:
//
//  1. the startup project the solution declares, matched by name or identity;
//  2. the first executable project in declaration order;
//  3. the first project in declaration order.
//
// An empty solution yields nil with RuleNone. That is not an error.
func (r *Resolver) ResolveStartup(sol *domain.Solution) (*domain.ProjectDescriptor, domain.Resolution) {
	if sol == nil || len(sol.Projects) == 0 {
		return nil, domain.Resolution{Rule: domain.RuleNone}
	}

	if sol.StartupProject != "" {
		if p, ok := lookup(sol, sol.StartupProject); ok {
			return &p, domain.Resolution{Rule: domain.RuleExplicit, Candidates: []string{p.Name}}
		}
	}

	var executables []domain.ProjectDescriptor
	for _, p := range sol.Projects {
		if r.Kind(p) == domain.KindExecutable {
			executables = append(executables, p)
		}
	}
	if len(executables) > 0 {
		p := executables[0]
		return &p, domain.Resolution{
			Rule:       domain.RuleFirstExecutable,
			Ambiguous:  len(executables) > 1,
			Candidates: names(executables),
		}
	}

	// Solution folders have no output; skip them unless nothing else is declared.
	candidates := r.withoutFolders(sol.Projects)
	if len(candidates) == 0 {
		candidates = sol.Projects
	}
	p := candidates[0]
	return &p, domain.Resolution{
		Rule:       domain.RuleFirstDeclared,
		Ambiguous:  len(candidates) > 1,
		Candidates: names(candidates),
	}
}

// ResolveOverride returns the project named by the user, matched by name or identity.
// A name that matches nothing is an error rather than a fallback.
func (r *Resolver) ResolveOverride(
	sol *domain.Solution,
	nameOrIdentity string,
) (*domain.ProjectDescriptor, domain.Resolution, error) {
	if sol != nil {
		if p, ok := lookup(sol, nameOrIdentity); ok {
			return &p, domain.Resolution{Rule: domain.RuleOverride, Candidates: []string{p.Name}}, nil
		}
	}
	return nil, domain.Resolution{Rule: domain.RuleNone},
		zerr.With(zerr.Wrap(domain.ErrProjectNotFound, "no project matches the requested startup project"),
			"project", nameOrIdentity)
}

// GetByName returns the first project named name.
func (r *Resolver) GetByName(sol *domain.Solution, name string) (*domain.ProjectDescriptor, bool) {
	p, ok := sol.ProjectByName(name)
	if !ok {
		return nil, false
	}
	return &p, true
}

// GetByIdentity returns the project whose identity is exactly id.
func (r *Resolver) GetByIdentity(sol *domain.Solution, id string) (*domain.ProjectDescriptor, bool) {
	p, ok := sol.ProjectByIdentity(id)
	if !ok {
		return nil, false
	}
	return &p, true
}

// NonTest returns the projects not classified as tests, in declaration order.
func (r *Resolver) NonTest(sol *domain.Solution) []domain.ProjectDescriptor {
	var out []domain.ProjectDescriptor
	for _, p := range sol.Projects {
		if r.Kind(p) != domain.KindTest {
			out = append(out, p)
		}
	}
	return out
}

func (r *Resolver) withoutFolders(projects []domain.ProjectDescriptor) []domain.ProjectDescriptor {
	var out []domain.ProjectDescriptor
	for _, p := range projects {
		if r.Kind(p) != domain.KindFolder {
			out = append(out, p)
		}
	}
	return out
}

// lookup matches a name first, then an identity ignoring braces and case.
func lookup(sol *domain.Solution, key string) (domain.ProjectDescriptor, bool) {
	if p, ok := sol.ProjectByName(key); ok {
		return p, true
	}
	for _, p := range sol.Projects {
		if domain.SameIdentity(p.Identity, key) {
			return p, true
		}
	}
	return domain.ProjectDescriptor{}, false
}

func names(projects []domain.ProjectDescriptor) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Name
	}
	return out
}
