package containment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"roomscan/internal/extract"
	"roomscan/internal/model"
)

// ErrNoContainersFound is returned when every category in the fallback
// list yielded zero container elements. A model with no rooms at all
// almost always means a misconfigured category filter, so this is fatal
// rather than an empty result.
var ErrNoContainersFound = errors.New("no container elements found in any fallback category")

// DefaultContainerCategories is the fixed fallback order tried when the
// caller does not force a container category
var DefaultContainerCategories = []string{"Rooms", "Spaces", "Areas"}

// ElementSource supplies the elements of one category, already resolved
// by the upstream retrieval collaborator
type ElementSource interface {
	ElementsByCategory(ctx context.Context, category string) ([]*model.Element, error)
}

// Analyzer runs the full containment scan of a candidate set against a
// container set
type Analyzer struct {
	// Epsilon relaxes all boundary comparisons symmetrically.
	// Zero keeps the exact inclusive comparison.
	Epsilon float64

	// Workers bounds the number of containers classified concurrently.
	// Values below 2 keep the scan sequential.
	Workers int

	// UseIndex prunes each container scan through an R-tree over
	// candidate centers instead of the plain linear pass. Results are
	// identical either way; worth it only for large candidate sets.
	UseIndex bool
}

// Result holds the outcome of one analysis pass
type Result struct {
	ContainerCategory string
	ContainerCount    int
	CandidateCount    int
	Mappings          []model.ContainmentMapping
	Diagnostics       []model.Diagnostic
}

// boxedElement pairs an element with its extracted, valid bounding box
type boxedElement struct {
	el  *model.Element
	box model.BoundingBox
}

// AnalyzeModel fetches containers with category fallback, fetches the
// candidate set and classifies every pair. Upstream errors propagate
// unchanged; retry policy belongs to the retrieval collaborator.
func (a *Analyzer) AnalyzeModel(ctx context.Context, src ElementSource, containerCategories []string, candidateCategory string) (*Result, error) {
	if len(containerCategories) == 0 {
		containerCategories = DefaultContainerCategories
	}

	// First non-empty category wins; earlier empty categories contribute
	// nothing and are never merged in.
	var containers []*model.Element
	var usedCategory string
	for _, category := range containerCategories {
		elements, err := src.ElementsByCategory(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("fetching containers for category %q: %w", category, err)
		}
		if len(elements) > 0 {
			containers = elements
			usedCategory = category
			break
		}
	}
	if len(containers) == 0 {
		return nil, fmt.Errorf("tried categories %v: %w", containerCategories, ErrNoContainersFound)
	}

	candidates, err := src.ElementsByCategory(ctx, candidateCategory)
	if err != nil {
		return nil, fmt.Errorf("fetching candidates for category %q: %w", candidateCategory, err)
	}

	result, err := a.Analyze(containers, candidates)
	if err != nil {
		return nil, err
	}
	result.ContainerCategory = usedCategory
	return result, nil
}

// Analyze classifies every candidate against every container, both sets
// already resolved. Elements without a valid bounding box are excluded
// with a diagnostic, not an error. Mappings are grouped by container in
// supplied order and, within a container, in supplied candidate order.
func (a *Analyzer) Analyze(containers, candidates []*model.Element) (*Result, error) {
	if len(containers) == 0 {
		return nil, ErrNoContainersFound
	}

	result := &Result{
		ContainerCount: len(containers),
		CandidateCount: len(candidates),
	}

	boxedContainers := a.extractBoxes(containers, "container", result)
	boxedCandidates := a.extractBoxes(candidates, "candidate", result)

	result.Mappings = a.classifyAll(boxedContainers, boxedCandidates)
	return result, nil
}

// extractBoxes extracts a box per element, dropping invalid ones with a
// diagnostic and preserving the supplied order
func (a *Analyzer) extractBoxes(elements []*model.Element, role string, result *Result) []boxedElement {
	boxed := make([]boxedElement, 0, len(elements))
	for _, el := range elements {
		box, diags := extract.FromElement(el)
		result.Diagnostics = append(result.Diagnostics, diags...)
		if !box.IsValid() {
			result.Diagnostics = append(result.Diagnostics, model.Diagnostic{
				ElementID: el.ID,
				Message:   fmt.Sprintf("%s %q has no valid bounding box, excluded from analysis", role, el.Name),
			})
			continue
		}
		boxed = append(boxed, boxedElement{el: el, box: box})
	}
	return boxed
}

// classifyAll runs the cross product. Each container's scan is independent,
// so the per-container work can fan out over a bounded set of goroutines;
// results land in a per-container slot and are flattened in order, keeping
// the output identical to the sequential pass.
func (a *Analyzer) classifyAll(containers, candidates []boxedElement) []model.ContainmentMapping {
	perContainer := make([][]model.ContainmentMapping, len(containers))

	var index *centerIndex
	if a.UseIndex {
		index = newCenterIndex(candidates)
	}

	if a.Workers > 1 {
		sem := make(chan struct{}, a.Workers)
		var wg sync.WaitGroup
		for i := range containers {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				perContainer[i] = a.classifyContainer(containers[i], candidates, index)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range containers {
			perContainer[i] = a.classifyContainer(containers[i], candidates, index)
		}
	}

	var mappings []model.ContainmentMapping
	for _, batch := range perContainer {
		mappings = append(mappings, batch...)
	}
	return mappings
}

// classifyContainer classifies all candidates against one container
func (a *Analyzer) classifyContainer(container boxedElement, candidates []boxedElement, index *centerIndex) []model.ContainmentMapping {
	var mappings []model.ContainmentMapping

	appendVerdict := func(candidate boxedElement) {
		verdict, ok := Classify(container.box, candidate.box, a.Epsilon)
		if !ok {
			return
		}
		mappings = append(mappings, model.ContainmentMapping{
			ContainerID:       container.el.ID,
			ContainerName:     container.el.Name,
			CandidateID:       candidate.el.ID,
			CandidateName:     candidate.el.Name,
			CandidateCategory: candidate.el.Category,
			ContainmentType:   verdict,
		})
	}

	if index != nil {
		for _, ord := range index.candidatesWithin(container.box, a.Epsilon) {
			appendVerdict(candidates[ord])
		}
		return mappings
	}

	for _, candidate := range candidates {
		appendVerdict(candidate)
	}
	return mappings
}
