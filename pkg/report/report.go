// Package report prints allocation results for people to read.
package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jakechorley/workshop-groups/internal/config"
	"github.com/jakechorley/workshop-groups/pkg/core/allocator"
	"github.com/jakechorley/workshop-groups/pkg/core/model"
	"github.com/jakechorley/workshop-groups/pkg/core/registry"
)

const (
	unassignedHeading = "Unassigned"
	otherHeading      = "Other"
	noGroup           = "None"
)

// WriteByGroup lists the members of every group, then anyone left without a group
func WriteByGroup(w io.Writer, groupNames []string, reg *registry.Registry) error {
	var b strings.Builder

	for i, name := range groupNames {
		members := reg.Filter(registry.InGroup(i))
		members.SortByCohortThenName()
		writeSection(&b, name, members, func(p *model.Participant) string {
			return fmt.Sprintf("%s (%s)", p.FullName(), Ordinal(p.Cohort))
		})
	}

	unassigned := reg.Filter(registry.Unassigned())
	if unassigned.Size() > 0 {
		unassigned.SortByCohortThenName()
		writeSection(&b, unassignedHeading, unassigned, func(p *model.Participant) string {
			return fmt.Sprintf("%s (%s)", p.FullName(), Ordinal(p.Cohort))
		})
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteByCohort lists every participant under their cohort with the group they were given.
// Participants whose grade matches no cohort are listed last.
func WriteByCohort(w io.Writer, groupNames []string, reg *registry.Registry, cohorts []config.Cohort) error {
	var b strings.Builder

	groupLabel := func(p *model.Participant) string {
		group, ok := p.Group()
		if !ok || group >= len(groupNames) {
			return p.FullName() + ": " + noGroup
		}
		return p.FullName() + ": " + groupNames[group]
	}

	known := make(map[int]bool, len(cohorts))
	for _, cohort := range cohorts {
		known[cohort.Grade] = true
		members := reg.Filter(registry.InCohort(cohort.Grade))
		members.SortByCohortThenName()
		writeSection(&b, cohort.Label, members, groupLabel)
	}

	others := reg.Filter(func(p *model.Participant) bool { return !known[p.Cohort] })
	if others.Size() > 0 {
		others.SortByCohortThenName()
		writeSection(&b, otherHeading, others, groupLabel)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSummary prints the final occupancy of each group against capacity
func WriteSummary(w io.Writer, groupNames []string, occupancy allocator.Occupancy, capacity int) error {
	width := 0
	for _, name := range groupNames {
		width = max(width, len(name))
	}

	var b strings.Builder
	for i, name := range groupNames {
		count := 0
		if i < len(occupancy) {
			count = occupancy[i]
		}
		fmt.Fprintf(&b, "%-*s  %d/%d\n", width, name, count, capacity)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSection(b *strings.Builder, title string, members *registry.Registry, line func(*model.Participant) string) {
	// Casers keep state, so one per section
	b.WriteString(cases.Upper(language.English).String(title))
	b.WriteString("\n")
	for _, p := range members.All() {
		b.WriteString(line(p))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// Ordinal formats a grade as 9th, 21st, 112th
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
