// =============================================================================
// Stundennachweis Generator - Invoice Grouper
// =============================================================================
//
// This module partitions the full, ordered set of time entries into invoice
// units. Each unit holds the entries of one (client, project) pair and becomes
// exactly one output document.
//
// GROUPING RULES:
//   - The key is the exact (client, project) string pair. No trimming, no case
//     folding.
//   - Units appear in the order their key is first seen in the input.
//   - Entries keep their original relative order inside a unit.
//   - The period label is computed once from the first input row and shared by
//     every unit.
//
// =============================================================================

package grouper

import (
	"fmt"

	"github.com/ginjaninja78/stundennachweis/internal/fields"
	"github.com/ginjaninja78/stundennachweis/internal/types"
)

// groupKey identifies one invoice unit.
type groupKey struct {
	client  string
	project string
}

// Group partitions entries into invoice units.
//
// PARAMETERS:
//   - entries: All time entries in input order.
//
// RETURNS:
//   - One InvoiceUnit per distinct (client, project) pair, first-seen order.
//   - types.ErrEmptyInput for an empty set, or an *types.InputFormatError when
//     the first row's date or any project identifier is malformed.
func Group(entries []types.TimeEntry) ([]types.InvoiceUnit, error) {
	period, err := fields.PeriodLabel(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to derive period label: %w", err)
	}

	// Group entries by key, remembering first occurrence.
	groups := make(map[groupKey][]types.TimeEntry)
	groupOrder := []groupKey{}

	for _, entry := range entries {
		key := groupKey{client: entry.Client, project: entry.Project}
		if _, exists := groups[key]; !exists {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], entry)
	}

	units := make([]types.InvoiceUnit, 0, len(groupOrder))
	for _, key := range groupOrder {
		members := groups[key]

		reference, name, err := fields.SplitProjectIdentifier(key.project)
		if err != nil {
			return nil, fmt.Errorf("client %q: %w", key.client, withRow(err, members[0].Row))
		}

		units = append(units, types.InvoiceUnit{
			Client:           key.client,
			Project:          key.project,
			ProjectName:      name,
			ProjectReference: reference,
			PeriodLabel:      period,
			Entries:          members,
		})
	}

	return units, nil
}

// withRow attaches a source row to an input format error that has none.
func withRow(err error, row int) error {
	if fe, ok := err.(*types.InputFormatError); ok && fe.Row == 0 {
		fe.Row = row
	}
	return err
}
