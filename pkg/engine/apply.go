// Package engine applies rendered card requests to a kanban board through
// the Board interface, so the Trello and GitHub backends stay
// interchangeable.
package engine

import (
	"context"
	"fmt"

	"github.com/goblinsan/sprint-board-helper/pkg/render"
	"github.com/goblinsan/sprint-board-helper/pkg/types"
)

// List is a column on the board.
type List struct {
	ID   string
	Name string
}

// Card is a created card.
type Card struct {
	ID   string
	Name string
	URL  string
}

// Board defines the operations the engine needs from a board backend.
type Board interface {
	Lists(ctx context.Context) ([]List, error)
	CreateList(ctx context.Context, name string) (List, error)
	// EnsureLabel returns the ID of the named label, creating it with the
	// given color if it does not exist yet.
	EnsureLabel(ctx context.Context, name, color string) (string, error)
	CreateCard(ctx context.Context, listID, name, desc string, labelIDs []string) (Card, error)
	AddChecklist(ctx context.Context, cardID, name string, items []string) error
}

// Options configures the behavior of Apply.
type Options struct {
	// ListName is the target list; when missing the engine falls back to
	// the first list on the board, or creates the list on an empty board.
	ListName string
	DryRun   bool
	Colors   render.Palette
}

// Report summarizes the results of an Apply execution.
type Report struct {
	CardsCreated      int      `json:"cards_created"`
	LabelsEnsured     int      `json:"labels_ensured"`
	ChecklistsCreated int      `json:"checklists_created"`
	CardURLs          []string `json:"card_urls,omitempty"`
}

func (r *Report) String() string {
	return fmt.Sprintf("Summary: %d cards created, %d labels ensured, %d checklists created",
		r.CardsCreated, r.LabelsEnsured, r.ChecklistsCreated)
}

// Apply renders the sprint and creates its cards on the board: the target
// list is resolved first, then every label is ensured once, then cards are
// created in render order with their checklists.
func Apply(ctx context.Context, board Board, sprint *types.Sprint, opts Options) (*Report, error) {
	report := &Report{}
	cards := render.Render(sprint)

	if opts.DryRun {
		fmt.Printf("[dry-run] Sprint: %s\n", sprint.Title)
		fmt.Printf("[dry-run] Target list: %s\n", opts.ListName)
		for _, card := range cards {
			fmt.Printf("[dry-run] Would create card: %s\n", card.Title)
			for _, label := range card.Labels {
				fmt.Printf("[dry-run]   Label: %s\n", label)
			}
			if card.Checklist != nil {
				fmt.Printf("[dry-run]   Checklist: %s (%d items)\n", card.Checklist.Name, len(card.Checklist.Items))
			}
		}
		return report, nil
	}

	list, err := resolveList(ctx, board, opts.ListName)
	if err != nil {
		return nil, err
	}

	labelIDs := make(map[string]string)
	for _, card := range cards {
		for _, label := range card.Labels {
			if _, ok := labelIDs[label]; ok {
				continue
			}
			id, err := board.EnsureLabel(ctx, label, opts.Colors.ColorFor(label))
			if err != nil {
				return nil, fmt.Errorf("failed to ensure label %q: %w", label, err)
			}
			labelIDs[label] = id
			report.LabelsEnsured++
		}
	}

	for _, card := range cards {
		ids := make([]string, 0, len(card.Labels))
		for _, label := range card.Labels {
			if id, ok := labelIDs[label]; ok && id != "" {
				ids = append(ids, id)
			}
		}

		created, err := board.CreateCard(ctx, list.ID, card.Title, card.Description, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to create card %q: %w", card.Title, err)
		}
		report.CardsCreated++
		if created.URL != "" {
			report.CardURLs = append(report.CardURLs, created.URL)
		}
		fmt.Printf("Created card: %s\n", card.Title)

		if card.Checklist != nil {
			if err := board.AddChecklist(ctx, created.ID, card.Checklist.Name, card.Checklist.Items); err != nil {
				return nil, fmt.Errorf("failed to add checklist to %q: %w", card.Title, err)
			}
			report.ChecklistsCreated++
		}
	}

	return report, nil
}

// resolveList finds the named list, falls back to the first list on the
// board, or creates the list when the board has none.
func resolveList(ctx context.Context, board Board, name string) (List, error) {
	lists, err := board.Lists(ctx)
	if err != nil {
		return List{}, fmt.Errorf("failed to fetch board lists: %w", err)
	}

	for _, l := range lists {
		if l.Name == name {
			return l, nil
		}
	}
	if len(lists) > 0 {
		fmt.Printf("List %q not found, using %q instead\n", name, lists[0].Name)
		return lists[0], nil
	}

	fmt.Printf("No lists found on board, creating %q\n", name)
	list, err := board.CreateList(ctx, name)
	if err != nil {
		return List{}, fmt.Errorf("failed to create list %q: %w", name, err)
	}
	return list, nil
}
