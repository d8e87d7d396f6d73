package trello

import (
	"context"

	"github.com/goblinsan/sprint-board-helper/pkg/engine"
)

// BoardSession binds a Client to one board so it can serve as an
// engine.Board.
type BoardSession struct {
	client  *Client
	boardID string
}

var _ engine.Board = (*BoardSession)(nil)

// Board returns a session scoped to the given board ID.
func (c *Client) Board(boardID string) *BoardSession {
	return &BoardSession{client: c, boardID: boardID}
}

func (b *BoardSession) Lists(ctx context.Context) ([]engine.List, error) {
	lists, err := b.client.BoardLists(ctx, b.boardID)
	if err != nil {
		return nil, err
	}
	out := make([]engine.List, 0, len(lists))
	for _, l := range lists {
		out = append(out, engine.List{ID: l.ID, Name: l.Name})
	}
	return out, nil
}

func (b *BoardSession) CreateList(ctx context.Context, name string) (engine.List, error) {
	list, err := b.client.CreateList(ctx, b.boardID, name)
	if err != nil {
		return engine.List{}, err
	}
	return engine.List{ID: list.ID, Name: list.Name}, nil
}

func (b *BoardSession) EnsureLabel(ctx context.Context, name, color string) (string, error) {
	return b.client.GetOrCreateLabel(ctx, b.boardID, name, color)
}

func (b *BoardSession) CreateCard(ctx context.Context, listID, name, desc string, labelIDs []string) (engine.Card, error) {
	card, err := b.client.CreateCard(ctx, listID, name, desc, labelIDs)
	if err != nil {
		return engine.Card{}, err
	}
	return engine.Card{ID: card.ID, Name: card.Name, URL: card.URL}, nil
}

func (b *BoardSession) AddChecklist(ctx context.Context, cardID, name string, items []string) error {
	return b.client.CreateChecklist(ctx, cardID, name, items)
}
