package github

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/shurcooL/githubv4"

	"github.com/goblinsan/sprint-board-helper/pkg/engine"
)

// Board is an engine.Board backed by a repository and a Projects V2 board.
// The project's Status single-select options play the role of lists.
type Board struct {
	client        *Client
	owner         string
	repo          string
	projectID     githubv4.ID
	statusFieldID githubv4.ID
	statusOptions []engine.List
}

var _ engine.Board = (*Board)(nil)

// NewBoard resolves the project and its Status field up front so later
// calls only create issues and project items.
func NewBoard(ctx context.Context, client *Client, owner, repo, projectTitle string) (*Board, error) {
	b := &Board{client: client, owner: owner, repo: repo}

	var projectQuery struct {
		Repository struct {
			ProjectsV2 struct {
				Nodes []struct {
					ID    githubv4.ID
					Title githubv4.String
				}
			} `graphql:"projectsV2(first: 50)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
	}
	if err := client.GraphQL.Query(ctx, &projectQuery, vars); err != nil {
		return nil, fmt.Errorf("failed to list projects for %s/%s: %w", owner, repo, err)
	}
	for _, node := range projectQuery.Repository.ProjectsV2.Nodes {
		if string(node.Title) == projectTitle {
			b.projectID = node.ID
			break
		}
	}
	if b.projectID == nil {
		return nil, fmt.Errorf("project %q not found on %s/%s", projectTitle, owner, repo)
	}

	var fieldQuery struct {
		Node struct {
			ProjectV2 struct {
				Field struct {
					SingleSelect struct {
						ID      githubv4.ID
						Options []struct {
							ID   githubv4.String
							Name githubv4.String
						}
					} `graphql:"... on ProjectV2SingleSelectField"`
				} `graphql:"field(name: \"Status\")"`
			} `graphql:"... on ProjectV2"`
		} `graphql:"node(id: $project)"`
	}
	fieldVars := map[string]interface{}{"project": b.projectID}
	if err := client.GraphQL.Query(ctx, &fieldQuery, fieldVars); err != nil {
		return nil, fmt.Errorf("failed to get project status field: %w", err)
	}
	b.statusFieldID = fieldQuery.Node.ProjectV2.Field.SingleSelect.ID
	for _, opt := range fieldQuery.Node.ProjectV2.Field.SingleSelect.Options {
		b.statusOptions = append(b.statusOptions, engine.List{
			ID:   string(opt.ID),
			Name: string(opt.Name),
		})
	}
	return b, nil
}

// Lists returns the project's Status options.
func (b *Board) Lists(_ context.Context) ([]engine.List, error) {
	return b.statusOptions, nil
}

// CreateList always fails: GitHub does not allow creating status options
// through the API, so the engine must fall back to an existing column.
func (b *Board) CreateList(_ context.Context, name string) (engine.List, error) {
	return engine.List{}, fmt.Errorf("cannot create status column %q: configure it on the project board first", name)
}

// EnsureLabel gets or creates a repository label. The returned ID is the
// label name itself, since REST issue creation attaches labels by name.
func (b *Board) EnsureLabel(ctx context.Context, name, color string) (string, error) {
	_, resp, err := b.client.REST.Issues.GetLabel(ctx, b.owner, b.repo, name)
	if err == nil {
		return name, nil
	}
	if resp == nil || resp.StatusCode != 404 {
		return "", fmt.Errorf("failed to look up label %q: %w", name, err)
	}

	_, _, err = b.client.REST.Issues.CreateLabel(ctx, b.owner, b.repo, &github.Label{
		Name:  github.String(name),
		Color: github.String(hexColor(color)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create label %q: %w", name, err)
	}
	return name, nil
}

// CreateCard creates an issue, adds it to the project, and moves it to the
// status column identified by listID.
func (b *Board) CreateCard(ctx context.Context, listID, name, desc string, labelIDs []string) (engine.Card, error) {
	issue, _, err := b.client.REST.Issues.Create(ctx, b.owner, b.repo, &github.IssueRequest{
		Title:  github.String(name),
		Body:   github.String(desc),
		Labels: &labelIDs,
	})
	if err != nil {
		return engine.Card{}, fmt.Errorf("failed to create issue: %w", err)
	}

	var addItem struct {
		AddProjectV2ItemByID struct {
			Item struct{ ID githubv4.ID }
		} `graphql:"addProjectV2ItemById(input: $input)"`
	}
	addInput := githubv4.AddProjectV2ItemByIdInput{
		ProjectID: b.projectID,
		ContentID: githubv4.ID(issue.GetNodeID()),
	}
	if err := b.client.GraphQL.Mutate(ctx, &addItem, addInput, nil); err != nil {
		return engine.Card{}, fmt.Errorf("failed to add issue to project: %w", err)
	}

	if listID != "" {
		var update struct {
			UpdateProjectV2ItemFieldValue struct {
				ProjectV2Item struct{ ID githubv4.ID }
			} `graphql:"updateProjectV2ItemFieldValue(input: $input)"`
		}
		updateInput := githubv4.UpdateProjectV2ItemFieldValueInput{
			ProjectID: b.projectID,
			ItemID:    addItem.AddProjectV2ItemByID.Item.ID,
			FieldID:   b.statusFieldID,
			Value: githubv4.ProjectV2FieldValue{
				SingleSelectOptionID: githubv4.NewString(githubv4.String(listID)),
			},
		}
		if err := b.client.GraphQL.Mutate(ctx, &update, updateInput, nil); err != nil {
			return engine.Card{}, fmt.Errorf("failed to set project status: %w", err)
		}
	}

	return engine.Card{
		ID:   strconv.Itoa(issue.GetNumber()),
		Name: issue.GetTitle(),
		URL:  issue.GetHTMLURL(),
	}, nil
}

// AddChecklist appends the checklist to the issue body as a markdown task
// list; GitHub has no separate checklist object.
func (b *Board) AddChecklist(ctx context.Context, cardID, name string, items []string) error {
	number, err := strconv.Atoi(cardID)
	if err != nil {
		return fmt.Errorf("invalid issue number %q: %w", cardID, err)
	}

	issue, _, err := b.client.REST.Issues.Get(ctx, b.owner, b.repo, number)
	if err != nil {
		return fmt.Errorf("failed to fetch issue #%d: %w", number, err)
	}

	var section strings.Builder
	fmt.Fprintf(&section, "\n\n### %s\n", name)
	for _, item := range items {
		fmt.Fprintf(&section, "- [ ] %s\n", item)
	}

	body := issue.GetBody() + section.String()
	_, _, err = b.client.REST.Issues.Edit(ctx, b.owner, b.repo, number, &github.IssueRequest{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to update issue #%d: %w", number, err)
	}
	return nil
}

// hexColor maps Trello color names onto GitHub label hex codes.
func hexColor(color string) string {
	switch color {
	case "red":
		return "b60205"
	case "orange":
		return "d93f0b"
	case "yellow":
		return "fbca04"
	case "green":
		return "0e8a16"
	case "blue":
		return "1d76db"
	case "sky":
		return "c5def5"
	case "purple":
		return "5319e7"
	case "pink":
		return "e99695"
	case "lime":
		return "c2e0c6"
	case "black":
		return "000000"
	default:
		return "ededed"
	}
}
