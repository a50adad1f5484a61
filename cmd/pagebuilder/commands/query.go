package commands

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/pagebuilder/internal/query"
)

// QueryCmd implements the 'query' command.
type QueryCmd struct {
	Type string `arg:"" help:"Page document type (e.g. homePage)"`
	JSON bool   `help:"Print the query as JSON"`
}

func (q *QueryCmd) Run(g *Global, _ *CLI) error {
	docType, err := query.ParseDocumentType(q.Type)
	if err != nil {
		return classify(err)
	}
	built, err := query.BuildPageQuery(docType)
	if err != nil {
		return classify(err)
	}

	if q.JSON {
		return writeJSON(g.out(), built)
	}
	if _, err := fmt.Fprintf(g.out(), "%s\n\n", built.Text); err != nil {
		return err
	}
	params, err := json.Marshal(built.Params)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	_, err = fmt.Fprintf(g.out(), "params: %s\ntags:   %v\n", params, built.Tags)
	return err
}
